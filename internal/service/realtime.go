package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Publisher pushes a payload to a user's live connection, if any. Delivery is
// best-effort: the durable Notification row is the source of truth.
type Publisher interface {
	Publish(ctx context.Context, userID uuid.UUID, payload []byte) error
}

// RealtimeChannel is a Redis Pub/Sub backed Publisher. Each user has a dedicated
// channel; gateway processes holding the user's websocket subscribe to it.
type RealtimeChannel struct {
	client *redis.Client
}

func NewRealtimeChannel(client *redis.Client) *RealtimeChannel {
	return &RealtimeChannel{client: client}
}

func channelFor(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:%s", userID)
}

func (c *RealtimeChannel) Publish(ctx context.Context, userID uuid.UUID, payload []byte) error {
	return c.client.Publish(ctx, channelFor(userID), payload).Err()
}

// Subscribe returns a channel of raw payloads for the user plus an unsubscribe
// function. The channel is closed after unsubscribing.
func (c *RealtimeChannel) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan []byte, func()) {
	sub := c.client.Subscribe(ctx, channelFor(userID))
	out := make(chan []byte, 16)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- []byte(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() {
		sub.Close()
	}
}
