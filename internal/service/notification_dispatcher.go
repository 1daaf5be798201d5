package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// EventKind identifies an appointment-lifecycle event being fanned out.
type EventKind string

const (
	EventBooked          EventKind = "booked"
	EventConfirmed       EventKind = "confirmed"
	EventCancelled       EventKind = "cancelled"
	EventCompleted       EventKind = "completed"
	EventNoShow          EventKind = "no_show"
	EventReminder        EventKind = "reminder"
	EventTestResultReady EventKind = "test_result_ready"
)

// Event is one delivery target of a lifecycle fan-out. The caller emits one
// Event per recipient (e.g. a booking produces one for the patient and one for
// the doctor).
type Event struct {
	Kind          EventKind
	UserID        uuid.UUID
	AppointmentID *uuid.UUID
	Title         string
	Message       string
}

// Dispatcher persists lifecycle events as notifications and attempts realtime
// delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
}

// NotificationDispatcher persists a Notification row first (the durable side
// effect), then publishes to the realtime channel best-effort. A failed publish
// is dropped: the recipient picks the row up on next fetch.
type NotificationDispatcher struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	publisher        Publisher
}

func NewNotificationDispatcher(
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	publisher Publisher,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		log:              log,
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// notificationTypeFor maps an event kind to the stored notification type.
func notificationTypeFor(kind EventKind) entity.NotificationType {
	switch kind {
	case EventReminder:
		return entity.NotificationTypeReminder
	case EventTestResultReady:
		return entity.NotificationTypeTestResult
	default:
		return entity.NotificationTypeAppointment
	}
}

// realtimePayload is the wire shape pushed over the realtime channel.
type realtimePayload struct {
	ID            uuid.UUID  `json:"id"`
	Kind          EventKind  `json:"kind"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (d *NotificationDispatcher) Dispatch(ctx context.Context, event Event) error {
	notification := &entity.Notification{
		UserID:        event.UserID,
		Title:         event.Title,
		Message:       event.Message,
		Type:          notificationTypeFor(event.Kind),
		AppointmentID: event.AppointmentID,
	}

	if err := d.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("persist %s notification for user %s: %w", event.Kind, event.UserID, err)
	}

	payload, err := json.Marshal(realtimePayload{
		ID:            notification.ID,
		Kind:          event.Kind,
		Title:         event.Title,
		Message:       event.Message,
		AppointmentID: event.AppointmentID,
		CreatedAt:     notification.CreatedAt,
	})
	if err != nil {
		d.log.Warnf("Failed to marshal realtime payload for notification %s: %+v", notification.ID, err)
		return nil
	}

	// Best-effort: no retry queue. The persisted row satisfies eventual delivery.
	if err := d.publisher.Publish(ctx, event.UserID, payload); err != nil {
		d.log.Debugf("Realtime delivery dropped for user %s: %+v", event.UserID, err)
	}

	return nil
}
