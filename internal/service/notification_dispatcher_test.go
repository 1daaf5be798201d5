package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// fakeNotificationRepo records persisted notifications.
type fakeNotificationRepo struct {
	created []*entity.Notification
	err     error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if f.err != nil {
		return f.err
	}
	notification.ID = uuid.New()
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	return 1, nil
}

// fakePublisher records published payloads.
type fakePublisher struct {
	published map[uuid.UUID][][]byte
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, userID uuid.UUID, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.published == nil {
		f.published = map[uuid.UUID][][]byte{}
	}
	f.published[userID] = append(f.published[userID], payload)
	return nil
}

func TestDispatch_PersistsThenPublishes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	pub := &fakePublisher{}
	d := NewNotificationDispatcher(testLogger(), repo, pub)

	userID := uuid.New()
	apptID := uuid.New()
	event := Event{
		Kind:          EventBooked,
		UserID:        userID,
		AppointmentID: &apptID,
		Title:         "Appointment booked",
		Message:       "Your appointment is scheduled",
	}

	if err := d.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("persisted %d notifications, want 1", len(repo.created))
	}
	row := repo.created[0]
	if row.UserID != userID || row.Type != entity.NotificationTypeAppointment || row.Read {
		t.Errorf("unexpected persisted row: %+v", row)
	}
	if row.AppointmentID == nil || *row.AppointmentID != apptID {
		t.Errorf("persisted row should reference appointment %s", apptID)
	}

	payloads := pub.published[userID]
	if len(payloads) != 1 {
		t.Fatalf("published %d payloads, want 1", len(payloads))
	}
	var wire struct {
		ID    uuid.UUID `json:"id"`
		Kind  EventKind `json:"kind"`
		Title string    `json:"title"`
	}
	if err := json.Unmarshal(payloads[0], &wire); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if wire.ID != row.ID || wire.Kind != EventBooked || wire.Title != event.Title {
		t.Errorf("unexpected wire payload: %+v", wire)
	}
}

func TestDispatch_PersistFailureIsFatal(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("connection refused")}
	pub := &fakePublisher{}
	d := NewNotificationDispatcher(testLogger(), repo, pub)

	err := d.Dispatch(context.Background(), Event{Kind: EventBooked, UserID: uuid.New()})
	if err == nil {
		t.Fatal("a failed persist must surface to the caller")
	}
	if len(pub.published) != 0 {
		t.Error("nothing should be published when the persist fails")
	}
}

func TestDispatch_PublishFailureIsSwallowed(t *testing.T) {
	repo := &fakeNotificationRepo{}
	pub := &fakePublisher{err: errors.New("redis down")}
	d := NewNotificationDispatcher(testLogger(), repo, pub)

	if err := d.Dispatch(context.Background(), Event{Kind: EventConfirmed, UserID: uuid.New()}); err != nil {
		t.Fatalf("a failed publish is best-effort, got error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Errorf("the durable row must still be written, got %d", len(repo.created))
	}
}

func TestNotificationTypeFor(t *testing.T) {
	tests := []struct {
		kind EventKind
		want entity.NotificationType
	}{
		{EventBooked, entity.NotificationTypeAppointment},
		{EventCancelled, entity.NotificationTypeAppointment},
		{EventNoShow, entity.NotificationTypeAppointment},
		{EventReminder, entity.NotificationTypeReminder},
		{EventTestResultReady, entity.NotificationTypeTestResult},
	}
	for _, tt := range tests {
		if got := notificationTypeFor(tt.kind); got != tt.want {
			t.Errorf("notificationTypeFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}
