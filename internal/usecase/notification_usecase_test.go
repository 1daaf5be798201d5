package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

func authedContext(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func TestGetMyNotifications(t *testing.T) {
	userID := uuid.New()
	var gotUnreadOnly bool
	repo := &mockNotificationRepo{
		findByUserIDFn: func(ctx context.Context, got uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
			if got != userID {
				t.Errorf("queried user %s, want %s", got, userID)
			}
			gotUnreadOnly = unreadOnly
			return []entity.Notification{
				{ID: uuid.New(), UserID: userID, Title: "Appointment booked", Type: entity.NotificationTypeAppointment},
			}, nil
		},
	}
	u := NewNotificationUsecase(testLogger(), repo)

	resp, err := u.GetMyNotifications(authedContext(userID), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotUnreadOnly {
		t.Error("unreadOnly flag not forwarded to the store")
	}
	if resp.Total != 1 || len(resp.Notifications) != 1 {
		t.Errorf("got total=%d len=%d, want 1", resp.Total, len(resp.Notifications))
	}
}

func TestGetMyNotifications_NoAuthContext(t *testing.T) {
	u := NewNotificationUsecase(testLogger(), &mockNotificationRepo{})

	if _, err := u.GetMyNotifications(context.Background(), false); err == nil {
		t.Fatal("expected error without an authenticated user in context")
	}
}

func TestMarkRead(t *testing.T) {
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("recipient marks read", func(t *testing.T) {
		repo := &mockNotificationRepo{
			markReadFn: func(ctx context.Context, id, owner uuid.UUID) (int64, error) {
				if id != notifID || owner != userID {
					t.Errorf("MarkRead(%s, %s), want (%s, %s)", id, owner, notifID, userID)
				}
				return 1, nil
			},
		}
		u := NewNotificationUsecase(testLogger(), repo)

		if err := u.MarkRead(authedContext(userID), notifID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown or foreign notification", func(t *testing.T) {
		repo := &mockNotificationRepo{
			markReadFn: func(ctx context.Context, id, owner uuid.UUID) (int64, error) {
				return 0, nil
			},
		}
		u := NewNotificationUsecase(testLogger(), repo)

		err := u.MarkRead(authedContext(userID), notifID)
		if !errors.Is(err, ErrNotificationNotFound) {
			t.Fatalf("error = %v, want ErrNotificationNotFound", err)
		}
	})
}
