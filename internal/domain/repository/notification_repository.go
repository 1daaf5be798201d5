package repository

import (
	"context"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error)
	// MarkRead flips the read flag for a notification owned by userID.
	// Returns affected rows: 0 = unknown id or not the recipient.
	MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error)
}
