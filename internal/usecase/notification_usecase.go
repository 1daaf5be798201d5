package usecase

import (
	"context"
	"errors"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/delivery/http/middleware"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	GetMyNotifications(ctx context.Context, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type notificationUsecase struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		log:              log,
		notificationRepo: notificationRepo,
	}
}

// GetMyNotifications returns persisted notifications for the authenticated user.
// This fetch is the durable half of delivery; realtime pushes are best-effort.
func (u *notificationUsecase) GetMyNotifications(ctx context.Context, unreadOnly bool) (*dto.NotificationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	notifications, err := u.notificationRepo.FindByUserID(ctx, userID, unreadOnly)
	if err != nil {
		u.log.Warnf("Failed to find notifications for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         len(notifications),
	}, nil
}

// MarkRead flips the read flag; only the recipient can do so.
func (u *notificationUsecase) MarkRead(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	rows, err := u.notificationRepo.MarkRead(ctx, id, userID)
	if err != nil {
		u.log.Warnf("Failed to mark notification %s read: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
