package converter

import (
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to NotificationResponse DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	return &dto.NotificationResponse{
		ID:            notification.ID,
		UserID:        notification.UserID,
		Title:         notification.Title,
		Message:       notification.Message,
		Type:          string(notification.Type),
		Read:          notification.Read,
		AppointmentID: notification.AppointmentID,
		CreatedAt:     notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities to response DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resp := NotificationToResponse(&notifications[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
