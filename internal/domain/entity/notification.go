package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType categorizes a notification for the recipient's client
type NotificationType string

const (
	NotificationTypeAppointment NotificationType = "appointment"
	NotificationTypeReminder    NotificationType = "reminder"
	NotificationTypeTestResult  NotificationType = "test_result"
	NotificationTypePayment     NotificationType = "payment"
	NotificationTypeSystem      NotificationType = "system"
)

// Notification is the durable record of a lifecycle event fan-out. The realtime
// channel is best-effort; this row is the source of truth the client polls.
type Notification struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string           `gorm:"type:varchar(255);not null" json:"title"`
	Message       string           `gorm:"type:text;not null" json:"message"`
	Type          NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Read          bool             `gorm:"not null;default:false;index" json:"read"`
	AppointmentID *uuid.UUID       `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	CreatedAt     time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
