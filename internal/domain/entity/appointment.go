package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	AppointmentTypeConsultation   AppointmentType = "consultation"
	AppointmentTypeFollowUp       AppointmentType = "follow_up"
	AppointmentTypeEmergency      AppointmentType = "emergency"
	AppointmentTypeRoutineCheckup AppointmentType = "routine_checkup"
)

// Appointment occupies exactly one slot on a doctor's calendar. At most one
// non-cancelled appointment may exist per (doctor_id, appointment_date, slot_start);
// the partial unique index in the schema is the authoritative guard.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	SlotStart       string            `gorm:"type:time;not null" json:"slot_start"`
	DurationMinutes int               `gorm:"not null" json:"duration_minutes"`
	Type            AppointmentType   `gorm:"type:varchar(30);not null" json:"type"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	PaymentStatus   PaymentStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AfterFind restores the canonical "HH:MM" slot form; the TIME column reads
// back as "HH:MM:SS".
func (a *Appointment) AfterFind(tx *gorm.DB) error {
	a.SlotStart = NormalizeClock(a.SlotStart)
	return nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// CanTransition reports whether the status change from -> to is legal.
//
//	scheduled -> confirmed | cancelled | no_show
//	confirmed -> completed | cancelled
//	completed, cancelled, no_show -> (terminal)
//
// When requireConfirmation is false, scheduled -> completed is additionally allowed
// so a walk-in visit can be closed without an explicit confirmation step.
func CanTransition(from, to AppointmentStatus, requireConfirmation bool) bool {
	if from.IsTerminal() {
		return false
	}
	switch from {
	case AppointmentStatusScheduled:
		switch to {
		case AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusNoShow:
			return true
		case AppointmentStatusCompleted:
			return !requireConfirmation
		}
	case AppointmentStatusConfirmed:
		switch to {
		case AppointmentStatusCompleted, AppointmentStatusCancelled:
			return true
		}
	}
	return false
}

// CanTransitionPayment reports whether the payment change from -> to is legal.
// pending -> paid, paid -> refunded.
func CanTransitionPayment(from, to PaymentStatus) bool {
	switch from {
	case PaymentStatusPending:
		return to == PaymentStatusPaid
	case PaymentStatusPaid:
		return to == PaymentStatusRefunded
	}
	return false
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// SlotEnd returns the end of the occupied slot as minutes since midnight.
// Returns -1 if SlotStart does not parse.
func (a *Appointment) SlotEnd() int {
	start, err := ParseClock(a.SlotStart)
	if err != nil {
		return -1
	}
	return start + a.DurationMinutes
}
