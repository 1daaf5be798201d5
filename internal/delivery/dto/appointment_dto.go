package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time      string    `json:"time" validate:"required"` // Format: HH:MM
	Type      string    `json:"type" validate:"required,oneof=consultation follow_up emergency routine_checkup"`
	Reason    string    `json:"reason" validate:"omitempty,max=500"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed completed cancelled no_show"`
}

type UpdateAppointmentPaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=paid refunded"`
}

// ListAppointmentsQuery captures the supported list filters, all optional.
type ListAppointmentsQuery struct {
	PatientID string `validate:"omitempty,uuid"`
	DoctorID  string `validate:"omitempty,uuid"`
	Status    string `validate:"omitempty,oneof=scheduled confirmed completed cancelled no_show"`
	DateFrom  string `validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID        `json:"id"`
	PatientID       uuid.UUID        `json:"patient_id"`
	DoctorID        uuid.UUID        `json:"doctor_id"`
	Patient         *PatientResponse `json:"patient,omitempty"`
	Doctor          *DoctorResponse  `json:"doctor,omitempty"`
	Date            string           `json:"date"`
	SlotStart       string           `json:"slot_start"`
	DurationMinutes int              `json:"duration_minutes"`
	Type            string           `json:"type"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	Reason          string           `json:"reason,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
