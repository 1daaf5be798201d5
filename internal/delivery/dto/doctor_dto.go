package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	FullName        string `json:"full_name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=20"`
	Specialization  string `json:"specialization" validate:"required,max=100"`
	Qualification   string `json:"qualification" validate:"omitempty,max=255"`
	Biography       string `json:"biography" validate:"omitempty"`
	ConsultationFee int64  `json:"consultation_fee" validate:"gte=0"`
	WorkingDays     []int  `json:"working_days" validate:"required,min=1,dive,gte=0,lte=6"`
	StartTime       string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime         string `json:"end_time" validate:"required"`   // Format: HH:MM
	SlotMinutes     int    `json:"slot_minutes" validate:"omitempty,gte=5,lte=120"`
}

type UpdateDoctorRequest struct {
	FullName        string `json:"full_name" validate:"omitempty,max=255"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,max=20"`
	Specialization  string `json:"specialization" validate:"omitempty,max=100"`
	Qualification   string `json:"qualification" validate:"omitempty,max=255"`
	Biography       string `json:"biography" validate:"omitempty"`
	ConsultationFee *int64 `json:"consultation_fee" validate:"omitempty,gte=0"`
	WorkingDays     []int  `json:"working_days" validate:"omitempty,min=1,dive,gte=0,lte=6"`
	StartTime       string `json:"start_time" validate:"omitempty"` // Format: HH:MM
	EndTime         string `json:"end_time" validate:"omitempty"`   // Format: HH:MM
	SlotMinutes     *int   `json:"slot_minutes" validate:"omitempty,gte=5,lte=120"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phone_number,omitempty"`
	Specialization  string    `json:"specialization"`
	Qualification   string    `json:"qualification,omitempty"`
	Biography       string    `json:"biography,omitempty"`
	ConsultationFee int64     `json:"consultation_fee"`
	WorkingDays     []int     `json:"working_days"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	SlotMinutes     int       `json:"slot_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
