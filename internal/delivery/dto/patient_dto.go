package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FullName       string `json:"full_name" validate:"required,max=255"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	Address        string `json:"address" validate:"omitempty"`
	MedicalHistory string `json:"medical_history" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	FullName       string `json:"full_name" validate:"omitempty,max=255"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
	Address        string `json:"address" validate:"omitempty"`
	MedicalHistory string `json:"medical_history" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number,omitempty"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Address        string    `json:"address,omitempty"`
	MedicalHistory string    `json:"medical_history,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
