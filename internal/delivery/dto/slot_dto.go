package dto

import "github.com/google/uuid"

// Response DTOs

type SlotResponse struct {
	StartTime string `json:"start_time"` // Format: HH:MM
	Available bool   `json:"available"`
}

type SlotListResponse struct {
	DoctorID uuid.UUID      `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}
