package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered patient profile.
// Patients are never deleted while appointments reference them (soft deactivate only).
type Patient struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName       string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber    string    `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	DateOfBirth    time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender         string    `gorm:"type:varchar(10);not null" json:"gender"`
	Address        string    `gorm:"type:text" json:"address,omitempty"`
	MedicalHistory string    `gorm:"type:text" json:"medical_history,omitempty"`
	IsActive       *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Active reports whether the patient profile can be used for new bookings.
func (p *Patient) Active() bool {
	return p.IsActive != nil && *p.IsActive
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)
