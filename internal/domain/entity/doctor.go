package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Doctor represents a practitioner whose working hours define the bookable slot grid.
// Doctors are never hard-deleted; past appointments keep referencing deactivated rows.
type Doctor struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName        string      `gorm:"type:varchar(255);not null" json:"full_name"`
	Email           string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PhoneNumber     string      `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Specialization  string      `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Qualification   string      `gorm:"type:varchar(255)" json:"qualification,omitempty"`
	Biography       string      `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee int64       `gorm:"not null;default:0" json:"consultation_fee"`
	WorkingDays     WorkingDays `gorm:"type:jsonb;not null" json:"working_days"`
	StartTime       string      `gorm:"type:time;not null" json:"start_time"`
	EndTime         string      `gorm:"type:time;not null" json:"end_time"`
	SlotMinutes     int         `gorm:"not null;default:30" json:"slot_minutes"`
	IsActive        *bool       `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// AfterFind restores the canonical "HH:MM" working-hours form; TIME columns
// read back as "HH:MM:SS".
func (d *Doctor) AfterFind(tx *gorm.DB) error {
	d.StartTime = NormalizeClock(d.StartTime)
	d.EndTime = NormalizeClock(d.EndTime)
	return nil
}

// Active reports whether the doctor can take new bookings.
func (d *Doctor) Active() bool {
	return d.IsActive != nil && *d.IsActive
}

// WorksOn reports whether the doctor sees patients on the given weekday.
func (d *Doctor) WorksOn(day time.Weekday) bool {
	for _, w := range d.WorkingDays {
		if time.Weekday(w) == day {
			return true
		}
	}
	return false
}

// WorkingDays is a set of time.Weekday values (0=Sunday..6=Saturday) stored as JSONB.
type WorkingDays []int

// Value implements driver.Valuer.
func (w WorkingDays) Value() (driver.Value, error) {
	if w == nil {
		w = WorkingDays{}
	}
	return json.Marshal(w)
}

// Scan implements sql.Scanner.
func (w *WorkingDays) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, w)
}
