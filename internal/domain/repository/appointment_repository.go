package repository

import (
	"context"
	"time"

	"clinic-appointment-service/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	// Create inserts the appointment. The partial unique index over
	// (doctor_id, appointment_date, slot_start) for non-cancelled rows makes the
	// insert the serialization point for concurrent bookings of the same slot;
	// the loser gets gorm.ErrDuplicatedKey.
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindActiveByDoctorAndDate returns the non-cancelled appointments occupying
	// slots on the doctor's calendar for the given day.
	FindActiveByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	// UpdateStatus performs a compare-and-swap status change guarded on the current
	// status. Returns affected rows: 0 = the appointment moved concurrently (or is
	// unknown), so the caller must re-validate the transition.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	// UpdatePayment performs a compare-and-swap payment change.
	UpdatePayment(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus) (int64, error)
	// FindElapsedScheduled returns scheduled appointments whose slot window ended
	// before cutoff. Candidates for the no-show sweep.
	FindElapsedScheduled(ctx context.Context, cutoff time.Time) ([]entity.Appointment, error)
}
