package repository

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	domainRepo "clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	// The partial unique index uq_appointments_doctor_slot serializes concurrent
	// inserts for the same (doctor_id, appointment_date, slot_start); with
	// TranslateError enabled the race loser sees gorm.ErrDuplicatedKey.
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := r.db.WithContext(ctx)

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.DateFrom != "" {
			query = query.Where("appointment_date >= ?", filter.DateFrom)
		}
		if filter.DateTo != "" {
			query = query.Where("appointment_date <= ?", filter.DateTo)
		}
	}

	err := query.
		Preload("Patient").Preload("Doctor").
		Order("appointment_date ASC, slot_start ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_date = ? AND status != ?",
			doctorID, date.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Order("slot_start ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateStatus atomically moves an appointment from one status to another.
// Returns affected rows: 1 = success, 0 = the row is no longer in the expected
// status (lost a concurrent transition) or the id is unknown.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) UpdatePayment(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND payment_status = ?", id, from).
		Update("payment_status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindElapsedScheduled(ctx context.Context, cutoff time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.AppointmentStatusScheduled).
		Where("appointment_date + slot_start + (duration_minutes * interval '1 minute') < ?", cutoff).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
