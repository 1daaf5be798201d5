package usecase

import (
	"context"
	"io"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func boolPtr(b bool) *bool { return &b }

// mockDoctorRepo implements repository.DoctorRepository with overridable funcs.
type mockDoctorRepo struct {
	createFn     func(ctx context.Context, doctor *entity.Doctor) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	findAllFn    func(ctx context.Context, specialization string, activeOnly bool) ([]entity.Doctor, error)
	updateFn     func(ctx context.Context, doctor *entity.Doctor) error
	deactivateFn func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *mockDoctorRepo) Create(ctx context.Context, doctor *entity.Doctor) error {
	if m.createFn != nil {
		return m.createFn(ctx, doctor)
	}
	return nil
}

func (m *mockDoctorRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockDoctorRepo) FindAll(ctx context.Context, specialization string, activeOnly bool) ([]entity.Doctor, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, specialization, activeOnly)
	}
	return nil, nil
}

func (m *mockDoctorRepo) Update(ctx context.Context, doctor *entity.Doctor) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, doctor)
	}
	return nil
}

func (m *mockDoctorRepo) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return 1, nil
}

// mockPatientRepo implements repository.PatientRepository.
type mockPatientRepo struct {
	createFn   func(ctx context.Context, patient *entity.Patient) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	findAllFn  func(ctx context.Context) ([]entity.Patient, error)
	updateFn   func(ctx context.Context, patient *entity.Patient) error
}

func (m *mockPatientRepo) Create(ctx context.Context, patient *entity.Patient) error {
	if m.createFn != nil {
		return m.createFn(ctx, patient)
	}
	return nil
}

func (m *mockPatientRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPatientRepo) FindAll(ctx context.Context) ([]entity.Patient, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockPatientRepo) Update(ctx context.Context, patient *entity.Patient) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, patient)
	}
	return nil
}

// mockAppointmentRepo implements repository.AppointmentRepository.
type mockAppointmentRepo struct {
	createFn                    func(ctx context.Context, appointment *entity.Appointment) error
	findByIDFn                  func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	findAllFn                   func(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	findActiveByDoctorAndDateFn func(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	updateStatusFn              func(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	updatePaymentFn             func(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus) (int64, error)
	findElapsedScheduledFn      func(ctx context.Context, cutoff time.Time) ([]entity.Appointment, error)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	if m.createFn != nil {
		return m.createFn(ctx, appointment)
	}
	return nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindActiveByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	if m.findActiveByDoctorAndDateFn != nil {
		return m.findActiveByDoctorAndDateFn(ctx, doctorID, date)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, from, to)
	}
	return 1, nil
}

func (m *mockAppointmentRepo) UpdatePayment(ctx context.Context, id uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
	if m.updatePaymentFn != nil {
		return m.updatePaymentFn(ctx, id, from, to)
	}
	return 1, nil
}

func (m *mockAppointmentRepo) FindElapsedScheduled(ctx context.Context, cutoff time.Time) ([]entity.Appointment, error) {
	if m.findElapsedScheduledFn != nil {
		return m.findElapsedScheduledFn(ctx, cutoff)
	}
	return nil, nil
}

// mockNotificationRepo implements repository.NotificationRepository.
type mockNotificationRepo struct {
	createFn       func(ctx context.Context, notification *entity.Notification) error
	findByUserIDFn func(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error)
	markReadFn     func(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

func (m *mockNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if m.createFn != nil {
		return m.createFn(ctx, notification)
	}
	return nil
}

func (m *mockNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID, unreadOnly)
	}
	return nil, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	if m.markReadFn != nil {
		return m.markReadFn(ctx, id, userID)
	}
	return 1, nil
}

// mockDispatcher records dispatched events and can be told to fail.
type mockDispatcher struct {
	events []service.Event
	err    error
}

func (m *mockDispatcher) Dispatch(ctx context.Context, event service.Event) error {
	m.events = append(m.events, event)
	return m.err
}

// weekdaysAll marks every weekday as working for test doctors.
var weekdaysAll = entity.WorkingDays{0, 1, 2, 3, 4, 5, 6}

func testDoctor(id uuid.UUID) *entity.Doctor {
	return &entity.Doctor{
		ID:          id,
		FullName:    "Dr. Sarah Chen",
		Email:       "sarah.chen@clinic.test",
		WorkingDays: weekdaysAll,
		StartTime:   "09:00",
		EndTime:     "17:00",
		SlotMinutes: 30,
		IsActive:    boolPtr(true),
	}
}

func testPatient(id uuid.UUID) *entity.Patient {
	return &entity.Patient{
		ID:       id,
		FullName: "John Doe",
		Email:    "john.doe@clinic.test",
		IsActive: boolPtr(true),
	}
}
