package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-service/config"
	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found or inactive")
	ErrSlotTaken       = errors.New("slot is already booked")
	ErrSlotOffGrid     = errors.New("time does not match the doctor's slot grid")
	ErrSlotElapsed     = errors.New("cannot book a slot in the past")
	ErrDoctorDayOff    = errors.New("doctor is not working on that day")
	ErrInvalidTime     = errors.New("invalid time format, use HH:MM")
)

type BookingUsecase interface {
	BookAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type bookingUsecase struct {
	log             *logrus.Logger
	cfg             config.BookingConfig
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	dispatcher      service.Dispatcher
	now             func() time.Time
}

func NewBookingUsecase(
	log *logrus.Logger,
	cfg config.BookingConfig,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	dispatcher service.Dispatcher,
) BookingUsecase {
	return &bookingUsecase{
		log:             log,
		cfg:             cfg,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		dispatcher:      dispatcher,
		now:             time.Now,
	}
}

// BookAppointment is the booking transaction boundary.
//
// Flow:
// 1. Validate patient and doctor exist and are active
// 2. Validate the requested slot lies on the doctor's grid and is in the future
// 3. Insert with status=scheduled, payment=pending; the partial unique index
//    resolves the check-then-insert race, the loser gets ErrSlotTaken
// 4. Fan out notifications to patient and doctor (best-effort, never rolls back)
func (u *bookingUsecase) BookAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if u.cfg.BookingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.BookingTimeout)
		defer cancel()
	}

	// Step 1: patient and doctor must exist and be active
	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || !patient.Active() {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.Active() {
		return nil, ErrDoctorNotFound
	}

	// Step 2: slot validation
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	slotStart, err := entity.ParseClock(req.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}

	// All clocks are UTC; the store connection pins TimeZone=UTC and request
	// dates parse to UTC midnight.
	now := u.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, ErrPastDate
	}
	if day.Equal(today) && slotStart <= now.Hour()*60+now.Minute() {
		return nil, ErrSlotElapsed
	}

	if !doctor.WorksOn(day.Weekday()) {
		return nil, ErrDoctorDayOff
	}

	onGrid, err := entity.OnSlotGrid(doctor.StartTime, doctor.EndTime, doctor.SlotMinutes, req.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if !onGrid {
		return nil, ErrSlotOffGrid
	}

	// Fast availability check for a friendly error; the unique index below is the
	// authoritative guard against the query-to-insert race.
	existing, err := u.appointmentRepo.FindActiveByDoctorAndDate(ctx, req.DoctorID, day)
	if err != nil {
		u.log.Warnf("Failed to check existing appointments for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	clock := entity.FormatClock(slotStart)
	for _, appt := range existing {
		if entity.NormalizeClock(appt.SlotStart) == clock {
			return nil, ErrSlotTaken
		}
	}

	// Step 3: insert
	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: day,
		SlotStart:       clock,
		DurationMinutes: doctor.SlotMinutes,
		Type:            entity.AppointmentType(req.Type),
		Status:          entity.AppointmentStatusScheduled,
		PaymentStatus:   entity.PaymentStatusPending,
		Reason:          req.Reason,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		u.log.Errorf("Failed to insert appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s, slot=%s",
		appointment.ID, req.DoctorID, req.Date, req.Time)

	// Step 4: best-effort fan-out; a dispatch failure is logged, never fatal.
	u.notifyBooked(ctx, appointment, patient, doctor)

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

func (u *bookingUsecase) notifyBooked(ctx context.Context, appointment *entity.Appointment, patient *entity.Patient, doctor *entity.Doctor) {
	apptID := appointment.ID
	when := fmt.Sprintf("%s at %s", appointment.AppointmentDate.Format("2006-01-02"), appointment.SlotStart)

	events := []service.Event{
		{
			Kind:          service.EventBooked,
			UserID:        patient.ID,
			AppointmentID: &apptID,
			Title:         "Appointment booked",
			Message:       fmt.Sprintf("Your appointment with %s is scheduled for %s", doctor.FullName, when),
		},
		{
			Kind:          service.EventBooked,
			UserID:        doctor.ID,
			AppointmentID: &apptID,
			Title:         "New appointment",
			Message:       fmt.Sprintf("%s booked an appointment for %s", patient.FullName, when),
		},
	}

	for _, ev := range events {
		if err := u.dispatcher.Dispatch(ctx, ev); err != nil {
			u.log.Warnf("Failed to dispatch booked notification for appointment %s (non-fatal): %+v", appointment.ID, err)
		}
	}
}
