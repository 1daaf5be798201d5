package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found or inactive")
	ErrInvalidDate    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPastDate       = errors.New("date is in the past")
)

type SlotCalendarUsecase interface {
	AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error)
}

type slotCalendarUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	now             func() time.Time
}

func NewSlotCalendarUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) SlotCalendarUsecase {
	return &slotCalendarUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		now:             time.Now,
	}
}

// AvailableSlots computes the ordered bookable slot grid for a doctor on a day.
// Pure read: the result is a function of the doctor's working hours and the
// non-cancelled appointments currently in the store.
func (u *slotCalendarUsecase) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.Active() {
		return nil, ErrDoctorNotFound
	}

	// All clocks are UTC; the store connection pins TimeZone=UTC and request
	// dates parse to UTC midnight.
	now := u.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, ErrPastDate
	}

	response := &dto.SlotListResponse{
		DoctorID: doctorID,
		Date:     day.Format("2006-01-02"),
		Slots:    []dto.SlotResponse{},
	}

	// A day off is a valid empty calendar, not an error.
	if !doctor.WorksOn(day.Weekday()) {
		return response, nil
	}

	appointments, err := u.appointmentRepo.FindActiveByDoctorAndDate(ctx, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	taken := make(map[string]bool, len(appointments))
	for _, appt := range appointments {
		// Persisted slots may carry the store's "HH:MM:SS" form.
		taken[entity.NormalizeClock(appt.SlotStart)] = true
	}

	// For today, slots whose start already elapsed are unavailable.
	nowMinutes := -1
	if day.Equal(today) {
		nowMinutes = now.Hour()*60 + now.Minute()
	}

	slots, err := entity.BuildSlots(doctor.StartTime, doctor.EndTime, doctor.SlotMinutes, taken, nowMinutes)
	if err != nil {
		u.log.Warnf("Failed to build slot grid for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	response.Slots = converter.SlotsToResponses(slots)
	return response, nil
}
