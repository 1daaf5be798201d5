package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-appointment-service/config"
	"clinic-appointment-service/internal/converter"
	"clinic-appointment-service/internal/delivery/dto"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound      = errors.New("appointment not found")
	ErrInvalidTransition        = errors.New("illegal status transition")
	ErrInvalidPaymentTransition = errors.New("illegal payment status transition")
	ErrInvalidStatusValue       = errors.New("unknown appointment status")
)

type AppointmentUsecase interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, newPayment entity.PaymentStatus) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	cfg             config.BookingConfig
	appointmentRepo repository.AppointmentRepository
	dispatcher      service.Dispatcher
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	cfg config.BookingConfig,
	appointmentRepo repository.AppointmentRepository,
	dispatcher service.Dispatcher,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		cfg:             cfg,
		appointmentRepo: appointmentRepo,
		dispatcher:      dispatcher,
	}
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateStatus applies a state-machine transition. The store-level update is a
// compare-and-swap guarded on the loaded status, so a concurrent transition
// cannot be skipped over: the second writer gets zero rows and fails here.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	if !entity.ValidStatus(newStatus) {
		return nil, ErrInvalidStatusValue
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !entity.CanTransition(appointment.Status, newStatus, u.cfg.RequireConfirmation) {
		return nil, ErrInvalidTransition
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, id, appointment.Status, newStatus)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		// Lost a race against another transition; the loaded status is stale.
		return nil, ErrInvalidTransition
	}

	u.log.Infof("Appointment %s: %s -> %s", id, appointment.Status, newStatus)

	// Cancelling a paid visit refunds it.
	if newStatus == entity.AppointmentStatusCancelled && appointment.PaymentStatus == entity.PaymentStatusPaid {
		if _, err := u.appointmentRepo.UpdatePayment(ctx, id, entity.PaymentStatusPaid, entity.PaymentStatusRefunded); err != nil {
			u.log.Warnf("Failed to refund appointment %s (non-fatal): %+v", id, err)
		} else {
			appointment.PaymentStatus = entity.PaymentStatusRefunded
		}
	}

	appointment.Status = newStatus
	u.notifyTransition(ctx, appointment, newStatus)

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel is shorthand for a transition to cancelled. The freed slot reappears in
// the Slot Calendar immediately because availability only counts non-cancelled rows.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.UpdateStatus(ctx, id, entity.AppointmentStatusCancelled)
}

func (u *appointmentUsecase) UpdatePayment(ctx context.Context, id uuid.UUID, newPayment entity.PaymentStatus) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !entity.CanTransitionPayment(appointment.PaymentStatus, newPayment) {
		return nil, ErrInvalidPaymentTransition
	}

	rows, err := u.appointmentRepo.UpdatePayment(ctx, id, appointment.PaymentStatus, newPayment)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s payment: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidPaymentTransition
	}

	appointment.PaymentStatus = newPayment
	return converter.AppointmentToResponse(appointment), nil
}

// notifyTransition fans out a status change to both parties, best-effort.
func (u *appointmentUsecase) notifyTransition(ctx context.Context, appointment *entity.Appointment, newStatus entity.AppointmentStatus) {
	var kind service.EventKind
	switch newStatus {
	case entity.AppointmentStatusConfirmed:
		kind = service.EventConfirmed
	case entity.AppointmentStatusCancelled:
		kind = service.EventCancelled
	case entity.AppointmentStatusCompleted:
		kind = service.EventCompleted
	case entity.AppointmentStatusNoShow:
		kind = service.EventNoShow
	default:
		return
	}

	apptID := appointment.ID
	when := fmt.Sprintf("%s at %s", appointment.AppointmentDate.Format("2006-01-02"), appointment.SlotStart)
	message := fmt.Sprintf("Appointment on %s is now %s", when, newStatus)

	for _, userID := range []uuid.UUID{appointment.PatientID, appointment.DoctorID} {
		ev := service.Event{
			Kind:          kind,
			UserID:        userID,
			AppointmentID: &apptID,
			Title:         fmt.Sprintf("Appointment %s", newStatus),
			Message:       message,
		}
		if err := u.dispatcher.Dispatch(ctx, ev); err != nil {
			u.log.Warnf("Failed to dispatch %s notification for appointment %s (non-fatal): %+v", kind, appointment.ID, err)
		}
	}
}
