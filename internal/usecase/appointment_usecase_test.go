package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-appointment-service/config"
	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/service"

	"github.com/google/uuid"
)

func newAppointmentForTest(repo *mockAppointmentRepo, dispatcher *mockDispatcher, requireConfirmation bool) AppointmentUsecase {
	cfg := config.BookingConfig{RequireConfirmation: requireConfirmation}
	return NewAppointmentUsecase(testLogger(), cfg, repo, dispatcher)
}

func storedAppointment(id uuid.UUID, status entity.AppointmentStatus) *entity.Appointment {
	return &entity.Appointment{
		ID:            id,
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		SlotStart:     "10:00",
		Status:        status,
		PaymentStatus: entity.PaymentStatusPending,
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name                string
		from                entity.AppointmentStatus
		to                  entity.AppointmentStatus
		requireConfirmation bool
		wantErr             error
	}{
		{"confirm scheduled", entity.AppointmentStatusScheduled, entity.AppointmentStatusConfirmed, true, nil},
		{"complete confirmed", entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted, true, nil},
		{"cancel scheduled", entity.AppointmentStatusScheduled, entity.AppointmentStatusCancelled, true, nil},
		{"no-show scheduled", entity.AppointmentStatusScheduled, entity.AppointmentStatusNoShow, true, nil},
		{"complete scheduled blocked by confirmation policy", entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted, true, ErrInvalidTransition},
		{"complete scheduled walk-in", entity.AppointmentStatusScheduled, entity.AppointmentStatusCompleted, false, nil},
		{"complete cancelled", entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted, true, ErrInvalidTransition},
		{"confirm completed", entity.AppointmentStatusCompleted, entity.AppointmentStatusConfirmed, true, ErrInvalidTransition},
		{"no-show confirmed", entity.AppointmentStatusConfirmed, entity.AppointmentStatusNoShow, true, ErrInvalidTransition},
		{"unknown status value", entity.AppointmentStatusScheduled, entity.AppointmentStatus("rescheduled"), true, ErrInvalidStatusValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			casCalled := false
			repo := &mockAppointmentRepo{
				findByIDFn: func(ctx context.Context, got uuid.UUID) (*entity.Appointment, error) {
					return storedAppointment(id, tt.from), nil
				},
				updateStatusFn: func(ctx context.Context, got uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
					casCalled = true
					if from != tt.from || to != tt.to {
						t.Errorf("CAS guard = (%s -> %s), want (%s -> %s)", from, to, tt.from, tt.to)
					}
					return 1, nil
				},
			}
			dispatcher := &mockDispatcher{}
			u := newAppointmentForTest(repo, dispatcher, tt.requireConfirmation)

			resp, err := u.UpdateStatus(context.Background(), id, tt.to)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if casCalled {
					t.Error("illegal transition must not reach the store")
				}
				if len(dispatcher.events) != 0 {
					t.Errorf("illegal transition must not notify, got %d events", len(dispatcher.events))
				}
				return
			}

			if resp.Status != string(tt.to) {
				t.Errorf("response status = %s, want %s", resp.Status, tt.to)
			}
			// Both parties are notified of a successful transition.
			if len(dispatcher.events) != 2 {
				t.Errorf("dispatched %d events, want 2", len(dispatcher.events))
			}
		})
	}
}

func TestUpdateStatus_LostRaceRejected(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, got uuid.UUID) (*entity.Appointment, error) {
			return storedAppointment(id, entity.AppointmentStatusScheduled), nil
		},
		// A concurrent transition moved the row; the CAS matches nothing.
		updateStatusFn: func(ctx context.Context, got uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
			return 0, nil
		},
	}
	dispatcher := &mockDispatcher{}
	u := newAppointmentForTest(repo, dispatcher, true)

	_, err := u.UpdateStatus(context.Background(), id, entity.AppointmentStatusConfirmed)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
	if len(dispatcher.events) != 0 {
		t.Errorf("lost race must not notify, got %d events", len(dispatcher.events))
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := &mockAppointmentRepo{}
	u := newAppointmentForTest(repo, &mockDispatcher{}, true)

	_, err := u.UpdateStatus(context.Background(), uuid.New(), entity.AppointmentStatusConfirmed)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestCancel_DoubleCancelRejected(t *testing.T) {
	id := uuid.New()
	repo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, got uuid.UUID) (*entity.Appointment, error) {
			return storedAppointment(id, entity.AppointmentStatusCancelled), nil
		},
	}
	u := newAppointmentForTest(repo, &mockDispatcher{}, true)

	_, err := u.Cancel(context.Background(), id)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestCancel_PaidAppointmentRefunded(t *testing.T) {
	id := uuid.New()
	refunded := false
	repo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, got uuid.UUID) (*entity.Appointment, error) {
			appt := storedAppointment(id, entity.AppointmentStatusConfirmed)
			appt.PaymentStatus = entity.PaymentStatusPaid
			return appt, nil
		},
		updatePaymentFn: func(ctx context.Context, got uuid.UUID, from, to entity.PaymentStatus) (int64, error) {
			refunded = true
			if from != entity.PaymentStatusPaid || to != entity.PaymentStatusRefunded {
				t.Errorf("payment CAS = (%s -> %s), want (paid -> refunded)", from, to)
			}
			return 1, nil
		},
	}
	dispatcher := &mockDispatcher{}
	u := newAppointmentForTest(repo, dispatcher, true)

	resp, err := u.Cancel(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !refunded {
		t.Error("cancelling a paid appointment should refund it")
	}
	if resp.PaymentStatus != string(entity.PaymentStatusRefunded) {
		t.Errorf("response payment = %s, want refunded", resp.PaymentStatus)
	}
	for _, ev := range dispatcher.events {
		if ev.Kind != service.EventCancelled {
			t.Errorf("event kind = %s, want cancelled", ev.Kind)
		}
	}
}

func TestUpdatePayment(t *testing.T) {
	tests := []struct {
		name    string
		current entity.PaymentStatus
		target  entity.PaymentStatus
		wantErr error
	}{
		{"pay pending", entity.PaymentStatusPending, entity.PaymentStatusPaid, nil},
		{"refund paid", entity.PaymentStatusPaid, entity.PaymentStatusRefunded, nil},
		{"refund pending rejected", entity.PaymentStatusPending, entity.PaymentStatusRefunded, ErrInvalidPaymentTransition},
		{"re-pay refunded rejected", entity.PaymentStatusRefunded, entity.PaymentStatusPaid, ErrInvalidPaymentTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.New()
			repo := &mockAppointmentRepo{
				findByIDFn: func(ctx context.Context, got uuid.UUID) (*entity.Appointment, error) {
					appt := storedAppointment(id, entity.AppointmentStatusConfirmed)
					appt.PaymentStatus = tt.current
					return appt, nil
				},
			}
			u := newAppointmentForTest(repo, &mockDispatcher{}, true)

			resp, err := u.UpdatePayment(context.Background(), id, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && resp.PaymentStatus != string(tt.target) {
				t.Errorf("response payment = %s, want %s", resp.PaymentStatus, tt.target)
			}
		})
	}
}

func TestGetAppointment_NotFound(t *testing.T) {
	u := newAppointmentForTest(&mockAppointmentRepo{}, &mockDispatcher{}, true)

	_, err := u.GetAppointment(context.Background(), uuid.New())
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Fatalf("error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestListAppointments_PassesFilter(t *testing.T) {
	doctorID := uuid.New()
	var gotFilter *entity.AppointmentFilter
	repo := &mockAppointmentRepo{
		findAllFn: func(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
			gotFilter = filter
			return []entity.Appointment{
				*storedAppointment(uuid.New(), entity.AppointmentStatusScheduled),
				*storedAppointment(uuid.New(), entity.AppointmentStatusScheduled),
			}, nil
		},
	}
	u := newAppointmentForTest(repo, &mockDispatcher{}, true)

	filter := &entity.AppointmentFilter{
		DoctorID: &doctorID,
		Status:   entity.AppointmentStatusScheduled,
		DateFrom: "2026-03-01",
	}
	resp, err := u.ListAppointments(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 || len(resp.Appointments) != 2 {
		t.Errorf("got total=%d len=%d, want 2", resp.Total, len(resp.Appointments))
	}
	if gotFilter != filter {
		t.Error("filter should be passed through to the store")
	}
}
