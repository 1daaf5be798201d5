package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"clinic-appointment-service/internal/domain/entity"
	"clinic-appointment-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// NoShowSweeper periodically moves elapsed scheduled appointments to no_show.
// An appointment is elapsed once its slot window ended more than the grace
// period ago without being confirmed, completed or cancelled.
type NoShowSweeper struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	dispatcher      Dispatcher
	interval        time.Duration
	grace           time.Duration

	now func() time.Time

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewNoShowSweeper(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	dispatcher Dispatcher,
	interval, grace time.Duration,
) *NoShowSweeper {
	return &NoShowSweeper{
		log:             log,
		appointmentRepo: appointmentRepo,
		dispatcher:      dispatcher,
		interval:        interval,
		grace:           grace,
		now:             time.Now,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (s *NoShowSweeper) Start() {
	s.wg.Add(1)
	go s.loop()
	s.log.Infof("No-show sweeper started: interval=%v, grace=%v", s.interval, s.grace)
}

// Stop gracefully shuts down the sweeper. Safe to call multiple times.
func (s *NoShowSweeper) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("No-show sweeper stopped")
	}
}

func (s *NoShowSweeper) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.SweepOnce(ctx); err != nil {
				s.log.Warnf("No-show sweep failed: %+v", err)
			}
			cancel()
		}
	}
}

// SweepOnce runs a single pass. Exported so an operator endpoint or test can
// trigger it directly.
func (s *NoShowSweeper) SweepOnce(ctx context.Context) error {
	cutoff := s.now().Add(-s.grace)

	candidates, err := s.appointmentRepo.FindElapsedScheduled(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("find elapsed scheduled appointments: %w", err)
	}

	var swept int
	for _, appt := range candidates {
		// CAS: only flips rows still in scheduled, so a concurrent confirm or
		// cancel wins over the sweep.
		rows, err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, entity.AppointmentStatusScheduled, entity.AppointmentStatusNoShow)
		if err != nil {
			s.log.Warnf("Failed to mark appointment %s as no_show: %+v", appt.ID, err)
			continue
		}
		if rows == 0 {
			continue
		}
		swept++

		apptID := appt.ID
		message := fmt.Sprintf("Appointment on %s at %s was marked as a no-show",
			appt.AppointmentDate.Format("2006-01-02"), appt.SlotStart)
		for _, target := range []Event{
			{Kind: EventNoShow, UserID: appt.PatientID, AppointmentID: &apptID, Title: "Missed appointment", Message: message},
			{Kind: EventNoShow, UserID: appt.DoctorID, AppointmentID: &apptID, Title: "Patient no-show", Message: message},
		} {
			if err := s.dispatcher.Dispatch(ctx, target); err != nil {
				s.log.Warnf("Failed to dispatch no_show notification for appointment %s: %+v", appt.ID, err)
			}
		}
	}

	if swept > 0 {
		s.log.Infof("No-show sweep: %d appointments transitioned", swept)
	}
	return nil
}
