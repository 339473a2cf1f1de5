package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	bookingDomain "github.com/brightpaws/service-boarding/internal/domain/booking"
)

// StatusSweeper advances bookings through their externally-driven statuses:
// a confirmed booking whose stay has begun becomes current, and a current
// (or never-marked confirmed) booking whose stay has ended becomes completed.
// Each advance is a conditional update, so overlapping sweeps are harmless.
type StatusSweeper struct {
	repo   bookingDomain.Repository
	now    func() time.Time
	cron   *cron.Cron
	logger *zap.Logger
}

// NewStatusSweeper creates a sweeper over the booking repository.
func NewStatusSweeper(repo bookingDomain.Repository, logger *zap.Logger) *StatusSweeper {
	return &StatusSweeper{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

// Start schedules the sweep with the given cron expression and runs one
// sweep immediately.
func (s *StatusSweeper) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	s.Sweep(context.Background())
	c.Start()
	s.cron = c

	s.logger.Info("status sweeper started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the scheduled sweeps.
func (s *StatusSweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep performs one pass over due bookings.
func (s *StatusSweeper) Sweep(ctx context.Context) {
	now := s.now()

	started, err := s.repo.FindDueForStart(ctx, now)
	if err != nil {
		s.logger.Error("sweep failed to list bookings due for start", zap.Error(err))
	} else {
		for _, bk := range started {
			s.advance(ctx, bk.ID(), bookingDomain.StatusCurrent,
				[]bookingDomain.BookingStatus{bookingDomain.StatusConfirmed})
		}
	}

	ended, err := s.repo.FindDueForCompletion(ctx, now)
	if err != nil {
		s.logger.Error("sweep failed to list bookings due for completion", zap.Error(err))
		return
	}
	for _, bk := range ended {
		s.advance(ctx, bk.ID(), bookingDomain.StatusCompleted,
			[]bookingDomain.BookingStatus{bookingDomain.StatusCurrent, bookingDomain.StatusConfirmed})
	}
}

func (s *StatusSweeper) advance(ctx context.Context, id uuid.UUID, target bookingDomain.BookingStatus, from []bookingDomain.BookingStatus) {
	ok, err := s.repo.TransitionStatus(ctx, id, target, bookingDomain.TransitionFilter{FromStatuses: from})
	if err != nil {
		s.logger.Error("sweep transition failed",
			zap.String("booking_id", id.String()),
			zap.String("target", target.String()),
			zap.Error(err),
		)
		return
	}
	if ok {
		s.logger.Info("booking advanced by sweeper",
			zap.String("booking_id", id.String()),
			zap.String("status", target.String()),
		)
	}
}
