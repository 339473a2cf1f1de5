package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/brightpaws/service-boarding/internal/domain/booking"
)

type sweepRepository struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newSweepRepository() *sweepRepository {
	return &sweepRepository{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *sweepRepository) add(bk *bookingDomain.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = bk
}

func (r *sweepRepository) status(id uuid.UUID) bookingDomain.BookingStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id].Status()
}

func (r *sweepRepository) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bookings[id], nil
}

func (r *sweepRepository) FindByOwnerID(_ context.Context, _ uuid.UUID, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	return nil, 0, nil
}

func (r *sweepRepository) ListAll(_ context.Context, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	return nil, 0, nil
}

func (r *sweepRepository) CountByStatus(_ context.Context) (map[string]int64, error) {
	return nil, nil
}

func (r *sweepRepository) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.add(bk)
	return nil
}

func (r *sweepRepository) SaveAll(_ context.Context, bookings []*bookingDomain.Booking) error {
	for _, bk := range bookings {
		r.add(bk)
	}
	return nil
}

func (r *sweepRepository) TransitionStatus(_ context.Context, id uuid.UUID, target bookingDomain.BookingStatus, filter bookingDomain.TransitionFilter) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bk, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, from := range filter.FromStatuses {
		if bk.Status() == from {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}

	r.bookings[id] = bookingDomain.Reconstruct(
		bk.ID(), bk.Reference(), bk.OwnerID(), bk.DogID(),
		bk.ServiceType(), bk.StartAt(), bk.EndAt(), target,
		bk.Rate(), bk.Units(), bk.TotalCost(), bk.Currency(),
		bk.CreatedAt(), time.Now().UTC(),
	)
	return true, nil
}

func (r *sweepRepository) FindDueForStart(_ context.Context, now time.Time) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.Status() == bookingDomain.StatusConfirmed && !bk.StartAt().After(now) {
			result = append(result, bk)
		}
	}
	return result, nil
}

func (r *sweepRepository) FindDueForCompletion(_ context.Context, now time.Time) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		st := bk.Status()
		if (st == bookingDomain.StatusCurrent || st == bookingDomain.StatusConfirmed) && !bk.EndAt().After(now) {
			result = append(result, bk)
		}
	}
	return result, nil
}

func makeBooking(t *testing.T, status bookingDomain.BookingStatus, start, end time.Time) *bookingDomain.Booking {
	t.Helper()
	return bookingDomain.Reconstruct(
		uuid.New(), "BR-TEST42", uuid.New(), uuid.New(),
		bookingDomain.ServiceBoarding, start, end, status,
		50, 2, 100, "USD",
		time.Now().UTC(), time.Now().UTC(),
	)
}

func TestSweep(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	newSweeper := func(repo *sweepRepository) *StatusSweeper {
		s := NewStatusSweeper(repo, zap.NewNop())
		s.now = func() time.Time { return now }
		return s
	}

	t.Run("confirmed booking past start becomes current", func(t *testing.T) {
		repo := newSweepRepository()
		bk := makeBooking(t, bookingDomain.StatusConfirmed, now.Add(-2*time.Hour), now.Add(48*time.Hour))
		repo.add(bk)

		newSweeper(repo).Sweep(context.Background())

		assert.Equal(t, bookingDomain.StatusCurrent, repo.status(bk.ID()))
	})

	t.Run("current booking past end becomes completed", func(t *testing.T) {
		repo := newSweepRepository()
		bk := makeBooking(t, bookingDomain.StatusCurrent, now.Add(-72*time.Hour), now.Add(-time.Hour))
		repo.add(bk)

		newSweeper(repo).Sweep(context.Background())

		assert.Equal(t, bookingDomain.StatusCompleted, repo.status(bk.ID()))
	})

	t.Run("confirmed booking already past end completes in one sweep", func(t *testing.T) {
		repo := newSweepRepository()
		bk := makeBooking(t, bookingDomain.StatusConfirmed, now.Add(-72*time.Hour), now.Add(-time.Hour))
		repo.add(bk)

		newSweeper(repo).Sweep(context.Background())

		assert.Equal(t, bookingDomain.StatusCompleted, repo.status(bk.ID()))
	})

	t.Run("future bookings are untouched", func(t *testing.T) {
		repo := newSweepRepository()
		bk := makeBooking(t, bookingDomain.StatusConfirmed, now.Add(24*time.Hour), now.Add(72*time.Hour))
		repo.add(bk)

		newSweeper(repo).Sweep(context.Background())

		assert.Equal(t, bookingDomain.StatusConfirmed, repo.status(bk.ID()))
	})

	t.Run("pending and terminal bookings are untouched", func(t *testing.T) {
		repo := newSweepRepository()
		pending := makeBooking(t, bookingDomain.StatusPending, now.Add(-2*time.Hour), now.Add(48*time.Hour))
		cancelled := makeBooking(t, bookingDomain.StatusCancelled, now.Add(-72*time.Hour), now.Add(-time.Hour))
		repo.add(pending)
		repo.add(cancelled)

		newSweeper(repo).Sweep(context.Background())

		assert.Equal(t, bookingDomain.StatusPending, repo.status(pending.ID()))
		assert.Equal(t, bookingDomain.StatusCancelled, repo.status(cancelled.ID()))
	})

	t.Run("sweep is idempotent", func(t *testing.T) {
		repo := newSweepRepository()
		bk := makeBooking(t, bookingDomain.StatusConfirmed, now.Add(-2*time.Hour), now.Add(48*time.Hour))
		repo.add(bk)

		sweeper := newSweeper(repo)
		sweeper.Sweep(context.Background())
		sweeper.Sweep(context.Background())

		assert.Equal(t, bookingDomain.StatusCurrent, repo.status(bk.ID()))
	})
}

func TestStartRejectsBadSchedule(t *testing.T) {
	sweeper := NewStatusSweeper(newSweepRepository(), zap.NewNop())
	err := sweeper.Start("not a cron expression")
	require.Error(t, err)
}
