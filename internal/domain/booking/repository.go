package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TransitionFilter describes the precondition of a conditional status update.
// The write must apply only if the booking's current status is in FromStatuses
// and, when OwnerID is set, the booking belongs to that owner. Implementations
// must express this as a single conditional write, never read-then-write: two
// concurrent transition attempts on the same booking must not both succeed.
type TransitionFilter struct {
	FromStatuses []BookingStatus
	OwnerID      *uuid.UUID
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByOwnerID retrieves bookings belonging to a specific owner with pagination.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// SaveAll persists a batch of new bookings in a single atomic insert.
	// Either every booking is created or none are.
	SaveAll(ctx context.Context, bookings []*Booking) error

	// TransitionStatus applies a conditional atomic status update. It returns
	// true when exactly one row was updated and false when the precondition
	// did not hold (wrong current status, wrong owner, or no such booking).
	TransitionStatus(ctx context.Context, id uuid.UUID, target BookingStatus, filter TransitionFilter) (bool, error)

	// FindDueForStart lists confirmed bookings whose stay has begun.
	FindDueForStart(ctx context.Context, now time.Time) ([]*Booking, error)

	// FindDueForCompletion lists current or confirmed bookings whose stay has ended.
	FindDueForCompletion(ctx context.Context, now time.Time) ([]*Booking, error)
}
