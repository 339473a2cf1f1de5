package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

const referenceChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Booking is the aggregate root for one dog's reservation of one service.
// Price fields are fixed at creation time; there is no edit path that
// recomputes them.
type Booking struct {
	id          uuid.UUID
	reference   string
	ownerID     uuid.UUID
	dogID       uuid.UUID
	serviceType ServiceType
	startAt     time.Time
	endAt       time.Time
	status      BookingStatus

	rate      float64
	units     float64
	totalCost float64
	currency  string

	createdAt time.Time
	updatedAt time.Time
}

// generateReference creates a booking reference in the format "BR-XXXXXX".
func generateReference() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		result[i] = referenceChars[n.Int64()]
	}
	return "BR-" + string(result), nil
}

// NewBooking creates a pending booking with its price snapshot. The time range
// must already be in the business time zone; end must be after start.
func NewBooking(
	ownerID, dogID uuid.UUID,
	serviceType ServiceType,
	startAt, endAt time.Time,
	rate, units float64,
	currency string,
) (*Booking, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if dogID == uuid.Nil {
		return nil, domain.NewValidationError("dog ID is required")
	}
	if !serviceType.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid service type: %s", serviceType))
	}
	if !endAt.After(startAt) {
		return nil, domain.NewValidationError("pick-up must be after drop-off")
	}
	if rate <= 0 {
		return nil, domain.NewNoRateError(serviceType.String())
	}

	reference, err := generateReference()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:          uuid.New(),
		reference:   reference,
		ownerID:     ownerID,
		dogID:       dogID,
		serviceType: serviceType,
		startAt:     startAt,
		endAt:       endAt,
		status:      StatusPending,
		rate:        rate,
		units:       units,
		totalCost:   RoundMoney(units * rate),
		currency:    currency,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	reference string,
	ownerID, dogID uuid.UUID,
	serviceType ServiceType,
	startAt, endAt time.Time,
	status BookingStatus,
	rate, units, totalCost float64,
	currency string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		reference:   reference,
		ownerID:     ownerID,
		dogID:       dogID,
		serviceType: serviceType,
		startAt:     startAt,
		endAt:       endAt,
		status:      status,
		rate:        rate,
		units:       units,
		totalCost:   totalCost,
		currency:    currency,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Reference returns the human-readable booking reference.
func (b *Booking) Reference() string { return b.reference }

// OwnerID returns the booking owner's user ID.
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }

// DogID returns the boarded dog's ID.
func (b *Booking) DogID() uuid.UUID { return b.dogID }

// ServiceType returns the booked service type.
func (b *Booking) ServiceType() ServiceType { return b.serviceType }

// StartAt returns the drop-off timestamp.
func (b *Booking) StartAt() time.Time { return b.startAt }

// EndAt returns the pick-up timestamp.
func (b *Booking) EndAt() time.Time { return b.endAt }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Rate returns the per-unit rate snapshotted at creation.
func (b *Booking) Rate() float64 { return b.rate }

// Units returns the billable unit count snapshotted at creation.
func (b *Booking) Units() float64 { return b.units }

// TotalCost returns the booking's total cost.
func (b *Booking) TotalCost() float64 { return b.totalCost }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsOwnedBy checks if the booking belongs to the given owner.
func (b *Booking) IsOwnedBy(ownerID uuid.UUID) bool {
	return b.ownerID == ownerID
}
