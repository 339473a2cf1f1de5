package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/brightpaws/service-boarding/internal/domain/booking"
	dogDomain "github.com/brightpaws/service-boarding/internal/domain/dog"
	rateDomain "github.com/brightpaws/service-boarding/internal/domain/rate"
	"github.com/brightpaws/service-boarding/internal/events"
	"github.com/brightpaws/service-boarding/internal/pkg/domain"
	"github.com/brightpaws/service-boarding/internal/pkg/kafka"
)

// QuoteRequest holds the inputs for a price quote.
type QuoteRequest struct {
	ServiceType string    `json:"service_type" binding:"required"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
	DogsCount   int       `json:"dogs_count"`
}

// CreateBookingRequest holds the data needed to create bookings, one per dog.
type CreateBookingRequest struct {
	ServiceType string      `json:"service_type" binding:"required"`
	StartAt     time.Time   `json:"start_at" binding:"required"`
	EndAt       time.Time   `json:"end_at" binding:"required"`
	DogIDs      []uuid.UUID `json:"dog_ids" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	OwnerID     uuid.UUID `json:"owner_id"`
	DogID       uuid.UUID `json:"dog_id"`
	ServiceType string    `json:"service_type"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	Rate        float64   `json:"rate"`
	Units       float64   `json:"units"`
	TotalCost   float64   `json:"total_cost"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingService implements the booking use cases: quoting, creation, and
// guarded status transitions.
type BookingService struct {
	repo     bookingDomain.Repository
	dogs     dogDomain.Repository
	rates    *rateDomain.Resolver
	producer *kafka.Producer
	location *time.Location
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService. location is the business
// time zone all booking timestamps are interpreted in.
func NewBookingService(
	repo bookingDomain.Repository,
	dogs dogDomain.Repository,
	rates *rateDomain.Resolver,
	producer *kafka.Producer,
	location *time.Location,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		dogs:     dogs,
		rates:    rates,
		producer: producer,
		location: location,
		logger:   logger,
	}
}

// ComputeQuote produces an ephemeral price breakdown for the caller. Nothing
// is persisted.
func (s *BookingService) ComputeQuote(ctx context.Context, callerID uuid.UUID, req QuoteRequest) (*bookingDomain.Quote, error) {
	serviceType, err := bookingDomain.ParseServiceType(req.ServiceType)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	start := req.StartAt.In(s.location)
	end := req.EndAt.In(s.location)
	if !end.After(start) {
		return nil, domain.NewValidationError("invalid inputs: pick-up must be after drop-off")
	}

	resolved, err := s.rates.Resolve(ctx, callerID, serviceType.String())
	if err != nil {
		return nil, err
	}

	quote, err := bookingDomain.BuildQuote(serviceType, start, end, req.DogsCount, resolved.Amount, resolved.Currency)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateBookings creates one pending booking per dog with the price snapshot
// taken at request time. All bookings are created atomically.
func (s *BookingService) CreateBookings(ctx context.Context, ownerID uuid.UUID, req CreateBookingRequest) ([]BookingDTO, error) {
	serviceType, err := bookingDomain.ParseServiceType(req.ServiceType)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	start := req.StartAt.In(s.location)
	end := req.EndAt.In(s.location)
	if !end.After(start) {
		return nil, domain.NewValidationError("invalid inputs: pick-up must be after drop-off")
	}
	if len(req.DogIDs) == 0 {
		return nil, domain.NewValidationError("invalid inputs: at least one dog is required")
	}

	// Each booked dog must exist and belong to the caller.
	for _, dogID := range req.DogIDs {
		d, err := s.dogs.FindByID(ctx, dogID)
		if err != nil {
			return nil, err
		}
		if !d.IsOwnedBy(ownerID) {
			return nil, domain.NewForbiddenError("dog does not belong to this user")
		}
	}

	resolved, err := s.rates.Resolve(ctx, ownerID, serviceType.String())
	if err != nil {
		return nil, err
	}

	units := bookingDomain.UnitsFor(serviceType, start, end)

	bookings := make([]*bookingDomain.Booking, 0, len(req.DogIDs))
	for _, dogID := range req.DogIDs {
		bk, err := bookingDomain.NewBooking(ownerID, dogID, serviceType, start, end, resolved.Amount, units, resolved.Currency)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, bk)
	}

	if err := s.repo.SaveAll(ctx, bookings); err != nil {
		return nil, fmt.Errorf("failed to save bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
		s.publishBookingRequested(ctx, bk)
	}
	return dtos, nil
}

// TransitionStatus applies a client- or staff-requested status transition.
//
// Only confirmation (staff, from pending) and cancellation (owner or staff,
// from pending/confirmed) may be requested here. Every guard failure collapses
// into the same generic rejection so an unauthorized caller cannot probe
// booking existence or ownership.
func (s *BookingService) TransitionStatus(ctx context.Context, bookingID uuid.UUID, targetStatus string, callerID uuid.UUID, privileged bool) error {
	target, err := bookingDomain.ParseBookingStatus(targetStatus)
	if err != nil || !target.CanBeRequestedByClient() {
		return domain.NewTransitionRejectedError()
	}
	if target == bookingDomain.StatusConfirmed && !privileged {
		return domain.NewTransitionRejectedError()
	}

	filter := bookingDomain.TransitionFilter{
		FromStatuses: bookingDomain.SourcesForRequestedTarget(target),
	}
	if !privileged {
		filter.OwnerID = &callerID
	}

	ok, err := s.repo.TransitionStatus(ctx, bookingID, target, filter)
	if err != nil {
		return fmt.Errorf("failed to transition booking: %w", err)
	}
	if !ok {
		return domain.NewTransitionRejectedError()
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", bookingID.String()),
		zap.String("status", target.String()),
		zap.Bool("privileged", privileged),
	)
	s.publishStatusChanged(ctx, bookingID, target, callerID)
	return nil
}

// DeclineBooking declines a pending booking on behalf of the external
// calendar service. Conditional like every other transition: a booking that
// already left pending is left untouched.
func (s *BookingService) DeclineBooking(ctx context.Context, bookingID uuid.UUID) error {
	ok, err := s.repo.TransitionStatus(ctx, bookingID, bookingDomain.StatusDeclined, bookingDomain.TransitionFilter{
		FromStatuses: []bookingDomain.BookingStatus{bookingDomain.StatusPending},
	})
	if err != nil {
		return fmt.Errorf("failed to decline booking: %w", err)
	}
	if !ok {
		return domain.NewTransitionRejectedError()
	}

	s.publishStatusChanged(ctx, bookingID, bookingDomain.StatusDeclined, uuid.Nil)
	return nil
}

// GetBooking retrieves a single booking visible to the caller. Non-privileged
// callers asking for someone else's booking get the same not-found answer as
// for a booking that does not exist.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, callerID uuid.UUID, privileged bool) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !privileged && !bk.IsOwnedBy(callerID) {
		return nil, domain.NewNotFoundError("Booking", bookingID.String())
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetOwnerBookings retrieves paginated bookings for a specific owner.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByOwnerID(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:          bk.ID(),
		Reference:   bk.Reference(),
		OwnerID:     bk.OwnerID(),
		DogID:       bk.DogID(),
		ServiceType: bk.ServiceType().String(),
		StartAt:     bk.StartAt(),
		EndAt:       bk.EndAt(),
		Status:      bk.Status().String(),
		Rate:        bk.Rate(),
		Units:       bk.Units(),
		TotalCost:   bk.TotalCost(),
		Currency:    bk.Currency(),
		CreatedAt:   bk.CreatedAt(),
		UpdatedAt:   bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishBookingRequested(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingRequestedEvent{
		BookingID:   bk.ID(),
		Reference:   bk.Reference(),
		OwnerID:     bk.OwnerID(),
		DogID:       bk.DogID(),
		ServiceType: bk.ServiceType().String(),
		StartAt:     bk.StartAt(),
		EndAt:       bk.EndAt(),
		TotalCost:   bk.TotalCost(),
		Currency:    bk.Currency(),
		OccurredAt:  time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, bk.ID().String(), evt)
}

func (s *BookingService) publishStatusChanged(ctx context.Context, bookingID uuid.UUID, status bookingDomain.BookingStatus, changedBy uuid.UUID) {
	var eventType string
	switch status {
	case bookingDomain.StatusConfirmed:
		eventType = events.BookingConfirmed
	case bookingDomain.StatusCancelled:
		eventType = events.BookingCancelled
	case bookingDomain.StatusDeclined:
		eventType = events.BookingDeclined
	case bookingDomain.StatusCompleted:
		eventType = events.BookingCompleted
	default:
		return
	}

	evt := events.BookingStatusChangedEvent{
		BookingID:  bookingID,
		Status:     status.String(),
		ChangedBy:  changedBy,
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, eventType, bookingID.String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-boarding", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
