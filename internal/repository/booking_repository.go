package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/brightpaws/service-boarding/internal/domain/booking"
	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference   string    `gorm:"uniqueIndex;not null;size:20"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	DogID       uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceType string    `gorm:"not null;size:20"`
	StartAt     time.Time `gorm:"not null;index"`
	EndAt       time.Time `gorm:"not null;index"`
	Status      string    `gorm:"not null;size:20;index"`
	Rate        float64   `gorm:"not null"`
	Units       float64   `gorm:"not null"`
	TotalCost   float64   `gorm:"not null"`
	Currency    string    `gorm:"not null;size:3;default:'USD'"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByOwnerID retrieves bookings for a specific owner with pagination.
func (r *GormBookingRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("start_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("start_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(bk)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// SaveAll persists a batch of new bookings as one INSERT, so a multi-dog
// request either creates every booking or none.
func (r *GormBookingRepository) SaveAll(ctx context.Context, bookings []*bookingDomain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	models := make([]*BookingModel, len(bookings))
	for i, bk := range bookings {
		models[i] = toBookingModel(bk)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}

// TransitionStatus applies a conditional atomic status update: the row is
// written only if its current status is in filter.FromStatuses and, when an
// owner filter is set, the booking belongs to that owner. Concurrent attempts
// on the same booking therefore cannot both succeed.
func (r *GormBookingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, target bookingDomain.BookingStatus, filter bookingDomain.TransitionFilter) (bool, error) {
	from := make([]string, len(filter.FromStatuses))
	for i, s := range filter.FromStatuses {
		from[i] = string(s)
	}

	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND status IN ?", id, from)
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}

	result := q.Updates(map[string]interface{}{
		"status":     string(target),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return false, fmt.Errorf("failed to transition booking status: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// FindDueForStart lists confirmed bookings whose stay has begun.
func (r *GormBookingRepository) FindDueForStart(ctx context.Context, now time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND start_at <= ?", string(bookingDomain.StatusConfirmed), now).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings due for start: %w", err)
	}
	bookings, _, err := toDomainBookings(models, 0)
	return bookings, err
}

// FindDueForCompletion lists current or confirmed bookings whose stay has ended.
func (r *GormBookingRepository) FindDueForCompletion(ctx context.Context, now time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND end_at <= ?",
			[]string{string(bookingDomain.StatusCurrent), string(bookingDomain.StatusConfirmed)}, now).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings due for completion: %w", err)
	}
	bookings, _, err := toDomainBookings(models, 0)
	return bookings, err
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:          bk.ID(),
		Reference:   bk.Reference(),
		OwnerID:     bk.OwnerID(),
		DogID:       bk.DogID(),
		ServiceType: string(bk.ServiceType()),
		StartAt:     bk.StartAt(),
		EndAt:       bk.EndAt(),
		Status:      string(bk.Status()),
		Rate:        bk.Rate(),
		Units:       bk.Units(),
		TotalCost:   bk.TotalCost(),
		Currency:    bk.Currency(),
		CreatedAt:   bk.CreatedAt(),
		UpdatedAt:   bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	serviceType, err := bookingDomain.ParseServiceType(m.ServiceType)
	if err != nil {
		return nil, err
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.Reference,
		m.OwnerID,
		m.DogID,
		serviceType,
		m.StartAt,
		m.EndAt,
		status,
		m.Rate,
		m.Units,
		m.TotalCost,
		m.Currency,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
