package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	rateDomain "github.com/brightpaws/service-boarding/internal/domain/rate"
)

// UserRateModel is the GORM model for per-user rate overrides.
type UserRateModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_service;not null"`
	ServiceType string    `gorm:"uniqueIndex:idx_user_service;not null;size:20"`
	Rate        float64   `gorm:"not null"`
	Currency    string    `gorm:"not null;size:3;default:'USD'"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserRateModel) TableName() string {
	return "service_rates_user"
}

// DefaultRateModel is the GORM model for system default rates.
type DefaultRateModel struct {
	ServiceType string    `gorm:"primaryKey;size:20"`
	Rate        float64   `gorm:"not null"`
	Currency    string    `gorm:"not null;size:3;default:'USD'"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (DefaultRateModel) TableName() string {
	return "service_rates_default"
}

// GormRateRepository is the GORM-based implementation of rate.Repository.
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository.
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindUserRate retrieves a user-specific rate override, or nil when none exists.
func (r *GormRateRepository) FindUserRate(ctx context.Context, userID uuid.UUID, serviceType string) (*rateDomain.Rate, error) {
	var model UserRateModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND service_type = ?", userID, serviceType).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user rate: %w", err)
	}
	return &rateDomain.Rate{ServiceType: model.ServiceType, Amount: model.Rate, Currency: model.Currency}, nil
}

// FindDefaultRate retrieves the system default rate, or nil when none exists.
func (r *GormRateRepository) FindDefaultRate(ctx context.Context, serviceType string) (*rateDomain.Rate, error) {
	var model DefaultRateModel
	err := r.db.WithContext(ctx).
		Where("service_type = ?", serviceType).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find default rate: %w", err)
	}
	return &rateDomain.Rate{ServiceType: model.ServiceType, Amount: model.Rate, Currency: model.Currency}, nil
}
