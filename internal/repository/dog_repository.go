package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dogDomain "github.com/brightpaws/service-boarding/internal/domain/dog"
	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// DogModel is the GORM model for the dogs table.
type DogModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Name             string    `gorm:"not null;size:100"`
	Breed            string    `gorm:"size:100"`
	Sex              string    `gorm:"size:10"`
	WeightKg         float64   `gorm:""`
	AgeYears         int       `gorm:""`
	FeedingSchedule  string    `gorm:"size:1000"`
	ExerciseSchedule string    `gorm:"size:1000"`
	BehaviorNotes    string    `gorm:"size:1000"`
	MedicationNeeds  string    `gorm:"size:1000"`
	PhotoURL         string    `gorm:"size:500"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (DogModel) TableName() string {
	return "dogs"
}

// GormDogRepository is the GORM-based implementation of dog.Repository.
type GormDogRepository struct {
	db *gorm.DB
}

// NewGormDogRepository creates a new GormDogRepository.
func NewGormDogRepository(db *gorm.DB) *GormDogRepository {
	return &GormDogRepository{db: db}
}

// FindByID retrieves a dog profile by ID.
func (r *GormDogRepository) FindByID(ctx context.Context, id uuid.UUID) (*dogDomain.Dog, error) {
	var model DogModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Dog", id.String())
		}
		return nil, fmt.Errorf("failed to find dog by ID: %w", err)
	}
	return toDomainDog(&model), nil
}

// FindByOwnerID retrieves all dog profiles for an owner, newest first.
func (r *GormDogRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*dogDomain.Dog, error) {
	var models []DogModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find dogs by owner: %w", err)
	}

	dogs := make([]*dogDomain.Dog, len(models))
	for i, m := range models {
		dogs[i] = toDomainDog(&m)
	}
	return dogs, nil
}

// Save persists a new dog profile.
func (r *GormDogRepository) Save(ctx context.Context, d *dogDomain.Dog) error {
	if err := r.db.WithContext(ctx).Create(toDogModel(d)).Error; err != nil {
		return fmt.Errorf("failed to save dog: %w", err)
	}
	return nil
}

// Update persists changes to an existing dog profile.
func (r *GormDogRepository) Update(ctx context.Context, d *dogDomain.Dog) error {
	result := r.db.WithContext(ctx).
		Model(&DogModel{}).
		Where("id = ?", d.ID()).
		Updates(toDogModel(d))
	if result.Error != nil {
		return fmt.Errorf("failed to update dog: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Dog", d.ID().String())
	}
	return nil
}

// Delete removes a dog profile.
func (r *GormDogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DogModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete dog: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Dog", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toDogModel(d *dogDomain.Dog) *DogModel {
	return &DogModel{
		ID:               d.ID(),
		OwnerID:          d.OwnerID(),
		Name:             d.Name(),
		Breed:            d.Breed(),
		Sex:              d.Sex(),
		WeightKg:         d.WeightKg(),
		AgeYears:         d.AgeYears(),
		FeedingSchedule:  d.FeedingSchedule(),
		ExerciseSchedule: d.ExerciseSchedule(),
		BehaviorNotes:    d.BehaviorNotes(),
		MedicationNeeds:  d.MedicationNeeds(),
		PhotoURL:         d.PhotoURL(),
		CreatedAt:        d.CreatedAt(),
		UpdatedAt:        d.UpdatedAt(),
	}
}

func toDomainDog(m *DogModel) *dogDomain.Dog {
	return dogDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.Name,
		m.Breed,
		m.Sex,
		m.WeightKg,
		m.AgeYears,
		m.FeedingSchedule,
		m.ExerciseSchedule,
		m.BehaviorNotes,
		m.MedicationNeeds,
		m.PhotoURL,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
