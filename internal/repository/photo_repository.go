package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	photoDomain "github.com/brightpaws/service-boarding/internal/domain/photo"
	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// PhotoModel is the GORM model for the dog_photos table.
type PhotoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DogID       uuid.UUID `gorm:"type:uuid;index;not null"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	PhotoURL    string    `gorm:"not null;size:500"`
	ContentType string    `gorm:"size:100"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PhotoModel) TableName() string {
	return "dog_photos"
}

// GormPhotoRepository is the GORM-based implementation of photo.Repository.
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewGormPhotoRepository creates a new GormPhotoRepository.
func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Save persists a new dog photo record.
func (r *GormPhotoRepository) Save(ctx context.Context, p *photoDomain.DogPhoto) error {
	model := &PhotoModel{
		ID:          p.ID(),
		DogID:       p.DogID(),
		OwnerID:     p.OwnerID(),
		PhotoURL:    p.PhotoURL(),
		ContentType: p.ContentType(),
		CreatedAt:   p.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save dog photo: %w", err)
	}
	return nil
}

// FindByDogID retrieves all photos for a dog, newest first.
func (r *GormPhotoRepository) FindByDogID(ctx context.Context, dogID uuid.UUID) ([]*photoDomain.DogPhoto, error) {
	var models []PhotoModel
	if err := r.db.WithContext(ctx).
		Where("dog_id = ?", dogID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find photos by dog: %w", err)
	}

	photos := make([]*photoDomain.DogPhoto, len(models))
	for i, m := range models {
		photos[i] = photoDomain.Reconstruct(m.ID, m.DogID, m.OwnerID, m.PhotoURL, m.ContentType, m.CreatedAt)
	}
	return photos, nil
}

// FindByID retrieves a photo record by ID.
func (r *GormPhotoRepository) FindByID(ctx context.Context, id uuid.UUID) (*photoDomain.DogPhoto, error) {
	var model PhotoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("DogPhoto", id.String())
		}
		return nil, fmt.Errorf("failed to find photo by ID: %w", err)
	}
	return photoDomain.Reconstruct(model.ID, model.DogID, model.OwnerID, model.PhotoURL, model.ContentType, model.CreatedAt), nil
}
