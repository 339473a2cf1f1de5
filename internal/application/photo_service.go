package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	photoDomain "github.com/brightpaws/service-boarding/internal/domain/photo"
)

// AddPhotoRequest is the request DTO for attaching a photo to a dog. The
// upload itself happens against the external object store; the service
// records the resulting URL.
type AddPhotoRequest struct {
	PhotoURL    string `json:"photo_url" binding:"required"`
	ContentType string `json:"content_type"`
}

// PhotoDTO is the API response representation of a dog photo.
type PhotoDTO struct {
	ID          uuid.UUID `json:"id"`
	DogID       uuid.UUID `json:"dog_id"`
	PhotoURL    string    `json:"photo_url"`
	ContentType string    `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PhotoService implements use cases for dog photo records.
type PhotoService struct {
	repo   photoDomain.Repository
	dogs   *DogService
	logger *zap.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(repo photoDomain.Repository, dogs *DogService, logger *zap.Logger) *PhotoService {
	return &PhotoService{repo: repo, dogs: dogs, logger: logger}
}

// AddPhoto records a photo for a dog owned by the caller and sets it as the
// profile photo.
func (s *PhotoService) AddPhoto(ctx context.Context, dogID, ownerID uuid.UUID, req AddPhotoRequest) (*PhotoDTO, error) {
	// Ownership check happens inside the dog service.
	if err := s.dogs.SetDogPhotoURL(ctx, dogID, ownerID, req.PhotoURL); err != nil {
		return nil, err
	}

	p, err := photoDomain.NewDogPhoto(dogID, ownerID, req.PhotoURL, req.ContentType)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	result := toPhotoDTO(p)
	return &result, nil
}

// ListPhotos retrieves all photos for a dog owned by the caller.
func (s *PhotoService) ListPhotos(ctx context.Context, dogID, ownerID uuid.UUID) ([]PhotoDTO, error) {
	if _, err := s.dogs.GetDog(ctx, dogID, ownerID); err != nil {
		return nil, err
	}

	photos, err := s.repo.FindByDogID(ctx, dogID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PhotoDTO, len(photos))
	for i, p := range photos {
		dtos[i] = toPhotoDTO(p)
	}
	return dtos, nil
}

func toPhotoDTO(p *photoDomain.DogPhoto) PhotoDTO {
	return PhotoDTO{
		ID:          p.ID(),
		DogID:       p.DogID(),
		PhotoURL:    p.PhotoURL(),
		ContentType: p.ContentType(),
		CreatedAt:   p.CreatedAt(),
	}
}
