package photo

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for dog photos.
type Repository interface {
	Save(ctx context.Context, photo *DogPhoto) error
	FindByDogID(ctx context.Context, dogID uuid.UUID) ([]*DogPhoto, error)
	FindByID(ctx context.Context, id uuid.UUID) (*DogPhoto, error)
}
