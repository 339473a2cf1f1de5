package dog

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for dog profiles.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Dog, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Dog, error)
	Save(ctx context.Context, dog *Dog) error
	Update(ctx context.Context, dog *Dog) error
	Delete(ctx context.Context, id uuid.UUID) error
}
