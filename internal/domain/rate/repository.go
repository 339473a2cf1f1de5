package rate

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines read access to configured rates. Implementations return
// (nil, nil) when no row exists so the resolver can distinguish "not
// configured" from infrastructure failure.
type Repository interface {
	// FindUserRate retrieves a user-specific rate override for a service type.
	FindUserRate(ctx context.Context, userID uuid.UUID, serviceType string) (*Rate, error)

	// FindDefaultRate retrieves the system default rate for a service type.
	FindDefaultRate(ctx context.Context, serviceType string) (*Rate, error)
}
