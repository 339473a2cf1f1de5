package rate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// Resolver looks up the applicable rate for a user and service type: the
// user-specific override wins, otherwise the system default applies.
type Resolver struct {
	repo Repository
}

// NewResolver creates a rate resolver backed by the given repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the rate to bill the given user for a service type. A
// missing or non-positive rate is a configuration error: callers must refuse
// to quote rather than price at zero.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, serviceType string) (Rate, error) {
	userRate, err := r.repo.FindUserRate(ctx, userID, serviceType)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to look up user rate: %w", err)
	}
	if userRate != nil {
		if !userRate.IsValid() {
			return Rate{}, domain.NewNoRateError(serviceType)
		}
		return *userRate, nil
	}

	defaultRate, err := r.repo.FindDefaultRate(ctx, serviceType)
	if err != nil {
		return Rate{}, fmt.Errorf("failed to look up default rate: %w", err)
	}
	if defaultRate == nil || !defaultRate.IsValid() {
		return Rate{}, domain.NewNoRateError(serviceType)
	}
	return *defaultRate, nil
}
