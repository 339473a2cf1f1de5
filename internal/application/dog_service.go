package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	dogDomain "github.com/brightpaws/service-boarding/internal/domain/dog"
	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// CreateDogRequest is the request DTO for creating a dog profile.
type CreateDogRequest struct {
	Name             string  `json:"name" binding:"required"`
	Breed            string  `json:"breed"`
	Sex              string  `json:"sex"`
	WeightKg         float64 `json:"weight_kg"`
	AgeYears         int     `json:"age_years"`
	FeedingSchedule  string  `json:"feeding_schedule"`
	ExerciseSchedule string  `json:"exercise_schedule"`
	BehaviorNotes    string  `json:"behavior_notes"`
	MedicationNeeds  string  `json:"medication_needs"`
}

// UpdateDogRequest is the request DTO for updating a dog profile.
type UpdateDogRequest struct {
	Name             string  `json:"name"`
	Breed            string  `json:"breed"`
	Sex              string  `json:"sex"`
	WeightKg         float64 `json:"weight_kg"`
	AgeYears         int     `json:"age_years"`
	FeedingSchedule  string  `json:"feeding_schedule"`
	ExerciseSchedule string  `json:"exercise_schedule"`
	BehaviorNotes    string  `json:"behavior_notes"`
	MedicationNeeds  string  `json:"medication_needs"`
}

// DogDTO is the API response representation of a dog profile.
type DogDTO struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Name             string    `json:"name"`
	Breed            string    `json:"breed,omitempty"`
	Sex              string    `json:"sex,omitempty"`
	WeightKg         float64   `json:"weight_kg,omitempty"`
	AgeYears         int       `json:"age_years,omitempty"`
	FeedingSchedule  string    `json:"feeding_schedule,omitempty"`
	ExerciseSchedule string    `json:"exercise_schedule,omitempty"`
	BehaviorNotes    string    `json:"behavior_notes,omitempty"`
	MedicationNeeds  string    `json:"medication_needs,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DogService implements use cases for dog profile management.
type DogService struct {
	repo   dogDomain.Repository
	logger *zap.Logger
}

// NewDogService creates a new DogService.
func NewDogService(repo dogDomain.Repository, logger *zap.Logger) *DogService {
	return &DogService{repo: repo, logger: logger}
}

// CreateDog creates a new dog profile for the given owner.
func (s *DogService) CreateDog(ctx context.Context, ownerID uuid.UUID, req CreateDogRequest) (*DogDTO, error) {
	d, err := dogDomain.NewDog(
		ownerID,
		req.Name, req.Breed, req.Sex,
		req.WeightKg, req.AgeYears,
		req.FeedingSchedule, req.ExerciseSchedule, req.BehaviorNotes, req.MedicationNeeds,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("dog profile created",
		zap.String("dog_id", d.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toDogDTO(d)
	return &result, nil
}

// GetDog retrieves a dog profile owned by the caller.
func (s *DogService) GetDog(ctx context.Context, dogID, ownerID uuid.UUID) (*DogDTO, error) {
	d, err := s.findOwned(ctx, dogID, ownerID)
	if err != nil {
		return nil, err
	}
	result := toDogDTO(d)
	return &result, nil
}

// ListDogs retrieves all dog profiles for the caller.
func (s *DogService) ListDogs(ctx context.Context, ownerID uuid.UUID) ([]DogDTO, error) {
	dogs, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]DogDTO, len(dogs))
	for i, d := range dogs {
		dtos[i] = toDogDTO(d)
	}
	return dtos, nil
}

// UpdateDog applies partial updates to a dog profile owned by the caller.
func (s *DogService) UpdateDog(ctx context.Context, dogID, ownerID uuid.UUID, req UpdateDogRequest) (*DogDTO, error) {
	d, err := s.findOwned(ctx, dogID, ownerID)
	if err != nil {
		return nil, err
	}

	d.Update(
		req.Name, req.Breed, req.Sex,
		req.WeightKg, req.AgeYears,
		req.FeedingSchedule, req.ExerciseSchedule, req.BehaviorNotes, req.MedicationNeeds,
	)

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	result := toDogDTO(d)
	return &result, nil
}

// DeleteDog removes a dog profile owned by the caller.
func (s *DogService) DeleteDog(ctx context.Context, dogID, ownerID uuid.UUID) error {
	if _, err := s.findOwned(ctx, dogID, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, dogID)
}

// SetDogPhotoURL records the stored photo location on the profile.
func (s *DogService) SetDogPhotoURL(ctx context.Context, dogID, ownerID uuid.UUID, url string) error {
	d, err := s.findOwned(ctx, dogID, ownerID)
	if err != nil {
		return err
	}
	d.SetPhotoURL(url)
	return s.repo.Update(ctx, d)
}

// findOwned fetches a dog and verifies ownership. Someone else's dog reads
// the same as a missing one.
func (s *DogService) findOwned(ctx context.Context, dogID, ownerID uuid.UUID) (*dogDomain.Dog, error) {
	d, err := s.repo.FindByID(ctx, dogID)
	if err != nil {
		return nil, err
	}
	if !d.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("Dog", dogID.String())
	}
	return d, nil
}

func toDogDTO(d *dogDomain.Dog) DogDTO {
	return DogDTO{
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
