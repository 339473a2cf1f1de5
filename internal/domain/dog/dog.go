package dog

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// Dog is the aggregate root for a client's dog profile.
type Dog struct {
	id               uuid.UUID
	ownerID          uuid.UUID
	name             string
	breed            string
	sex              string
	weightKg         float64
	ageYears         int
	feedingSchedule  string
	exerciseSchedule string
	behaviorNotes    string
	medicationNeeds  string
	photoURL         string
	createdAt        time.Time
	updatedAt        time.Time
}

// NewDog creates a dog profile with validated fields.
func NewDog(
	ownerID uuid.UUID,
	name, breed, sex string,
	weightKg float64,
	ageYears int,
	feedingSchedule, exerciseSchedule, behaviorNotes, medicationNeeds string,
) (*Dog, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("dog name is required")
	}
	if weightKg < 0 {
		return nil, domain.NewValidationError("weight must not be negative")
	}
	if ageYears < 0 {
		return nil, domain.NewValidationError("age must not be negative")
	}

	now := time.Now().UTC()
	return &Dog{
		id:               uuid.New(),
		ownerID:          ownerID,
		name:             name,
		breed:            breed,
		sex:              sex,
		weightKg:         weightKg,
		ageYears:         ageYears,
		feedingSchedule:  feedingSchedule,
		exerciseSchedule: exerciseSchedule,
		behaviorNotes:    behaviorNotes,
		medicationNeeds:  medicationNeeds,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Dog from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name, breed, sex string,
	weightKg float64,
	ageYears int,
	feedingSchedule, exerciseSchedule, behaviorNotes, medicationNeeds, photoURL string,
	createdAt, updatedAt time.Time,
) *Dog {
	return &Dog{
		id:               id,
		ownerID:          ownerID,
		name:             name,
		breed:            breed,
		sex:              sex,
		weightKg:         weightKg,
		ageYears:         ageYears,
		feedingSchedule:  feedingSchedule,
		exerciseSchedule: exerciseSchedule,
		behaviorNotes:    behaviorNotes,
		medicationNeeds:  medicationNeeds,
		photoURL:         photoURL,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (d *Dog) ID() uuid.UUID            { return d.id }
func (d *Dog) OwnerID() uuid.UUID       { return d.ownerID }
func (d *Dog) Name() string             { return d.name }
func (d *Dog) Breed() string            { return d.breed }
func (d *Dog) Sex() string              { return d.sex }
func (d *Dog) WeightKg() float64        { return d.weightKg }
func (d *Dog) AgeYears() int            { return d.ageYears }
func (d *Dog) FeedingSchedule() string  { return d.feedingSchedule }
func (d *Dog) ExerciseSchedule() string { return d.exerciseSchedule }
func (d *Dog) BehaviorNotes() string    { return d.behaviorNotes }
func (d *Dog) MedicationNeeds() string  { return d.medicationNeeds }
func (d *Dog) PhotoURL() string         { return d.photoURL }
func (d *Dog) CreatedAt() time.Time     { return d.createdAt }
func (d *Dog) UpdatedAt() time.Time     { return d.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the dog belongs to the given owner.
func (d *Dog) IsOwnedBy(ownerID uuid.UUID) bool {
	return d.ownerID == ownerID
}

// Update applies partial updates to the profile. Empty strings and
// non-positive numbers leave the existing value in place.
func (d *Dog) Update(
	name, breed, sex string,
	weightKg float64,
	ageYears int,
	feedingSchedule, exerciseSchedule, behaviorNotes, medicationNeeds string,
) {
	if name != "" {
		d.name = name
	}
	if breed != "" {
		d.breed = breed
	}
	if sex != "" {
		d.sex = sex
	}
	if weightKg > 0 {
		d.weightKg = weightKg
	}
	if ageYears > 0 {
		d.ageYears = ageYears
	}
	if feedingSchedule != "" {
		d.feedingSchedule = feedingSchedule
	}
	if exerciseSchedule != "" {
		d.exerciseSchedule = exerciseSchedule
	}
	if behaviorNotes != "" {
		d.behaviorNotes = behaviorNotes
	}
	if medicationNeeds != "" {
		d.medicationNeeds = medicationNeeds
	}
	d.updatedAt = time.Now().UTC()
}

// SetPhotoURL records the stored photo location for this dog.
func (d *Dog) SetPhotoURL(url string) {
	d.photoURL = url
	d.updatedAt = time.Now().UTC()
}
