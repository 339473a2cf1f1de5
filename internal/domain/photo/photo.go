package photo

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// DogPhoto records where a dog's photo lives in the external object store.
// The bytes themselves are uploaded by the storage collaborator; the service
// keeps only the resulting URL.
type DogPhoto struct {
	id          uuid.UUID
	dogID       uuid.UUID
	ownerID     uuid.UUID
	photoURL    string
	contentType string
	createdAt   time.Time
}

// NewDogPhoto creates a photo record for a dog.
func NewDogPhoto(dogID, ownerID uuid.UUID, photoURL, contentType string) (*DogPhoto, error) {
	if dogID == uuid.Nil {
		return nil, domain.NewValidationError("dog ID is required")
	}
	if photoURL == "" {
		return nil, domain.NewValidationError("photo URL is required")
	}

	return &DogPhoto{
		id:          uuid.New(),
		dogID:       dogID,
		ownerID:     ownerID,
		photoURL:    photoURL,
		contentType: contentType,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a DogPhoto from persistence.
func Reconstruct(id, dogID, ownerID uuid.UUID, photoURL, contentType string, createdAt time.Time) *DogPhoto {
	return &DogPhoto{
		id:          id,
		dogID:       dogID,
		ownerID:     ownerID,
		photoURL:    photoURL,
		contentType: contentType,
		createdAt:   createdAt,
	}
}

// Getters.
func (p *DogPhoto) ID() uuid.UUID        { return p.id }
func (p *DogPhoto) DogID() uuid.UUID     { return p.dogID }
func (p *DogPhoto) OwnerID() uuid.UUID   { return p.ownerID }
func (p *DogPhoto) PhotoURL() string     { return p.photoURL }
func (p *DogPhoto) ContentType() string  { return p.contentType }
func (p *DogPhoto) CreatedAt() time.Time { return p.createdAt }
