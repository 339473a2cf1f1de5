package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics used by the boarding service.
const (
	TopicBookingEvents  = "booking.events"
	TopicCalendarEvents = "calendar.events"
)

// Event types published on booking.events.
const (
	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingDeclined  = "booking.declined"
	BookingCompleted = "booking.completed"
)

// Event types consumed from calendar.events. The calendar service emits a
// decision event when staff act on a booking request from their calendar.
const (
	CalendarRequestDeclined = "calendar.request.declined"
)

// BookingRequestedEvent is published when a client submits a booking.
type BookingRequestedEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	Reference   string    `json:"reference"`
	OwnerID     uuid.UUID `json:"owner_id"`
	DogID       uuid.UUID `json:"dog_id"`
	ServiceType string    `json:"service_type"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	TotalCost   float64   `json:"total_cost"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published for every status transition
// (confirmed, cancelled, declined, completed).
type BookingStatusChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Status     string    `json:"status"`
	ChangedBy  uuid.UUID `json:"changed_by,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CalendarDeclinedEvent is the payload of calendar.request.declined.
type CalendarDeclinedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	DeclinedBy string    `json:"declined_by"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
