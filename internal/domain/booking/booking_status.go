package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCurrent   BookingStatus = "current"
	StatusCancelled BookingStatus = "cancelled"
	StatusDeclined  BookingStatus = "declined"
	StatusCompleted BookingStatus = "completed"
)

// validTransitions defines the state machine for booking status transitions.
// current and completed are reached only through the status sweeper, and
// declined only through the calendar decision consumer; the client-facing
// transition API is restricted further (see CanBeRequestedByClient).
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusDeclined},
	StatusConfirmed: {StatusCancelled, StatusCurrent, StatusCompleted},
	StatusCurrent:   {StatusCompleted},
	StatusCancelled: {},
	StatusDeclined:  {},
	StatusCompleted: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanBeRequestedByClient reports whether the status is a legal target of the
// public transition endpoint. Only confirmation and cancellation may be
// requested there; everything else is applied by internal processes.
func (s BookingStatus) CanBeRequestedByClient() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// SourcesForRequestedTarget returns the set of current statuses from which the
// public transition endpoint may move a booking to the given target, or nil
// when the target is not requestable at all.
func SourcesForRequestedTarget(target BookingStatus) []BookingStatus {
	switch target {
	case StatusConfirmed:
		return []BookingStatus{StatusPending}
	case StatusCancelled:
		return []BookingStatus{StatusPending, StatusConfirmed}
	default:
		return nil
	}
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
