//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpaws/service-boarding/internal/application"
	boardingEvents "github.com/brightpaws/service-boarding/internal/events"
	"github.com/brightpaws/service-boarding/internal/pkg/domain"
)

// TestCalendarDeclined_DeclinesBooking verifies that when a
// CalendarDeclinedEvent is published to calendar.events, the boarding service
// picks it up and transitions the pending booking to "declined".
func TestCalendarDeclined_DeclinesBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBoardingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ownerID := uuid.New()
	dogID := seedDog(t, infra.DB, ownerID)
	bookingID := seedBooking(t, infra.DB, ownerID, dogID, "pending")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := boardingEvents.CalendarDeclinedEvent{
		BookingID:  bookingID,
		DeclinedBy: "staff@example.com",
		Reason:     "fully booked over the holiday",
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, boardingEvents.TopicCalendarEvents,
		"service-calendar", boardingEvents.CalendarRequestDeclined, evt)

	waitForBookingStatus(t, infra.DB, bookingID, "declined", 15*time.Second)

	ce := consumeOneEvent(t, infra.KafkaBrokers, boardingEvents.TopicBookingEvents,
		boardingEvents.BookingDeclined, 15*time.Second)

	var declined boardingEvents.BookingStatusChangedEvent
	require.NoError(t, ce.ParseData(&declined))
	assert.Equal(t, bookingID, declined.BookingID)
	assert.Equal(t, "declined", declined.Status)
}

// TestCalendarDeclined_StaleDeclineLeavesConfirmedBooking verifies that a
// decline arriving after the booking was confirmed is dropped.
func TestCalendarDeclined_StaleDeclineLeavesConfirmedBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBoardingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	ownerID := uuid.New()
	dogID := seedDog(t, infra.DB, ownerID)
	bookingID := seedBooking(t, infra.DB, ownerID, dogID, "confirmed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second)

	evt := boardingEvents.CalendarDeclinedEvent{
		BookingID:  bookingID,
		DeclinedBy: "staff@example.com",
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, boardingEvents.TopicCalendarEvents,
		"service-calendar", boardingEvents.CalendarRequestDeclined, evt)

	// Give the consumer time to process, then confirm nothing changed.
	time.Sleep(5 * time.Second)
	waitForBookingStatus(t, infra.DB, bookingID, "confirmed", 5*time.Second)
}

// TestConcurrentCancel_SucceedsExactlyOnce hammers the conditional status
// update with parallel cancels; the row-level condition must let exactly one
// writer through.
func TestConcurrentCancel_SucceedsExactlyOnce(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBoardingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	ownerID := uuid.New()
	dogID := seedDog(t, infra.DB, ownerID)
	bookingID := seedBooking(t, infra.DB, ownerID, dogID, "pending")

	const attempts = 10
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- stack.Service.TransitionStatus(
				context.Background(), bookingID, "cancelled", ownerID, false)
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, domain.CodeTransitionRejected, domain.CodeOf(err))
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent cancel must win")

	waitForBookingStatus(t, infra.DB, bookingID, "cancelled", 5*time.Second)
}

// TestCreateBookings_PersistsSnapshotAndPublishes verifies the end-to-end
// creation path: price snapshot rows in Postgres and a requested event per
// booking on booking.events.
func TestCreateBookings_PersistsSnapshotAndPublishes(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBoardingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()

	seedDefaultRates(t, infra.DB)
	ownerID := uuid.New()
	dogID := seedDog(t, infra.DB, ownerID)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	dtos, err := stack.Service.CreateBookings(context.Background(), ownerID, application.CreateBookingRequest{
		ServiceType: "boarding",
		StartAt:     time.Date(2026, 9, 1, 15, 0, 0, 0, ny),
		EndAt:       time.Date(2026, 9, 3, 11, 0, 0, 0, ny),
		DogIDs:      []uuid.UUID{dogID},
	})
	require.NoError(t, err)
	require.Len(t, dtos, 1)

	assert.Equal(t, "pending", dtos[0].Status)
	assert.Equal(t, 2.0, dtos[0].Units)
	assert.Equal(t, 100.0, dtos[0].TotalCost)

	model := waitForBookingStatus(t, infra.DB, dtos[0].ID, "pending", 5*time.Second)
	assert.Equal(t, 50.0, model.Rate)
	assert.Equal(t, 100.0, model.TotalCost)
	assert.Equal(t, "USD", model.Currency)

	ce := consumeOneEvent(t, infra.KafkaBrokers, boardingEvents.TopicBookingEvents,
		boardingEvents.BookingRequested, 15*time.Second)

	var requested boardingEvents.BookingRequestedEvent
	require.NoError(t, ce.ParseData(&requested))
	assert.Equal(t, dtos[0].ID, requested.BookingID)
	assert.Equal(t, ownerID, requested.OwnerID)
	assert.Equal(t, 100.0, requested.TotalCost)
}
