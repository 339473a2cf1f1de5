package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/brightpaws/service-boarding/internal/pkg/domain"
	"github.com/brightpaws/service-boarding/internal/pkg/kafka"
)

// BookingDecliner applies a calendar-originated decline to a booking.
type BookingDecliner interface {
	DeclineBooking(ctx context.Context, bookingID uuid.UUID) error
}

// CalendarEventConsumer listens to calendar decision events and applies the
// resulting booking transitions.
type CalendarEventConsumer struct {
	consumer *kafka.Consumer
	service  BookingDecliner
	logger   *zap.Logger
}

// NewCalendarEventConsumer creates a new CalendarEventConsumer.
func NewCalendarEventConsumer(
	brokers []string,
	groupID string,
	service BookingDecliner,
	logger *zap.Logger,
) *CalendarEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicCalendarEvents, logger)
	return &CalendarEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming calendar events. This blocks until the context is cancelled.
func (c *CalendarEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *CalendarEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *CalendarEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from calendar topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case CalendarRequestDeclined:
		return c.handleDeclined(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled calendar event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *CalendarEventConsumer) handleDeclined(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt CalendarDeclinedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse CalendarDeclinedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	c.logger.Info("processing calendar decline",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("declined_by", evt.DeclinedBy),
	)

	err := c.service.DeclineBooking(ctx, evt.BookingID)
	if err != nil {
		// The booking already left pending (cancelled or confirmed in the
		// meantime); the decline is stale, not retryable.
		var de *domain.DomainError
		if errors.As(err, &de) && de.Code == domain.CodeTransitionRejected {
			c.logger.Warn("stale calendar decline ignored",
				zap.String("booking_id", evt.BookingID.String()),
			)
			return nil
		}
		c.logger.Error("failed to decline booking",
			zap.String("booking_id", evt.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}
