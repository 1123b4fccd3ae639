package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// TopicPublisher is the subset of the NSQ producer used by NSQPublisher
type TopicPublisher interface {
	Publish(topic string, message interface{}) error
}

// NSQPublisher exports session lifecycle events to NSQ
type NSQPublisher struct {
	producer TopicPublisher
}

// NewNSQPublisher creates the lifecycle event publisher
func NewNSQPublisher(producer TopicPublisher) tracking.EventPublisher {
	return &NSQPublisher{producer: producer}
}

func (p *NSQPublisher) PublishSessionStarted(ctx context.Context, event models.SessionLifecycleEvent) error {
	return p.publish(ctx, constants.TopicSessionStarted, event)
}

func (p *NSQPublisher) PublishSessionEnded(ctx context.Context, event models.SessionLifecycleEvent) error {
	return p.publish(ctx, constants.TopicSessionEnded, event)
}

func (p *NSQPublisher) publish(ctx context.Context, topic string, event models.SessionLifecycleEvent) error {
	if err := p.producer.Publish(topic, event); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	logger.InfoCtx(ctx, "Published session lifecycle event",
		logger.String("topic", topic),
		logger.String("booking_id", event.BookingID),
		logger.String("state", string(event.State)))
	return nil
}

// NoopPublisher drops lifecycle events when no NSQ daemon is configured
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that does nothing
func NewNoopPublisher() tracking.EventPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) PublishSessionStarted(context.Context, models.SessionLifecycleEvent) error {
	return nil
}

func (NoopPublisher) PublishSessionEnded(context.Context, models.SessionLifecycleEvent) error {
	return nil
}
