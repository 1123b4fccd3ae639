package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/websocket"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// LocalBroadcaster applies channel operations to this process's manager only
type LocalBroadcaster struct {
	manager *websocket.Manager
}

// NewLocalBroadcaster is used when no relay is configured
func NewLocalBroadcaster(manager *websocket.Manager) tracking.Broadcaster {
	return &LocalBroadcaster{manager: manager}
}

func (b *LocalBroadcaster) Subscribe(_ context.Context, bookingID string, userIDs ...string) error {
	b.manager.Subscribe(bookingID, userIDs...)
	return nil
}

func (b *LocalBroadcaster) Unsubscribe(_ context.Context, bookingID, userID string) error {
	b.manager.Unsubscribe(bookingID, userID)
	return nil
}

func (b *LocalBroadcaster) Broadcast(ctx context.Context, bookingID, event string, payload interface{}) error {
	delivered, err := b.manager.Broadcast(bookingID, event, payload)
	if err != nil {
		return err
	}
	logger.DebugCtx(ctx, "Broadcast on trip channel",
		logger.String("booking_id", bookingID),
		logger.String("event", event),
		logger.Int("delivered", delivered))
	return nil
}

func (b *LocalBroadcaster) Close(_ context.Context, bookingID string) error {
	b.manager.CloseRoom(bookingID)
	return nil
}

// RelayPublisher is the subset of the NATS client used by NATSBroadcaster
type RelayPublisher interface {
	PublishJSON(subject string, message interface{}) error
}

// NATSBroadcaster replicates channel operations to every replica through
// the relay subject. Each replica, this one included, applies them to its
// own manager, so users connected anywhere receive the messages.
type NATSBroadcaster struct {
	publisher RelayPublisher
	subject   string
}

// NewNATSBroadcaster creates a broadcaster publishing on constants.SubjectTrackingRelay
func NewNATSBroadcaster(publisher RelayPublisher) tracking.Broadcaster {
	return &NATSBroadcaster{publisher: publisher, subject: constants.SubjectTrackingRelay}
}

func (b *NATSBroadcaster) Subscribe(ctx context.Context, bookingID string, userIDs ...string) error {
	return b.publish(ctx, models.RelayMessage{Op: models.RelayOpSubscribe, BookingID: bookingID, UserIDs: userIDs})
}

func (b *NATSBroadcaster) Unsubscribe(ctx context.Context, bookingID, userID string) error {
	return b.publish(ctx, models.RelayMessage{Op: models.RelayOpUnsubscribe, BookingID: bookingID, UserIDs: []string{userID}})
}

func (b *NATSBroadcaster) Broadcast(ctx context.Context, bookingID, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return b.publish(ctx, models.RelayMessage{Op: models.RelayOpBroadcast, BookingID: bookingID, Event: event, Data: data})
}

func (b *NATSBroadcaster) Close(ctx context.Context, bookingID string) error {
	return b.publish(ctx, models.RelayMessage{Op: models.RelayOpClose, BookingID: bookingID})
}

func (b *NATSBroadcaster) publish(ctx context.Context, msg models.RelayMessage) error {
	if err := b.publisher.PublishJSON(b.subject, msg); err != nil {
		return fmt.Errorf("failed to relay %s: %w", msg.Op, err)
	}
	logger.DebugCtx(ctx, "Relayed channel operation",
		logger.String("op", string(msg.Op)),
		logger.String("booking_id", msg.BookingID))
	return nil
}
