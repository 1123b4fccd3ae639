package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	natspkg "github.com/piresc/nebengjek-tracking/internal/pkg/nats"
	"github.com/piresc/nebengjek-tracking/internal/pkg/websocket"
)

// RelayHandler applies channel operations relayed by any replica to the
// local manager
type RelayHandler struct {
	manager    *websocket.Manager
	natsClient *natspkg.Client
	sub        *nats.Subscription
}

// NewRelayHandler creates the relay consumer
func NewRelayHandler(manager *websocket.Manager, client *natspkg.Client) *RelayHandler {
	return &RelayHandler{
		manager:    manager,
		natsClient: client,
	}
}

// InitNATSConsumers subscribes to the relay subject
func (h *RelayHandler) InitNATSConsumers() error {
	sub, err := h.natsClient.Subscribe(constants.SubjectTrackingRelay, func(msg *nats.Msg) {
		if err := h.apply(msg.Data); err != nil {
			logger.Error("Failed to apply relayed channel operation",
				logger.String("subject", msg.Subject),
				logger.Err(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to relay: %w", err)
	}
	h.sub = sub

	logger.Info("Subscribed to tracking relay", logger.String("subject", constants.SubjectTrackingRelay))
	return nil
}

// Close stops consuming the relay subject
func (h *RelayHandler) Close() error {
	if h.sub == nil {
		return nil
	}
	return h.sub.Unsubscribe()
}

func (h *RelayHandler) apply(data []byte) error {
	var msg models.RelayMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("invalid relay message: %w", err)
	}
	if msg.BookingID == "" {
		return fmt.Errorf("relay message without bookingId")
	}

	switch msg.Op {
	case models.RelayOpSubscribe:
		h.manager.Subscribe(msg.BookingID, msg.UserIDs...)
	case models.RelayOpUnsubscribe:
		for _, userID := range msg.UserIDs {
			h.manager.Unsubscribe(msg.BookingID, userID)
		}
	case models.RelayOpBroadcast:
		if _, err := h.manager.Broadcast(msg.BookingID, msg.Event, msg.Data); err != nil {
			return err
		}
	case models.RelayOpClose:
		h.manager.CloseRoom(msg.BookingID)
	default:
		return fmt.Errorf("unknown relay op %q", msg.Op)
	}
	return nil
}
