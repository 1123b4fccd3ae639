package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/middleware"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/requestcontext"
	wspkg "github.com/piresc/nebengjek-tracking/internal/pkg/websocket"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// Handler serves trip channel connections on GET /ws
type Handler struct {
	manager   *wspkg.Manager
	sessionUC tracking.SessionUC
}

// NewHandler creates the WebSocket handler
func NewHandler(manager *wspkg.Manager, sessionUC tracking.SessionUC) *Handler {
	return &Handler{
		manager:   manager,
		sessionUC: sessionUC,
	}
}

// HandleWebSocket upgrades an authenticated request and serves it until it closes
func (h *Handler) HandleWebSocket(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "missing caller identity")
	}
	return h.manager.HandleConnection(c, caller, h.handleMessage)
}

func (h *Handler) handleMessage(client *wspkg.Client, msg models.WSMessage) {
	switch msg.Event {
	case constants.EventJoinBooking:
		h.handleJoin(client, msg.Data)
	case constants.EventLeaveBooking:
		h.handleLeave(client, msg.Data)
	case "":
		h.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Invalid message format")
	default:
		h.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "Unknown event: "+msg.Event)
	}
}

func (h *Handler) handleJoin(client *wspkg.Client, data json.RawMessage) {
	req, ok := h.parseBookingRequest(client, data)
	if !ok {
		return
	}

	if h.manager.IsSubscribed(req.BookingID, client.UserID) {
		h.manager.Reply(client, constants.EventJoinedBooking, req)
		return
	}

	if err := h.sessionUC.JoinChannel(clientContext(client), client.Caller(), req.BookingID); err != nil {
		h.sendError(client, err)
		return
	}

	logger.Info("Client joined trip channel",
		logger.String("user_id", client.UserID),
		logger.String("booking_id", req.BookingID))
	h.manager.Reply(client, constants.EventJoinedBooking, req)
}

func (h *Handler) handleLeave(client *wspkg.Client, data json.RawMessage) {
	req, ok := h.parseBookingRequest(client, data)
	if !ok {
		return
	}

	if err := h.sessionUC.LeaveChannel(clientContext(client), client.Caller(), req.BookingID); err != nil {
		h.sendError(client, err)
		return
	}
	h.manager.Reply(client, constants.EventLeftBooking, req)
}

func (h *Handler) parseBookingRequest(client *wspkg.Client, data json.RawMessage) (models.BookingChannelRequest, bool) {
	var req models.BookingChannelRequest
	if err := json.Unmarshal(data, &req); err != nil || strings.TrimSpace(req.BookingID) == "" {
		h.manager.SendErrorMessage(client, constants.ErrorInvalidFormat, "bookingId is required")
		return req, false
	}
	return req, true
}

func (h *Handler) sendError(client *wspkg.Client, err error) {
	switch {
	case errors.Is(err, tracking.ErrInvalidInput):
		h.manager.SendCategorizedError(client, err, constants.ErrorValidationFailed, constants.ErrorSeverityClient)
	case errors.Is(err, tracking.ErrForbidden):
		h.manager.SendCategorizedError(client, err, constants.ErrorUnauthorized, constants.ErrorSeveritySecurity)
	case errors.Is(err, tracking.ErrSessionNotFound):
		h.manager.SendCategorizedError(client, err, constants.ErrorTripNotFound, constants.ErrorSeverityClient)
	default:
		h.manager.SendCategorizedError(client, err, constants.ErrorInternalError, constants.ErrorSeverityServer)
	}
}

func clientContext(client *wspkg.Client) context.Context {
	return requestcontext.WithUserID(context.Background(), client.UserID)
}
