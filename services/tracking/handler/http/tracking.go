package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/middleware"
	"github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// TrackingHandler handles HTTP requests for tracking sessions
type TrackingHandler struct {
	sessionUC tracking.SessionUC
	devMode   bool
}

// NewTrackingHandler creates a new tracking HTTP handler
func NewTrackingHandler(sessionUC tracking.SessionUC, devMode bool) *TrackingHandler {
	return &TrackingHandler{
		sessionUC: sessionUC,
		devMode:   devMode,
	}
}

// StartTracking handles POST /tracking/start
func (h *TrackingHandler) StartTracking(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req StartTrackingRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to bind start tracking request", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}
	start, err := req.toModel()
	if err != nil {
		return handleError(c, h.devMode, err)
	}
	newrelic.AddTransactionAttribute(newrelic.FromEchoContext(c), "booking_id", start.BookingID)

	session, err := h.sessionUC.StartTracking(c.Request().Context(), caller, start)
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Tracking started", session)
}

// RecordEvent handles POST /tracking/event
func (h *TrackingHandler) RecordEvent(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req TrackingEventRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to bind tracking event", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}
	event, err := req.toModel()
	if err != nil {
		return handleError(c, h.devMode, err)
	}
	newrelic.AddTransactionAttribute(newrelic.FromEchoContext(c), "booking_id", event.BookingID)

	session, err := h.sessionUC.RecordEvent(c.Request().Context(), caller, event)
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Event recorded", session)
}

// EndTracking handles POST /tracking/end
func (h *TrackingHandler) EndTracking(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req EndTrackingRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to bind end tracking request", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}
	end, err := req.toModel()
	if err != nil {
		return handleError(c, h.devMode, err)
	}
	newrelic.AddTransactionAttribute(newrelic.FromEchoContext(c), "booking_id", end.BookingID)

	session, err := h.sessionUC.EndTracking(c.Request().Context(), caller, end)
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking ended", session)
}

// GetSession handles GET /tracking/:bookingId
func (h *TrackingHandler) GetSession(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	session, err := h.sessionUC.GetSession(c.Request().Context(), caller, c.Param("bookingId"))
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Tracking session retrieved", session)
}
