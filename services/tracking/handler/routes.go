package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/services/tracking/handler/http"
	"github.com/piresc/nebengjek-tracking/services/tracking/handler/websocket"
)

// Handler coordinates the protocol handlers of the tracking service
type Handler struct {
	locationHandler *http.LocationHandler
	trackingHandler *http.TrackingHandler
	wsHandler       *websocket.Handler
}

// NewHandler creates the combined handler
func NewHandler(
	locationHandler *http.LocationHandler,
	trackingHandler *http.TrackingHandler,
	wsHandler *websocket.Handler,
) *Handler {
	return &Handler{
		locationHandler: locationHandler,
		trackingHandler: trackingHandler,
		wsHandler:       wsHandler,
	}
}

// RegisterRoutes registers every authenticated route behind jwtMiddleware
func (h *Handler) RegisterRoutes(e *echo.Echo, jwtMiddleware echo.MiddlewareFunc) {
	e.POST("/location", h.locationHandler.UpdateLocation, jwtMiddleware)
	e.GET("/location/:userId", h.locationHandler.GetDriverLocation, jwtMiddleware)
	e.POST("/nearby-drivers", h.locationHandler.GetNearbyDrivers, jwtMiddleware)

	trips := e.Group("/tracking", jwtMiddleware)
	trips.POST("/start", h.trackingHandler.StartTracking)
	trips.POST("/event", h.trackingHandler.RecordEvent)
	trips.POST("/end", h.trackingHandler.EndTracking)
	trips.GET("/:bookingId", h.trackingHandler.GetSession)

	e.GET("/ws", h.wsHandler.HandleWebSocket, jwtMiddleware)
}
