package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/middleware"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// LocationHandler handles HTTP requests for driver positions
type LocationHandler struct {
	locationUC tracking.LocationUC
	devMode    bool
}

// NewLocationHandler creates a new location HTTP handler
func NewLocationHandler(locationUC tracking.LocationUC, devMode bool) *LocationHandler {
	return &LocationHandler{
		locationUC: locationUC,
		devMode:    devMode,
	}
}

// UpdateLocation handles POST /location
func (h *LocationHandler) UpdateLocation(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to bind location update", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}
	update, err := req.toModel()
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	record, err := h.locationUC.UpdateLocation(c.Request().Context(), caller, update)
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location updated", record)
}

// GetNearbyDrivers handles POST /nearby-drivers
func (h *LocationHandler) GetNearbyDrivers(c echo.Context) error {
	var req NearbyDriversRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Failed to bind nearby drivers query", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}
	query, err := req.toModel()
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	drivers, err := h.locationUC.GetNearbyDrivers(c.Request().Context(), query)
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Nearby drivers retrieved", map[string]interface{}{
		"drivers": drivers,
		"count":   len(drivers),
	})
}

// GetDriverLocation handles GET /location/:userId
func (h *LocationHandler) GetDriverLocation(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	record, err := h.locationUC.GetDriverLocation(c.Request().Context(), caller, c.Param("userId"))
	if err != nil {
		return handleError(c, h.devMode, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location retrieved", record)
}
