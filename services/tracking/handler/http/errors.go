package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// handleError maps domain errors to status codes. Internal errors only
// expose their detail in development.
func handleError(c echo.Context, devMode bool, err error) error {
	switch {
	case errors.Is(err, tracking.ErrInvalidInput):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, tracking.ErrForbidden):
		return utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, tracking.ErrSessionNotFound), errors.Is(err, tracking.ErrLocationNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, tracking.ErrSessionAlreadyActive):
		return utils.ConflictResponse(c, err.Error())
	}

	logger.ErrorCtx(c.Request().Context(), "Request failed",
		logger.String("path", c.Path()),
		logger.Err(err))
	newrelic.NoticeTransactionError(newrelic.FromEchoContext(c), err)

	if devMode {
		return utils.ErrorResponseHandler(c, http.StatusInternalServerError, err.Error())
	}
	return utils.InternalServerErrorResponse(c, "internal server error")
}

func unauthorized(c echo.Context) error {
	return utils.UnauthorizedResponse(c, "missing caller identity")
}
