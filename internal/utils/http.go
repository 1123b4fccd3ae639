package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every successful API call is wrapped in
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ErrorResponse is the envelope for failed API calls
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// SuccessResponse sends a success envelope with data
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseHandler sends an error envelope echoing the request id when one is set
func ErrorResponseHandler(c echo.Context, statusCode int, errorMessage string) error {
	return c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     errorMessage,
		Code:      statusCode,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	})
}

func errorWithDefault(c echo.Context, statusCode int, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = http.StatusText(statusCode)
	}
	return ErrorResponseHandler(c, statusCode, errorMessage)
}

// BadRequestResponse sends a 400
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return errorWithDefault(c, http.StatusBadRequest, errorMessage)
}

// UnauthorizedResponse sends a 401
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	return errorWithDefault(c, http.StatusUnauthorized, errorMessage)
}

// ForbiddenResponse sends a 403
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	return errorWithDefault(c, http.StatusForbidden, errorMessage)
}

// NotFoundResponse sends a 404
func NotFoundResponse(c echo.Context, errorMessage string) error {
	return errorWithDefault(c, http.StatusNotFound, errorMessage)
}

// ConflictResponse sends a 409
func ConflictResponse(c echo.Context, errorMessage string) error {
	return errorWithDefault(c, http.StatusConflict, errorMessage)
}

// InternalServerErrorResponse sends a 500
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	return errorWithDefault(c, http.StatusInternalServerError, errorMessage)
}

// ParseJSONResponse unwraps a Response envelope returned by a sibling service
// and decodes its data field into target.
func ParseJSONResponse(body []byte, target interface{}) error {
	var envelope struct {
		Success bool            `json:"success"`
		Error   string          `json:"error"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if !envelope.Success {
		if envelope.Error == "" {
			return errors.New("remote call reported failure")
		}
		return fmt.Errorf("remote call failed: %s", envelope.Error)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
