package tracking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput wraps every validation failure; callers match it with errors.Is
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden is returned when the caller's role or identity does not allow the operation
	ErrForbidden = errors.New("forbidden")
	// ErrSessionNotFound means no session (or no active session, for writes) exists for the trip
	ErrSessionNotFound = errors.New("tracking session not found")
	// ErrSessionAlreadyActive guards the one-active-session-per-trip rule
	ErrSessionAlreadyActive = errors.New("tracking session already active for booking")
	// ErrLocationNotFound means no location record exists for the user
	ErrLocationNotFound = errors.New("location not found")
)

// InvalidInput builds a validation error carrying a client-facing message
func InvalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Forbidden builds an authorization error carrying a client-facing message
func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
