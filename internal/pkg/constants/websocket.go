package constants

// WebSocket event types
const (
	// Common events
	EventError = "error"

	// Client to server
	EventJoinBooking  = "join_booking"
	EventLeaveBooking = "leave_booking"

	// Server to client
	EventJoinedBooking        = "joined_booking"
	EventLeftBooking          = "left_booking"
	EventDriverLocationUpdate = "driver_location_update"
	EventTrackingEvent        = "tracking_event"
	EventTrackingEnded        = "tracking_ended"
)

// WebSocket error codes
const (
	ErrorInvalidFormat    = "invalid_format"
	ErrorValidationFailed = "validation_failed"
	ErrorUnauthorized     = "unauthorized"
	ErrorInternalError    = "internal_error"
	ErrorTripNotFound     = "trip_not_found"
)

// ErrorSeverity decides how much of an error is shown to a WebSocket client
type ErrorSeverity int

const (
	ErrorSeverityClient ErrorSeverity = iota
	ErrorSeverityServer
	ErrorSeveritySecurity
)

func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityClient:
		return "client"
	case ErrorSeverityServer:
		return "server"
	case ErrorSeveritySecurity:
		return "security"
	default:
		return "unknown"
	}
}
