package tracking

import (
	"context"
	"time"

	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
)

// LocationRepo stores the latest position of each user and the driver geo index
type LocationRepo interface {
	// GetLocation returns ErrLocationNotFound when the user never reported
	GetLocation(ctx context.Context, userID, role string) (*models.LocationRecord, error)
	SaveLocation(ctx context.Context, record *models.LocationRecord) error
	// FindNearbyDrivers returns available drivers within radiusMeters, nearest first
	FindNearbyDrivers(ctx context.Context, center models.Location, radiusMeters float64) ([]*models.NearbyDriver, error)
}

// SessionRepo persists tracking sessions. Every mutation is a single
// statement guarded by state = 'active'.
type SessionRepo interface {
	// CreateSession returns ErrSessionAlreadyActive if the trip already has an active session
	CreateSession(ctx context.Context, session *models.TrackingSession) error
	GetActiveSession(ctx context.Context, bookingID string) (*models.TrackingSession, error)
	// GetLatestSession returns the most recently started session in any state
	GetLatestSession(ctx context.Context, bookingID string) (*models.TrackingSession, error)
	AppendEvent(ctx context.Context, bookingID string, event models.TrackingEvent, point models.RoutePoint) (*models.TrackingSession, error)
	CloseSession(ctx context.Context, bookingID string, event models.TrackingEvent, point models.RoutePoint, state models.SessionState, endedAt time.Time) (*models.TrackingSession, error)
	// AppendDriverRoutePoint extends every active session of the driver and returns their booking ids
	AppendDriverRoutePoint(ctx context.Context, driverID string, point models.RoutePoint) ([]string, error)
}
