package tracking

import (
	"context"

	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
)

// LocationUC handles driver position reports and nearest-driver queries
type LocationUC interface {
	UpdateLocation(ctx context.Context, caller models.Caller, update models.LocationUpdate) (*models.LocationRecord, error)
	GetNearbyDrivers(ctx context.Context, query models.NearbyQuery) ([]*models.NearbyDriver, error)
	GetDriverLocation(ctx context.Context, caller models.Caller, driverID string) (*models.LocationRecord, error)
}

// SessionUC drives the tracking session state machine
type SessionUC interface {
	StartTracking(ctx context.Context, caller models.Caller, req models.StartTrackingRequest) (*models.TrackingSession, error)
	RecordEvent(ctx context.Context, caller models.Caller, req models.RecordEventRequest) (*models.TrackingSession, error)
	EndTracking(ctx context.Context, caller models.Caller, req models.RecordEventRequest) (*models.TrackingSession, error)
	GetSession(ctx context.Context, caller models.Caller, bookingID string) (*models.TrackingSession, error)
	JoinChannel(ctx context.Context, caller models.Caller, bookingID string) error
	LeaveChannel(ctx context.Context, caller models.Caller, bookingID string) error
}
