package tracking

import (
	"context"

	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
)

// Broadcaster manages trip channels. Delivery is best effort: a nil error
// means the operation was handed off, not that any subscriber received it.
type Broadcaster interface {
	Subscribe(ctx context.Context, bookingID string, userIDs ...string) error
	Unsubscribe(ctx context.Context, bookingID, userID string) error
	Broadcast(ctx context.Context, bookingID, event string, payload interface{}) error
	// Close removes every subscriber of the trip channel
	Close(ctx context.Context, bookingID string) error
}

// EventPublisher exports session lifecycle changes to sibling services
type EventPublisher interface {
	PublishSessionStarted(ctx context.Context, event models.SessionLifecycleEvent) error
	PublishSessionEnded(ctx context.Context, event models.SessionLifecycleEvent) error
}

// VehicleProfileLookup resolves a driver's vehicle category. An empty result
// means the profile has none; the caller picks the default.
type VehicleProfileLookup interface {
	GetVehicleType(ctx context.Context, driverID string) (string, error)
}
