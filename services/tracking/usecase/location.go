package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

const defaultVehicleType = "economy"

type locationUC struct {
	cfg          *models.Config
	locationRepo tracking.LocationRepo
	sessionRepo  tracking.SessionRepo
	broadcaster  tracking.Broadcaster
	profiles     tracking.VehicleProfileLookup
	metrics      *Metrics
}

// NewLocationUC creates the location use case
func NewLocationUC(
	cfg *models.Config,
	locationRepo tracking.LocationRepo,
	sessionRepo tracking.SessionRepo,
	broadcaster tracking.Broadcaster,
	profiles tracking.VehicleProfileLookup,
	metrics *Metrics,
) tracking.LocationUC {
	return &locationUC{
		cfg:          cfg,
		locationRepo: locationRepo,
		sessionRepo:  sessionRepo,
		broadcaster:  broadcaster,
		profiles:     profiles,
		metrics:      metrics,
	}
}

// UpdateLocation merges a driver's report into its record, extends the route
// of every active session the driver is on and fans the position out on
// those trip channels.
func (uc *locationUC) UpdateLocation(ctx context.Context, caller models.Caller, update models.LocationUpdate) (*models.LocationRecord, error) {
	if caller.Role != models.RoleDriver {
		uc.metrics.locationReport("forbidden")
		return nil, tracking.Forbidden("only drivers may report location")
	}
	if err := validateLocation("location", update.Location); err != nil {
		uc.metrics.locationReport("invalid")
		return nil, err
	}

	record, err := uc.locationRepo.GetLocation(ctx, caller.UserID, models.RoleDriver)
	switch {
	case errors.Is(err, tracking.ErrLocationNotFound):
		record = &models.LocationRecord{
			UserID:      caller.UserID,
			Role:        models.RoleDriver,
			IsAvailable: true,
			VehicleType: uc.resolveVehicleType(ctx, caller.UserID),
		}
	case err != nil:
		uc.metrics.locationReport("error")
		return nil, fmt.Errorf("failed to load location record: %w", err)
	}

	mergeUpdate(record, update)
	record.Geohash = utils.EncodeLocation(record.Location, constants.GeohashPrecision)
	record.UpdatedAt = models.Now()

	if err := uc.locationRepo.SaveLocation(ctx, record); err != nil {
		uc.metrics.locationReport("error")
		return nil, err
	}

	point := models.RoutePoint{
		Location:  record.Location,
		Timestamp: record.UpdatedAt,
		Speed:     record.Speed,
		Heading:   record.Heading,
	}
	// The latest position is already stored; a session store outage only
	// costs the route point and the fan-out of this report.
	bookingIDs, err := uc.sessionRepo.AppendDriverRoutePoint(ctx, caller.UserID, point)
	if err != nil {
		uc.metrics.locationReport("route_failed")
		logger.ErrorCtx(ctx, "Failed to append driver route point",
			logger.String("driver_id", caller.UserID),
			logger.Err(err))
		return record, nil
	}

	for _, bookingID := range bookingIDs {
		msg := models.DriverLocationBroadcast{
			BookingID: bookingID,
			DriverID:  caller.UserID,
			Location:  record.Location,
			Heading:   record.Heading,
			Speed:     record.Speed,
			Timestamp: record.UpdatedAt,
		}
		if err := uc.broadcaster.Broadcast(ctx, bookingID, constants.EventDriverLocationUpdate, msg); err != nil {
			uc.metrics.broadcastFailed(constants.EventDriverLocationUpdate)
			logger.WarnCtx(ctx, "Failed to broadcast driver location",
				logger.String("booking_id", bookingID),
				logger.String("driver_id", caller.UserID),
				logger.Err(err))
		}
	}

	uc.metrics.locationReport("accepted")
	return record, nil
}

func mergeUpdate(record *models.LocationRecord, update models.LocationUpdate) {
	record.Location = update.Location
	if update.Heading != nil {
		record.Heading = *update.Heading
	}
	if update.Speed != nil {
		record.Speed = *update.Speed
	}
	if update.Accuracy != nil {
		record.Accuracy = *update.Accuracy
	}
	if update.IsAvailable != nil {
		record.IsAvailable = *update.IsAvailable
	}
}

// resolveVehicleType asks the profile service for the driver's category.
// Any failure falls back to the configured default.
func (uc *locationUC) resolveVehicleType(ctx context.Context, driverID string) string {
	fallback := uc.cfg.Tracking.DefaultVehicleType
	if fallback == "" {
		fallback = defaultVehicleType
	}
	if uc.profiles == nil {
		return fallback
	}

	if secs := uc.cfg.Tracking.ProfileTimeoutSec; secs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	vehicleType, err := uc.profiles.GetVehicleType(ctx, driverID)
	if err != nil {
		logger.WarnCtx(ctx, "Vehicle profile lookup failed, using default vehicle type",
			logger.String("driver_id", driverID),
			logger.String("vehicle_type", fallback),
			logger.Err(err))
		return fallback
	}
	if vehicleType == "" {
		return fallback
	}
	return vehicleType
}

// GetNearbyDrivers lists available drivers around the center, nearest first
func (uc *locationUC) GetNearbyDrivers(ctx context.Context, query models.NearbyQuery) ([]*models.NearbyDriver, error) {
	if err := validateLocation("center", query.Center); err != nil {
		return nil, err
	}
	if !(query.RadiusMeters > 0) {
		return nil, tracking.InvalidInput("radius must be greater than zero")
	}
	if maxRadius := uc.cfg.Tracking.MaxRadiusMeters; maxRadius > 0 && query.RadiusMeters > maxRadius {
		query.RadiusMeters = maxRadius
	}

	return newrelic.WithSegmentAndReturn(ctx, "LocationUC.GetNearbyDrivers", func() ([]*models.NearbyDriver, error) {
		drivers, err := uc.locationRepo.FindNearbyDrivers(ctx, query.Center, query.RadiusMeters)
		if err != nil {
			return nil, err
		}

		result := make([]*models.NearbyDriver, 0, len(drivers))
		for _, d := range drivers {
			if !d.IsAvailable {
				continue
			}
			if query.VehicleType != "" && !strings.EqualFold(d.VehicleType, query.VehicleType) {
				continue
			}
			result = append(result, d)
		}
		return result, nil
	})
}

// GetDriverLocation returns a driver's record to the driver itself or an admin
func (uc *locationUC) GetDriverLocation(ctx context.Context, caller models.Caller, driverID string) (*models.LocationRecord, error) {
	if err := requireID("userId", driverID); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.UserID != driverID {
		return nil, tracking.Forbidden("not allowed to read this location")
	}
	return uc.locationRepo.GetLocation(ctx, driverID, models.RoleDriver)
}
