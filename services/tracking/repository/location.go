package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/database"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

type locationRepo struct {
	redisClient *database.RedisClient
}

// NewLocationRepository creates a Redis backed location repository
func NewLocationRepository(redisClient *database.RedisClient) tracking.LocationRepo {
	return &locationRepo{redisClient: redisClient}
}

func locationKey(role, userID string) string {
	return fmt.Sprintf(constants.KeyUserLocation, role, userID)
}

// SaveLocation writes the record hash, the geo index entry and the
// availability membership in one MULTI/EXEC.
func (r *locationRepo) SaveLocation(ctx context.Context, record *models.LocationRecord) error {
	key := locationKey(record.Role, record.UserID)

	return newrelic.WithDatastoreSegment(ctx, "Redis", key, "MULTI", func() error {
		err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				constants.FieldLatitude, formatFloat(record.Location.Latitude),
				constants.FieldLongitude, formatFloat(record.Location.Longitude),
				constants.FieldHeading, formatFloat(record.Heading),
				constants.FieldSpeed, formatFloat(record.Speed),
				constants.FieldAccuracy, formatFloat(record.Accuracy),
				constants.FieldAvailable, strconv.FormatBool(record.IsAvailable),
				constants.FieldVehicleType, record.VehicleType,
				constants.FieldGeohash, record.Geohash,
				constants.FieldTimestamp, strconv.FormatInt(record.UpdatedAt.UnixMilli(), 10),
			)

			if record.Role != models.RoleDriver {
				return nil
			}

			pipe.GeoAdd(ctx, constants.KeyDriverGeo, &redis.GeoLocation{
				Name:      record.UserID,
				Longitude: record.Location.Longitude,
				Latitude:  record.Location.Latitude,
			})
			if record.IsAvailable {
				pipe.SAdd(ctx, constants.KeyAvailableDrivers, record.UserID)
			} else {
				pipe.SRem(ctx, constants.KeyAvailableDrivers, record.UserID)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to save location: %w", err)
		}
		return nil
	})
}

// GetLocation loads the record for (userID, role)
func (r *locationRepo) GetLocation(ctx context.Context, userID, role string) (*models.LocationRecord, error) {
	fields, err := r.redisClient.HGetAll(ctx, locationKey(role, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if len(fields) == 0 {
		return nil, tracking.ErrLocationNotFound
	}
	return parseRecord(userID, role, fields)
}

// FindNearbyDrivers queries the geo index in meters, nearest first, and keeps
// only members of the availability set whose record is still marked available.
func (r *locationRepo) FindNearbyDrivers(ctx context.Context, center models.Location, radiusMeters float64) ([]*models.NearbyDriver, error) {
	var hits []redis.GeoLocation
	err := newrelic.WithDatastoreSegment(ctx, "Redis", constants.KeyDriverGeo, "GEORADIUS", func() error {
		var err error
		hits, err = r.redisClient.GeoRadius(ctx, constants.KeyDriverGeo, center.Longitude, center.Latitude, radiusMeters)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby drivers: %w", err)
	}
	if len(hits) == 0 {
		return []*models.NearbyDriver{}, nil
	}

	members := make([]*redis.BoolCmd, len(hits))
	records := make([]*redis.StringStringMapCmd, len(hits))
	_, err = r.redisClient.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, hit := range hits {
			members[i] = pipe.SIsMember(ctx, constants.KeyAvailableDrivers, hit.Name)
			records[i] = pipe.HGetAll(ctx, locationKey(models.RoleDriver, hit.Name))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load nearby driver records: %w", err)
	}

	drivers := make([]*models.NearbyDriver, 0, len(hits))
	for i, hit := range hits {
		if !members[i].Val() || len(records[i].Val()) == 0 {
			continue
		}
		record, err := parseRecord(hit.Name, models.RoleDriver, records[i].Val())
		if err != nil {
			logger.WarnCtx(ctx, "Skipping unreadable driver location record",
				logger.String("driver_id", hit.Name),
				logger.Err(err))
			continue
		}
		if !record.IsAvailable {
			continue
		}
		// the geo index stores snapped positions; measure from the exact one
		distance := utils.DistanceMeters(center, record.Location)
		if distance > radiusMeters {
			continue
		}
		drivers = append(drivers, &models.NearbyDriver{
			LocationRecord: *record,
			DistanceMeters: distance,
		})
	}
	return drivers, nil
}

func parseRecord(userID, role string, fields map[string]string) (*models.LocationRecord, error) {
	record := &models.LocationRecord{
		UserID:      userID,
		Role:        role,
		VehicleType: fields[constants.FieldVehicleType],
		Geohash:     fields[constants.FieldGeohash],
	}

	floats := []struct {
		field string
		dst   *float64
	}{
		{constants.FieldLatitude, &record.Location.Latitude},
		{constants.FieldLongitude, &record.Location.Longitude},
		{constants.FieldHeading, &record.Heading},
		{constants.FieldSpeed, &record.Speed},
		{constants.FieldAccuracy, &record.Accuracy},
	}
	for _, f := range floats {
		raw, ok := fields[f.field]
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s for user %s: %w", f.field, userID, err)
		}
		*f.dst = v
	}

	if raw := fields[constants.FieldAvailable]; raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid availability for user %s: %w", userID, err)
		}
		record.IsAvailable = available
	}

	if raw := fields[constants.FieldTimestamp]; raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp for user %s: %w", userID, err)
		}
		record.UpdatedAt = time.UnixMilli(ms).UTC()
	}

	return record, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
