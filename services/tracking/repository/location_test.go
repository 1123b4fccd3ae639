package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/database"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/utils"
	"github.com/piresc/nebengjek-tracking/services/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniredis creates a new miniredis server and returns a Redis client connected to it
func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}

func driverRecord(id string, loc models.Location, available bool, vehicle string) *models.LocationRecord {
	return &models.LocationRecord{
		UserID:      id,
		Role:        models.RoleDriver,
		Location:    loc,
		Heading:     90,
		Speed:       12.5,
		Accuracy:    4,
		IsAvailable: available,
		VehicleType: vehicle,
		Geohash:     utils.EncodeLocation(loc, constants.GeohashPrecision),
		UpdatedAt:   time.UnixMilli(1700000000123).UTC(),
	}
}

func TestSaveAndGetLocation(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})
	ctx := context.Background()

	record := driverRecord("d-1", models.Location{Latitude: -6.175392, Longitude: 106.827153}, true, "economy")
	require.NoError(t, repo.SaveLocation(ctx, record))

	got, err := repo.GetLocation(ctx, "d-1", models.RoleDriver)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	key := fmt.Sprintf(constants.KeyUserLocation, models.RoleDriver, "d-1")
	assert.True(t, mr.Exists(key))
	ok, err := mr.SIsMember(constants.KeyAvailableDrivers, "d-1")
	require.NoError(t, err)
	assert.True(t, ok)

	record.IsAvailable = false
	require.NoError(t, repo.SaveLocation(ctx, record))

	ok, err = mr.SIsMember(constants.KeyAvailableDrivers, "d-1")
	require.NoError(t, err)
	assert.False(t, ok, "unavailable drivers leave the availability set")
	assert.True(t, mr.Exists(key), "records are never deleted")
}

func TestGetLocation_NotFound(t *testing.T) {
	_, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})

	_, err := repo.GetLocation(context.Background(), "ghost", models.RoleDriver)
	assert.ErrorIs(t, err, tracking.ErrLocationNotFound)
}

func TestGetLocation_CorruptField(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})

	mr.HSet(fmt.Sprintf(constants.KeyUserLocation, models.RoleDriver, "d-1"), constants.FieldLatitude, "north")

	_, err := repo.GetLocation(context.Background(), "d-1", models.RoleDriver)
	assert.ErrorContains(t, err, "invalid lat")
}

func TestFindNearbyDrivers(t *testing.T) {
	_, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})
	ctx := context.Background()

	center := models.Location{Latitude: 0, Longitude: 0}
	records := []*models.LocationRecord{
		driverRecord("near", models.Location{Latitude: 0.001, Longitude: 0}, true, "economy"),
		driverRecord("mid", models.Location{Latitude: 0.005, Longitude: 0}, true, "comfort"),
		driverRecord("busy", models.Location{Latitude: 0.002, Longitude: 0}, false, "economy"),
		driverRecord("far", models.Location{Latitude: 0.05, Longitude: 0}, true, "economy"),
	}
	for _, r := range records {
		require.NoError(t, repo.SaveLocation(ctx, r))
	}

	drivers, err := repo.FindNearbyDrivers(ctx, center, 1000)
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	assert.Equal(t, "near", drivers[0].UserID)
	assert.Equal(t, "mid", drivers[1].UserID)
	assert.Less(t, drivers[0].DistanceMeters, drivers[1].DistanceMeters)
	for _, d := range drivers {
		assert.True(t, d.IsAvailable)
		assert.LessOrEqual(t, d.DistanceMeters, 1000.0)
		assert.LessOrEqual(t, utils.DistanceMeters(center, d.Location), 1000.0)
	}
}

func TestFindNearbyDrivers_SkipsBadRecords(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})
	ctx := context.Background()

	center := models.Location{Latitude: 0, Longitude: 0}
	for _, r := range []*models.LocationRecord{
		driverRecord("near", models.Location{Latitude: 0.001, Longitude: 0}, true, "economy"),
		driverRecord("corrupt", models.Location{Latitude: 0.002, Longitude: 0}, true, "economy"),
		driverRecord("moved", models.Location{Latitude: 0.02, Longitude: 0}, true, "economy"),
	} {
		require.NoError(t, repo.SaveLocation(ctx, r))
	}
	mr.HSet(fmt.Sprintf(constants.KeyUserLocation, models.RoleDriver, "corrupt"), constants.FieldSpeed, "fast")
	// geo member left behind at an old position while the record moved on
	require.NoError(t, client.GeoAdd(ctx, constants.KeyDriverGeo, &redis.GeoLocation{Name: "moved", Latitude: 0.003, Longitude: 0}).Err())

	drivers, err := repo.FindNearbyDrivers(ctx, center, 1000)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, "near", drivers[0].UserID)
	assert.InDelta(t, 111.19, drivers[0].DistanceMeters, 0.1)
}

func TestFindNearbyDrivers_Empty(t *testing.T) {
	_, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})

	drivers, err := repo.FindNearbyDrivers(context.Background(), models.Location{}, 500)
	require.NoError(t, err)
	assert.Empty(t, drivers)
}

func TestSaveLocation_ConnectionError(t *testing.T) {
	mr, client := setupMiniredis(t)
	repo := NewLocationRepository(&database.RedisClient{Client: client})
	mr.Close()

	err := repo.SaveLocation(context.Background(), driverRecord("d-1", models.Location{}, true, "economy"))
	assert.ErrorContains(t, err, "failed to save location")
}
