package http

import (
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

// PositionDTO accepts either latitude/longitude or a GeoJSON style
// coordinates pair ordered [longitude, latitude].
type PositionDTO struct {
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

func (p *PositionDTO) toLocation(field string) (models.Location, error) {
	if p == nil {
		return models.Location{}, tracking.InvalidInput("%s is required", field)
	}
	if len(p.Coordinates) > 0 {
		if len(p.Coordinates) != 2 {
			return models.Location{}, tracking.InvalidInput("%s.coordinates must be [longitude, latitude]", field)
		}
		return models.Location{Latitude: p.Coordinates[1], Longitude: p.Coordinates[0]}, nil
	}
	if p.Latitude == nil || p.Longitude == nil {
		return models.Location{}, tracking.InvalidInput("%s.latitude and %s.longitude are required", field, field)
	}
	return models.Location{Latitude: *p.Latitude, Longitude: *p.Longitude}, nil
}

// UpdateLocationRequest is the body of POST /location
type UpdateLocationRequest struct {
	Location    *PositionDTO `json:"location"`
	Heading     *float64     `json:"heading"`
	Speed       *float64     `json:"speed"`
	Accuracy    *float64     `json:"accuracy"`
	IsAvailable *bool        `json:"isAvailable"`
}

func (r UpdateLocationRequest) toModel() (models.LocationUpdate, error) {
	loc, err := r.Location.toLocation("location")
	if err != nil {
		return models.LocationUpdate{}, err
	}
	return models.LocationUpdate{
		Location:    loc,
		Heading:     r.Heading,
		Speed:       r.Speed,
		Accuracy:    r.Accuracy,
		IsAvailable: r.IsAvailable,
	}, nil
}

// NearbyDriversRequest is the body of POST /nearby-drivers
type NearbyDriversRequest struct {
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Radius      float64  `json:"radius"`
	VehicleType string   `json:"vehicleType"`
}

func (r NearbyDriversRequest) toModel() (models.NearbyQuery, error) {
	center, err := (&PositionDTO{Latitude: r.Latitude, Longitude: r.Longitude}).toLocation("center")
	if err != nil {
		return models.NearbyQuery{}, err
	}
	return models.NearbyQuery{
		Center:       center,
		RadiusMeters: r.Radius,
		VehicleType:  r.VehicleType,
	}, nil
}

// StartTrackingRequest is the body of POST /tracking/start
type StartTrackingRequest struct {
	BookingID       string       `json:"bookingId"`
	DriverID        string       `json:"driverId"`
	PassengerID     string       `json:"passengerId"`
	InitialLocation *PositionDTO `json:"initialLocation"`
}

func (r StartTrackingRequest) toModel() (models.StartTrackingRequest, error) {
	loc, err := r.InitialLocation.toLocation("initialLocation")
	if err != nil {
		return models.StartTrackingRequest{}, err
	}
	return models.StartTrackingRequest{
		BookingID:       r.BookingID,
		DriverID:        r.DriverID,
		PassengerID:     r.PassengerID,
		InitialLocation: loc,
	}, nil
}

// TrackingEventRequest is the body of POST /tracking/event
type TrackingEventRequest struct {
	BookingID   string       `json:"bookingId"`
	Type        string       `json:"type"`
	Location    *PositionDTO `json:"location"`
	Description string       `json:"description"`
}

func (r TrackingEventRequest) toModel() (models.RecordEventRequest, error) {
	loc, err := r.Location.toLocation("location")
	if err != nil {
		return models.RecordEventRequest{}, err
	}
	return models.RecordEventRequest{
		BookingID:   r.BookingID,
		Type:        models.EventType(r.Type),
		Location:    loc,
		Description: r.Description,
	}, nil
}

// EndTrackingRequest is the body of POST /tracking/end
type EndTrackingRequest struct {
	BookingID     string       `json:"bookingId"`
	FinalLocation *PositionDTO `json:"finalLocation"`
	Type          string       `json:"type"`
	Description   string       `json:"description"`
}

func (r EndTrackingRequest) toModel() (models.RecordEventRequest, error) {
	loc, err := r.FinalLocation.toLocation("finalLocation")
	if err != nil {
		return models.RecordEventRequest{}, err
	}
	return models.RecordEventRequest{
		BookingID:   r.BookingID,
		Type:        models.EventType(r.Type),
		Location:    loc,
		Description: r.Description,
	}, nil
}
