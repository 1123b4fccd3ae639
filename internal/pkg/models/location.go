package models

import "time"

// User roles carried in the identity token
const (
	RoleDriver    = "driver"
	RolePassenger = "passenger"
	RoleAdmin     = "admin"
)

// Location represents a geographic point
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationRecord is the latest reported position of a user in a given role
type LocationRecord struct {
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	Location    Location  `json:"location"`
	Heading     float64   `json:"heading"`
	Speed       float64   `json:"speed"`
	Accuracy    float64   `json:"accuracy"`
	IsAvailable bool      `json:"isAvailable"`
	VehicleType string    `json:"vehicleType"`
	Geohash     string    `json:"geohash"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LocationUpdate is a validated position report. Nil optional fields keep
// the value already stored on the record.
type LocationUpdate struct {
	Location    Location
	Heading     *float64
	Speed       *float64
	Accuracy    *float64
	IsAvailable *bool
}

// NearbyQuery describes a nearest-driver search
type NearbyQuery struct {
	Center       Location
	RadiusMeters float64
	VehicleType  string
}

// NearbyDriver is a LocationRecord annotated with its distance to the query center
type NearbyDriver struct {
	LocationRecord
	DistanceMeters float64 `json:"distanceMeters"`
}
