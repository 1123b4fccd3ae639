package constants

// Redis key formats
const (
	KeyUserLocation     = "location:%s:%s"    // Format: location:{role}:{user_id}
	KeyDriverGeo        = "drivers:geo"       // Geo set of all driver positions
	KeyAvailableDrivers = "drivers:available" // Set of available driver IDs
)

// Redis hash fields
const (
	FieldLatitude    = "lat"
	FieldLongitude   = "lng"
	FieldHeading     = "heading"
	FieldSpeed       = "speed"
	FieldAccuracy    = "accuracy"
	FieldAvailable   = "available"
	FieldVehicleType = "vehicle_type"
	FieldGeohash     = "geohash"
	FieldTimestamp   = "ts"
)

// GeohashPrecision is the cell precision stored with every location record
const GeohashPrecision = 7
