package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SessionState represents the lifecycle state of a tracking session
type SessionState string

const (
	SessionStateActive    SessionState = "active"
	SessionStateCompleted SessionState = "completed"
	SessionStateCancelled SessionState = "cancelled"
)

// EventType is the type of a discrete trip lifecycle event
type EventType string

const (
	EventPickupStarted  EventType = "pickup_started"
	EventPickupArrived  EventType = "pickup_arrived"
	EventDropoffArrived EventType = "dropoff_arrived"
	EventTripCompleted  EventType = "trip_completed"
	EventTripCancelled  EventType = "trip_cancelled"
)

// IsValid reports whether t is a known event type
func (t EventType) IsValid() bool {
	switch t {
	case EventPickupStarted, EventPickupArrived, EventDropoffArrived, EventTripCompleted, EventTripCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether recording t closes the session
func (t EventType) IsTerminal() bool {
	return t == EventTripCompleted || t == EventTripCancelled
}

// TerminalState maps a terminal event to the state it produces
func (t EventType) TerminalState() SessionState {
	if t == EventTripCancelled {
		return SessionStateCancelled
	}
	return SessionStateCompleted
}

// RoutePoint is one position on a trip route
type RoutePoint struct {
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"`
	Speed     float64   `json:"speed"`
	Heading   float64   `json:"heading"`
}

// TrackingEvent is a typed lifecycle event recorded on a session
type TrackingEvent struct {
	Type        EventType `json:"type"`
	Location    Location  `json:"location"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description,omitempty"`
}

// RoutePoints is stored as a jsonb array
type RoutePoints []RoutePoint

// Value implements driver.Valuer
func (r RoutePoints) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (r *RoutePoints) Scan(src interface{}) error {
	return scanJSONB(src, r)
}

// TrackingEvents is stored as a jsonb array
type TrackingEvents []TrackingEvent

// Value implements driver.Valuer
func (e TrackingEvents) Value() (driver.Value, error) {
	if e == nil {
		return "[]", nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (e *TrackingEvents) Scan(src interface{}) error {
	return scanJSONB(src, e)
}

func scanJSONB(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// TrackingSession is the live record of one trip
type TrackingSession struct {
	ID          string         `json:"id" db:"id"`
	BookingID   string         `json:"bookingId" db:"booking_id"`
	PassengerID string         `json:"passengerId" db:"passenger_id"`
	DriverID    string         `json:"driverId" db:"driver_id"`
	State       SessionState   `json:"state" db:"state"`
	StartedAt   time.Time      `json:"startedAt" db:"started_at"`
	EndedAt     *time.Time     `json:"endedAt,omitempty" db:"ended_at"`
	Route       RoutePoints    `json:"route" db:"route"`
	Events      TrackingEvents `json:"events" db:"events"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// IsParticipant reports whether userID is the passenger or driver of the session
func (s *TrackingSession) IsParticipant(userID string) bool {
	return userID != "" && (userID == s.PassengerID || userID == s.DriverID)
}

// StartTrackingRequest opens a session for a trip
type StartTrackingRequest struct {
	BookingID       string
	DriverID        string
	PassengerID     string
	InitialLocation Location
}

// RecordEventRequest appends an event to the active session of a trip
type RecordEventRequest struct {
	BookingID   string
	Type        EventType
	Location    Location
	Description string
}

// Caller is the identity extracted from the bearer token
type Caller struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// DriverLocationBroadcast is published on the trip channel for every accepted report
type DriverLocationBroadcast struct {
	BookingID string    `json:"bookingId"`
	DriverID  string    `json:"driverId"`
	Location  Location  `json:"location"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackingEventBroadcast is published on the trip channel for every recorded event
type TrackingEventBroadcast struct {
	BookingID string        `json:"bookingId"`
	Event     TrackingEvent `json:"event"`
}

// TrackingEndedBroadcast is the last message published on a trip channel
type TrackingEndedBroadcast struct {
	BookingID string        `json:"bookingId"`
	State     SessionState  `json:"state"`
	EndedAt   time.Time     `json:"endedAt"`
	Event     TrackingEvent `json:"event"`
}

// SessionLifecycleEvent is exported to sibling services when a session opens or closes
type SessionLifecycleEvent struct {
	SessionID   string       `json:"sessionId"`
	BookingID   string       `json:"bookingId"`
	DriverID    string       `json:"driverId"`
	PassengerID string       `json:"passengerId"`
	State       SessionState `json:"state"`
	StartedAt   time.Time    `json:"startedAt"`
	EndedAt     *time.Time   `json:"endedAt,omitempty"`
	RoutePoints int          `json:"routePoints"`
	OccurredAt  time.Time    `json:"occurredAt"`
}

// RelayOp is the channel operation carried by a RelayMessage
type RelayOp string

const (
	RelayOpSubscribe   RelayOp = "subscribe"
	RelayOpUnsubscribe RelayOp = "unsubscribe"
	RelayOpBroadcast   RelayOp = "broadcast"
	RelayOpClose       RelayOp = "close"
)

// RelayMessage replicates a channel operation to every service instance
type RelayMessage struct {
	Op        RelayOp         `json:"op"`
	BookingID string          `json:"bookingId"`
	UserIDs   []string        `json:"userIds,omitempty"`
	Event     string          `json:"event,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}
