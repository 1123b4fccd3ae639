package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

const uniqueViolation = "23505"

const sessionColumns = `id, booking_id, passenger_id, driver_id, state, started_at, ended_at,
	route, events, created_at, updated_at`

type sessionRepo struct {
	db *sqlx.DB
}

// NewSessionRepository creates a PostgreSQL backed session repository
func NewSessionRepository(db *sqlx.DB) tracking.SessionRepo {
	return &sessionRepo{db: db}
}

// CreateSession inserts a new active session. The partial unique index on
// booking_id rejects a second active session for the same trip.
func (r *sessionRepo) CreateSession(ctx context.Context, session *models.TrackingSession) error {
	query := `
		INSERT INTO tracking_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	return newrelic.WithDatastoreSegment(ctx, "Postgres", "tracking_sessions", "INSERT", func() error {
		_, err := r.db.ExecContext(ctx, query,
			session.ID,
			session.BookingID,
			session.PassengerID,
			session.DriverID,
			session.State,
			session.StartedAt,
			session.EndedAt,
			session.Route,
			session.Events,
			session.CreatedAt,
			session.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return tracking.ErrSessionAlreadyActive
			}
			return fmt.Errorf("failed to create tracking session: %w", err)
		}
		return nil
	})
}

// GetActiveSession returns the active session of a trip
func (r *sessionRepo) GetActiveSession(ctx context.Context, bookingID string) (*models.TrackingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM tracking_sessions WHERE booking_id = $1 AND state = 'active'`
	return r.getOne(ctx, "SELECT", query, bookingID)
}

// GetLatestSession returns the most recently started session of a trip
func (r *sessionRepo) GetLatestSession(ctx context.Context, bookingID string) (*models.TrackingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM tracking_sessions
		WHERE booking_id = $1 ORDER BY started_at DESC LIMIT 1`
	return r.getOne(ctx, "SELECT", query, bookingID)
}

// AppendEvent appends the event and its mirrored route point in one statement
func (r *sessionRepo) AppendEvent(ctx context.Context, bookingID string, event models.TrackingEvent, point models.RoutePoint) (*models.TrackingSession, error) {
	query := `
		UPDATE tracking_sessions
		SET events = events || $2::jsonb,
			route = route || $3::jsonb,
			updated_at = $4
		WHERE booking_id = $1 AND state = 'active'
		RETURNING ` + sessionColumns

	return r.getOne(ctx, "UPDATE", query,
		bookingID,
		models.TrackingEvents{event},
		models.RoutePoints{point},
		event.Timestamp,
	)
}

// CloseSession appends the terminal event and moves the session to state
func (r *sessionRepo) CloseSession(ctx context.Context, bookingID string, event models.TrackingEvent, point models.RoutePoint, state models.SessionState, endedAt time.Time) (*models.TrackingSession, error) {
	query := `
		UPDATE tracking_sessions
		SET events = events || $2::jsonb,
			route = route || $3::jsonb,
			state = $4,
			ended_at = $5,
			updated_at = $5
		WHERE booking_id = $1 AND state = 'active'
		RETURNING ` + sessionColumns

	return r.getOne(ctx, "UPDATE", query,
		bookingID,
		models.TrackingEvents{event},
		models.RoutePoints{point},
		state,
		endedAt,
	)
}

// AppendDriverRoutePoint extends the route of every active session driven by driverID
func (r *sessionRepo) AppendDriverRoutePoint(ctx context.Context, driverID string, point models.RoutePoint) ([]string, error) {
	query := `
		UPDATE tracking_sessions
		SET route = route || $2::jsonb,
			updated_at = $3
		WHERE driver_id = $1 AND state = 'active'
		RETURNING booking_id`

	bookingIDs := []string{}
	err := newrelic.WithDatastoreSegment(ctx, "Postgres", "tracking_sessions", "UPDATE", func() error {
		return r.db.SelectContext(ctx, &bookingIDs, query, driverID, models.RoutePoints{point}, point.Timestamp)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append route point: %w", err)
	}
	return bookingIDs, nil
}

func (r *sessionRepo) getOne(ctx context.Context, operation, query string, args ...interface{}) (*models.TrackingSession, error) {
	var session models.TrackingSession
	err := newrelic.WithDatastoreSegment(ctx, "Postgres", "tracking_sessions", operation, func() error {
		return r.db.GetContext(ctx, &session, query, args...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tracking.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking session: %w", err)
	}
	return &session, nil
}
