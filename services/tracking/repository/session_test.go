package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/services/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionColumnNames = []string{
	"id", "booking_id", "passenger_id", "driver_id", "state", "started_at", "ended_at",
	"route", "events", "created_at", "updated_at",
}

func setupSqlMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func testSession(now time.Time) *models.TrackingSession {
	origin := models.Location{Latitude: 0, Longitude: 0}
	return &models.TrackingSession{
		ID:          "6a1d1b8e-3f7c-4e55-9a70-0d1c1c1d2b11",
		BookingID:   "T1",
		PassengerID: "P1",
		DriverID:    "D1",
		State:       models.SessionStateActive,
		StartedAt:   now,
		Route:       models.RoutePoints{{Location: origin, Timestamp: now}},
		Events:      models.TrackingEvents{{Type: models.EventPickupStarted, Location: origin, Timestamp: now}},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func sessionRow(s *models.TrackingSession) *sqlmock.Rows {
	route, _ := s.Route.Value()
	events, _ := s.Events.Value()
	var endedAt interface{}
	if s.EndedAt != nil {
		endedAt = *s.EndedAt
	}
	return sqlmock.NewRows(sessionColumnNames).AddRow(
		s.ID, s.BookingID, s.PassengerID, s.DriverID, string(s.State), s.StartedAt, endedAt,
		[]byte(route.(string)), []byte(events.(string)), s.CreatedAt, s.UpdatedAt,
	)
}

func TestCreateSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("inserts active session", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)
		session := testSession(now)

		mock.ExpectExec("^INSERT INTO tracking_sessions (.+)").
			WithArgs(session.ID, "T1", "P1", "D1", "active", now, nil, sqlmock.AnyArg(), sqlmock.AnyArg(), now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.CreateSession(context.Background(), session))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation means already active", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectExec("^INSERT INTO tracking_sessions (.+)").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tracking_sessions_active_booking_idx"})

		err := repo.CreateSession(context.Background(), testSession(now))
		assert.ErrorIs(t, err, tracking.ErrSessionAlreadyActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectExec("^INSERT INTO tracking_sessions (.+)").WillReturnError(errors.New("connection reset"))

		err := repo.CreateSession(context.Background(), testSession(now))
		assert.ErrorContains(t, err, "failed to create tracking session")
		assert.NotErrorIs(t, err, tracking.ErrSessionAlreadyActive)
	})
}

func TestGetActiveSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)
		want := testSession(now)

		mock.ExpectQuery("^SELECT (.+) FROM tracking_sessions WHERE booking_id = \\$1 AND state = 'active'").
			WithArgs("T1").
			WillReturnRows(sessionRow(want))

		got, err := repo.GetActiveSession(context.Background(), "T1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectQuery("^SELECT (.+) FROM tracking_sessions").
			WithArgs("T9").
			WillReturnRows(sqlmock.NewRows(sessionColumnNames))

		_, err := repo.GetActiveSession(context.Background(), "T9")
		assert.ErrorIs(t, err, tracking.ErrSessionNotFound)
	})
}

func TestGetLatestSession_Ended(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	db, mock := setupSqlMock(t)
	repo := NewSessionRepository(db)

	ended := testSession(now)
	endedAt := now.Add(20 * time.Minute)
	ended.State = models.SessionStateCompleted
	ended.EndedAt = &endedAt

	mock.ExpectQuery("^SELECT (.+) FROM tracking_sessions\\s+WHERE booking_id = \\$1 ORDER BY started_at DESC LIMIT 1").
		WithArgs("T1").
		WillReturnRows(sessionRow(ended))

	got, err := repo.GetLatestSession(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateCompleted, got.State)
	require.NotNil(t, got.EndedAt)
	assert.Equal(t, endedAt, *got.EndedAt)
}

func TestAppendEvent(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	arrived := models.Location{Latitude: 0.001, Longitude: 0.001}
	event := models.TrackingEvent{Type: models.EventPickupArrived, Location: arrived, Timestamp: now.Add(time.Minute)}
	point := models.RoutePoint{Location: arrived, Timestamp: event.Timestamp}

	t.Run("appends to active session", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		updated := testSession(now)
		updated.Events = append(updated.Events, event)
		updated.Route = append(updated.Route, point)

		mock.ExpectQuery("^\\s*UPDATE tracking_sessions\\s+SET events = events \\|\\| \\$2::jsonb(.+)WHERE booking_id = \\$1 AND state = 'active'").
			WithArgs("T1", sqlmock.AnyArg(), sqlmock.AnyArg(), event.Timestamp).
			WillReturnRows(sessionRow(updated))

		got, err := repo.AppendEvent(context.Background(), "T1", event, point)
		require.NoError(t, err)
		assert.Len(t, got.Events, 2)
		assert.Len(t, got.Route, 2)
		assert.Equal(t, arrived, got.Route[1].Location)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active session", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectQuery("^\\s*UPDATE tracking_sessions").
			WillReturnRows(sqlmock.NewRows(sessionColumnNames))

		_, err := repo.AppendEvent(context.Background(), "T1", event, point)
		assert.ErrorIs(t, err, tracking.ErrSessionNotFound)
	})
}

func TestCloseSession(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	endedAt := now.Add(30 * time.Minute)
	dropoff := models.Location{Latitude: 0.002, Longitude: 0.002}
	event := models.TrackingEvent{Type: models.EventTripCompleted, Location: dropoff, Timestamp: endedAt}
	point := models.RoutePoint{Location: dropoff, Timestamp: endedAt}

	db, mock := setupSqlMock(t)
	repo := NewSessionRepository(db)

	closed := testSession(now)
	closed.State = models.SessionStateCompleted
	closed.EndedAt = &endedAt
	closed.Events = append(closed.Events, event)
	closed.Route = append(closed.Route, point)

	mock.ExpectQuery("^\\s*UPDATE tracking_sessions(.+)state = \\$4(.+)WHERE booking_id = \\$1 AND state = 'active'").
		WithArgs("T1", sqlmock.AnyArg(), sqlmock.AnyArg(), "completed", endedAt).
		WillReturnRows(sessionRow(closed))

	got, err := repo.CloseSession(context.Background(), "T1", event, point, models.SessionStateCompleted, endedAt)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStateCompleted, got.State)
	assert.Equal(t, models.EventTripCompleted, got.Events[len(got.Events)-1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendDriverRoutePoint(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	point := models.RoutePoint{Location: models.Location{Latitude: 1, Longitude: 2}, Timestamp: now, Speed: 8, Heading: 180}

	t.Run("returns touched bookings", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectQuery("^\\s*UPDATE tracking_sessions\\s+SET route = route \\|\\| \\$2::jsonb(.+)WHERE driver_id = \\$1 AND state = 'active'").
			WithArgs("D1", sqlmock.AnyArg(), now).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow("T1").AddRow("T2"))

		ids, err := repo.AppendDriverRoutePoint(context.Background(), "D1", point)
		require.NoError(t, err)
		assert.Equal(t, []string{"T1", "T2"}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active sessions", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectQuery("^\\s*UPDATE tracking_sessions").
			WillReturnRows(sqlmock.NewRows([]string{"booking_id"}))

		ids, err := repo.AppendDriverRoutePoint(context.Background(), "D1", point)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupSqlMock(t)
		repo := NewSessionRepository(db)

		mock.ExpectQuery("^\\s*UPDATE tracking_sessions").WillReturnError(errors.New("timeout"))

		_, err := repo.AppendDriverRoutePoint(context.Background(), "D1", point)
		assert.ErrorContains(t, err, "failed to append route point")
	})
}

func TestMigrate(t *testing.T) {
	db, mock := setupSqlMock(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS tracking_sessions").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
