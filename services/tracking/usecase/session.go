package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/services/tracking"
)

type sessionUC struct {
	sessionRepo tracking.SessionRepo
	broadcaster tracking.Broadcaster
	publisher   tracking.EventPublisher
	metrics     *Metrics
}

// NewSessionUC creates the session lifecycle use case
func NewSessionUC(
	sessionRepo tracking.SessionRepo,
	broadcaster tracking.Broadcaster,
	publisher tracking.EventPublisher,
	metrics *Metrics,
) tracking.SessionUC {
	return &sessionUC{
		sessionRepo: sessionRepo,
		broadcaster: broadcaster,
		publisher:   publisher,
		metrics:     metrics,
	}
}

// StartTracking opens the session of a trip and subscribes both parties to its channel
func (uc *sessionUC) StartTracking(ctx context.Context, caller models.Caller, req models.StartTrackingRequest) (*models.TrackingSession, error) {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return nil, err
	}
	if err := requireID("driverId", req.DriverID); err != nil {
		return nil, err
	}
	if err := requireID("passengerId", req.PassengerID); err != nil {
		return nil, err
	}
	if err := validateLocation("initialLocation", req.InitialLocation); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !(caller.Role == models.RoleDriver && caller.UserID == req.DriverID) {
		return nil, tracking.Forbidden("only the assigned driver may start tracking")
	}

	now := models.Now()
	session := &models.TrackingSession{
		ID:          uuid.NewString(),
		BookingID:   req.BookingID,
		PassengerID: req.PassengerID,
		DriverID:    req.DriverID,
		State:       models.SessionStateActive,
		StartedAt:   now,
		Route: models.RoutePoints{{
			Location:  req.InitialLocation,
			Timestamp: now,
		}},
		Events: models.TrackingEvents{{
			Type:        models.EventPickupStarted,
			Location:    req.InitialLocation,
			Timestamp:   now,
			Description: "Tracking started",
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	uc.metrics.sessionStarted()

	if err := uc.broadcaster.Subscribe(ctx, session.BookingID, session.PassengerID, session.DriverID); err != nil {
		uc.metrics.broadcastFailed("subscribe")
		logger.WarnCtx(ctx, "Failed to subscribe trip participants",
			logger.String("booking_id", session.BookingID),
			logger.Err(err))
	}

	if err := uc.publisher.PublishSessionStarted(ctx, lifecycleEvent(session)); err != nil {
		logger.WarnCtx(ctx, "Failed to publish session started",
			logger.String("booking_id", session.BookingID),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Tracking session started",
		logger.String("booking_id", session.BookingID),
		logger.String("session_id", session.ID),
		logger.String("driver_id", session.DriverID))
	return session, nil
}

// RecordEvent appends a lifecycle event. Terminal types close the session.
func (uc *sessionUC) RecordEvent(ctx context.Context, caller models.Caller, req models.RecordEventRequest) (*models.TrackingSession, error) {
	if err := validateEvent(req); err != nil {
		return nil, err
	}
	if req.Type.IsTerminal() {
		return uc.finish(ctx, caller, req)
	}

	if _, err := uc.activeSessionFor(ctx, caller, req.BookingID); err != nil {
		return nil, err
	}

	event, point := eventAndPoint(req)
	session, err := uc.sessionRepo.AppendEvent(ctx, req.BookingID, event, point)
	if err != nil {
		return nil, err
	}

	uc.broadcast(ctx, req.BookingID, constants.EventTrackingEvent, models.TrackingEventBroadcast{
		BookingID: req.BookingID,
		Event:     event,
	})
	return session, nil
}

// EndTracking closes the session with a terminal event, trip_completed by default
func (uc *sessionUC) EndTracking(ctx context.Context, caller models.Caller, req models.RecordEventRequest) (*models.TrackingSession, error) {
	if req.Type == "" {
		req.Type = models.EventTripCompleted
	}
	if err := validateEvent(req); err != nil {
		return nil, err
	}
	if !req.Type.IsTerminal() {
		return nil, tracking.InvalidInput("type must be %s or %s", models.EventTripCompleted, models.EventTripCancelled)
	}
	return uc.finish(ctx, caller, req)
}

func (uc *sessionUC) finish(ctx context.Context, caller models.Caller, req models.RecordEventRequest) (*models.TrackingSession, error) {
	if _, err := uc.activeSessionFor(ctx, caller, req.BookingID); err != nil {
		return nil, err
	}

	event, point := eventAndPoint(req)
	state := req.Type.TerminalState()
	session, err := uc.sessionRepo.CloseSession(ctx, req.BookingID, event, point, state, event.Timestamp)
	if err != nil {
		return nil, err
	}
	uc.metrics.sessionEnded(string(state))

	uc.broadcast(ctx, req.BookingID, constants.EventTrackingEnded, models.TrackingEndedBroadcast{
		BookingID: req.BookingID,
		State:     state,
		EndedAt:   event.Timestamp,
		Event:     event,
	})
	if err := uc.broadcaster.Close(ctx, req.BookingID); err != nil {
		uc.metrics.broadcastFailed("close")
		logger.WarnCtx(ctx, "Failed to close trip channel",
			logger.String("booking_id", req.BookingID),
			logger.Err(err))
	}

	if err := uc.publisher.PublishSessionEnded(ctx, lifecycleEvent(session)); err != nil {
		logger.WarnCtx(ctx, "Failed to publish session ended",
			logger.String("booking_id", req.BookingID),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Tracking session ended",
		logger.String("booking_id", req.BookingID),
		logger.String("state", string(state)))
	return session, nil
}

// GetSession returns the latest session of a trip to its passenger, its driver or an admin
func (uc *sessionUC) GetSession(ctx context.Context, caller models.Caller, bookingID string) (*models.TrackingSession, error) {
	if err := requireID("bookingId", bookingID); err != nil {
		return nil, err
	}
	session, err := uc.sessionRepo.GetLatestSession(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !session.IsParticipant(caller.UserID) {
		return nil, tracking.Forbidden("not a participant of this trip")
	}
	return session, nil
}

// JoinChannel subscribes the caller to the channel of an active trip it may read
func (uc *sessionUC) JoinChannel(ctx context.Context, caller models.Caller, bookingID string) error {
	if err := requireID("bookingId", bookingID); err != nil {
		return err
	}
	if _, err := uc.activeSessionFor(ctx, caller, bookingID); err != nil {
		return err
	}
	return uc.broadcaster.Subscribe(ctx, bookingID, caller.UserID)
}

// LeaveChannel unsubscribes the caller from a trip channel
func (uc *sessionUC) LeaveChannel(ctx context.Context, caller models.Caller, bookingID string) error {
	if err := requireID("bookingId", bookingID); err != nil {
		return err
	}
	return uc.broadcaster.Unsubscribe(ctx, bookingID, caller.UserID)
}

// activeSessionFor loads the active session and checks the caller takes part in it
func (uc *sessionUC) activeSessionFor(ctx context.Context, caller models.Caller, bookingID string) (*models.TrackingSession, error) {
	session, err := uc.sessionRepo.GetActiveSession(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !session.IsParticipant(caller.UserID) {
		return nil, tracking.Forbidden("not a participant of this trip")
	}
	return session, nil
}

func (uc *sessionUC) broadcast(ctx context.Context, bookingID, event string, payload interface{}) {
	if err := uc.broadcaster.Broadcast(ctx, bookingID, event, payload); err != nil {
		uc.metrics.broadcastFailed(event)
		logger.WarnCtx(ctx, "Failed to broadcast trip event",
			logger.String("booking_id", bookingID),
			logger.String("event", event),
			logger.Err(err))
	}
}

func validateEvent(req models.RecordEventRequest) error {
	if err := requireID("bookingId", req.BookingID); err != nil {
		return err
	}
	if !req.Type.IsValid() {
		return tracking.InvalidInput("unknown event type %q", req.Type)
	}
	return validateLocation("location", req.Location)
}

// eventAndPoint builds the event and the route point mirroring its position
func eventAndPoint(req models.RecordEventRequest) (models.TrackingEvent, models.RoutePoint) {
	now := models.Now()
	return models.TrackingEvent{
			Type:        req.Type,
			Location:    req.Location,
			Timestamp:   now,
			Description: req.Description,
		}, models.RoutePoint{
			Location:  req.Location,
			Timestamp: now,
		}
}

func lifecycleEvent(s *models.TrackingSession) models.SessionLifecycleEvent {
	return models.SessionLifecycleEvent{
		SessionID:   s.ID,
		BookingID:   s.BookingID,
		DriverID:    s.DriverID,
		PassengerID: s.PassengerID,
		State:       s.State,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
		RoutePoints: len(s.Route),
		OccurredAt:  models.Now(),
	}
}
