package http

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/services/tracking"
	"github.com/piresc/nebengjek-tracking/services/tracking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func position(lat, lng float64) map[string]interface{} {
	return map[string]interface{}{"latitude": lat, "longitude": lng}
}

func TestTrackingHandler_StartTracking(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockSetup      func(*mocks.MockSessionUC)
		expectedStatus int
	}{
		{
			name: "Success",
			requestBody: map[string]interface{}{
				"bookingId": "T1", "driverId": "D1", "passengerId": "P1", "initialLocation": position(0, 0),
			},
			mockSetup: func(mockUC *mocks.MockSessionUC) {
				mockUC.EXPECT().StartTracking(gomock.Any(), testDriver, models.StartTrackingRequest{
					BookingID: "T1", DriverID: "D1", PassengerID: "P1", InitialLocation: models.Location{},
				}).Return(&models.TrackingSession{BookingID: "T1", State: models.SessionStateActive}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing initial location",
			requestBody:    map[string]interface{}{"bookingId": "T1", "driverId": "D1", "passengerId": "P1"},
			mockSetup:      func(mockUC *mocks.MockSessionUC) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Already active",
			requestBody: map[string]interface{}{
				"bookingId": "T1", "driverId": "D1", "passengerId": "P1", "initialLocation": position(0, 0),
			},
			mockSetup: func(mockUC *mocks.MockSessionUC) {
				mockUC.EXPECT().StartTracking(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tracking.ErrSessionAlreadyActive)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockUC := mocks.NewMockSessionUC(ctrl)
			tt.mockSetup(mockUC)

			c, rec := newContext(http.MethodPost, "/tracking/start", tt.requestBody, &testDriver)
			require.NoError(t, NewTrackingHandler(mockUC, false).StartTracking(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestTrackingHandler_RecordEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockSessionUC(ctrl)
	handler := NewTrackingHandler(mockUC, false)

	mockUC.EXPECT().RecordEvent(gomock.Any(), testDriver, models.RecordEventRequest{
		BookingID:   "T1",
		Type:        models.EventPickupArrived,
		Location:    models.Location{Latitude: 0.001, Longitude: 0.001},
		Description: "at the lobby",
	}).Return(&models.TrackingSession{BookingID: "T1"}, nil)

	c, rec := newContext(http.MethodPost, "/tracking/event", map[string]interface{}{
		"bookingId":   "T1",
		"type":        "pickup_arrived",
		"location":    position(0.001, 0.001),
		"description": "at the lobby",
	}, &testDriver)
	require.NoError(t, handler.RecordEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	mockUC.EXPECT().RecordEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tracking.ErrSessionNotFound)

	c, rec = newContext(http.MethodPost, "/tracking/event", map[string]interface{}{
		"bookingId": "T1", "type": "dropoff_arrived", "location": position(0, 0),
	}, &testDriver)
	require.NoError(t, handler.RecordEvent(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackingHandler_EndTracking(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockSessionUC(ctrl)
	handler := NewTrackingHandler(mockUC, false)

	mockUC.EXPECT().EndTracking(gomock.Any(), testDriver, models.RecordEventRequest{
		BookingID: "T1",
		Location:  models.Location{Latitude: 0.002, Longitude: 0.002},
	}).Return(&models.TrackingSession{BookingID: "T1", State: models.SessionStateCompleted}, nil)

	c, rec := newContext(http.MethodPost, "/tracking/end", map[string]interface{}{
		"bookingId":     "T1",
		"finalLocation": position(0.002, 0.002),
	}, &testDriver)
	require.NoError(t, handler.EndTracking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["state"])

	c, rec = newContext(http.MethodPost, "/tracking/end", map[string]interface{}{"bookingId": "T1"}, &testDriver)
	require.NoError(t, handler.EndTracking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrackingHandler_GetSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockUC := mocks.NewMockSessionUC(ctrl)
	handler := NewTrackingHandler(mockUC, false)
	passenger := models.Caller{UserID: "P2", Role: models.RolePassenger}

	mockUC.EXPECT().GetSession(gomock.Any(), passenger, "T1").Return(nil, tracking.Forbidden("not a participant of this trip"))

	c, rec := newContext(http.MethodGet, "/tracking/T1", nil, &passenger)
	c.SetParamNames("bookingId")
	c.SetParamValues("T1")
	require.NoError(t, handler.GetSession(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newContext(http.MethodGet, "/tracking/T1", nil, nil)
	require.NoError(t, handler.GetSession(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
