package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/constants"
	"github.com/piresc/nebengjek-tracking/internal/pkg/middleware"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	wspkg "github.com/piresc/nebengjek-tracking/internal/pkg/websocket"
	"github.com/piresc/nebengjek-tracking/services/tracking"
	"github.com/piresc/nebengjek-tracking/services/tracking/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var passenger = models.Caller{UserID: "P1", Role: models.RolePassenger}

func setupServer(t *testing.T, sessionUC tracking.SessionUC) (*wspkg.Manager, *websocket.Conn) {
	t.Helper()
	manager := wspkg.NewManager(8)
	handler := NewHandler(manager, sessionUC)

	e := echo.New()
	e.GET("/ws", handler.HandleWebSocket, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetCaller(c, passenger)
			return next(c)
		}
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return manager, conn
}

func send(t *testing.T, conn *websocket.Conn, raw string) models.WSMessage {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(raw)))
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandler_JoinAndLeave(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessionUC := mocks.NewMockSessionUC(ctrl)
	sessionUC.EXPECT().JoinChannel(gomock.Any(), passenger, "T1").Return(nil)
	sessionUC.EXPECT().LeaveChannel(gomock.Any(), passenger, "T1").Return(nil)

	_, conn := setupServer(t, sessionUC)

	reply := send(t, conn, `{"event":"join_booking","data":{"bookingId":"T1"}}`)
	assert.Equal(t, constants.EventJoinedBooking, reply.Event)
	assert.JSONEq(t, `{"bookingId":"T1"}`, string(reply.Data))

	reply = send(t, conn, `{"event":"leave_booking","data":{"bookingId":"T1"}}`)
	assert.Equal(t, constants.EventLeftBooking, reply.Event)
}

func TestHandler_JoinErrors(t *testing.T) {
	tests := []struct {
		name        string
		ucErr       error
		wantCode    string
		wantMessage string
	}{
		{"outsider", tracking.Forbidden("not a participant of this trip"), constants.ErrorUnauthorized, "Access denied"},
		{"ended trip", tracking.ErrSessionNotFound, constants.ErrorTripNotFound, tracking.ErrSessionNotFound.Error()},
		{"store failure", assert.AnError, constants.ErrorInternalError, "Operation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sessionUC := mocks.NewMockSessionUC(ctrl)
			sessionUC.EXPECT().JoinChannel(gomock.Any(), passenger, "T1").Return(tt.ucErr)

			_, conn := setupServer(t, sessionUC)

			reply := send(t, conn, `{"event":"join_booking","data":{"bookingId":"T1"}}`)
			assert.Equal(t, constants.EventError, reply.Event)
			assert.Contains(t, string(reply.Data), tt.wantCode)
			assert.Contains(t, string(reply.Data), tt.wantMessage)
		})
	}
}

func TestHandler_InvalidMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, conn := setupServer(t, mocks.NewMockSessionUC(ctrl))

	for _, raw := range []string{
		`not json`,
		`{"event":"join_booking","data":{}}`,
		`{"event":"teleport","data":{}}`,
	} {
		reply := send(t, conn, raw)
		assert.Equal(t, constants.EventError, reply.Event, raw)
		assert.Contains(t, string(reply.Data), constants.ErrorInvalidFormat, raw)
	}
}

func TestHandler_RepeatedJoinIsAcknowledgedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessionUC := mocks.NewMockSessionUC(ctrl)
	sessionUC.EXPECT().JoinChannel(gomock.Any(), passenger, "T1").Times(0)

	manager, conn := setupServer(t, sessionUC)
	manager.Subscribe("T1", passenger.UserID)

	reply := send(t, conn, `{"event":"join_booking","data":{"bookingId":"T1"}}`)
	assert.Equal(t, constants.EventJoinedBooking, reply.Event)
	assert.True(t, manager.IsSubscribed("T1", passenger.UserID))
}
