package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/nebengjek-tracking/internal/pkg/jwt"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/piresc/nebengjek-tracking/internal/pkg/requestcontext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = models.JWTConfig{Secret: "middleware-test-secret", Expiration: 5, Issuer: "test"}

func TestJWTAuthMiddleware(t *testing.T) {
	token, _, err := jwtpkg.GenerateToken("d-1", models.RoleDriver, testJWT)
	require.NoError(t, err)
	foreign, _, err := jwtpkg.GenerateToken("d-1", models.RoleDriver, models.JWTConfig{Secret: "other-secret", Expiration: 5})
	require.NoError(t, err)
	roleless, _, err := jwtpkg.GenerateToken("d-1", "", testJWT)
	require.NoError(t, err)

	e := echo.New()
	e.Use(RequestContextMiddleware("tracking-service"))
	e.Use(JWTAuthMiddleware(testJWT))
	e.GET("/me", func(c echo.Context) error {
		caller, ok := CallerFromContext(c)
		require.True(t, ok)
		assert.Equal(t, "d-1", requestcontext.GetUserID(c.Request().Context()))
		return c.JSON(http.StatusOK, caller)
	})

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{"bearer header", "/me", "Bearer " + token, http.StatusOK},
		{"query token", "/me?token=" + token, "", http.StatusOK},
		{"missing token", "/me", "", http.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"other signer", "/me", "Bearer " + foreign, http.StatusUnauthorized},
		{"missing role claim", "/me", "Bearer " + roleless, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
			if tt.wantStatus == http.StatusOK {
				var caller models.Caller
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &caller))
				assert.Equal(t, models.Caller{UserID: "d-1", Role: models.RoleDriver}, caller)
			}
		})
	}
}

func TestRequestContextMiddleware_ReusesInboundID(t *testing.T) {
	e := echo.New()
	e.Use(RequestContextMiddleware("tracking-service"))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, requestcontext.GetRequestID(c.Request().Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "upstream-id")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-id", rec.Body.String())
	assert.Equal(t, "upstream-id", rec.Header().Get(echo.HeaderXRequestID))
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestContextMiddleware("tracking-service"))
	e.Use(PanicRecoveryMiddleware(logger.NewNopLogger()))
	e.GET("/boom", func(c echo.Context) error {
		panic("nil map write")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body["request_id"])
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(metrics.Middleware())
	e.GET("/tracking/:bookingId", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tracking/b-1", nil))
	}
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.requests.WithLabelValues(http.MethodGet, "/tracking/:bookingId", "204")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.requests.WithLabelValues(http.MethodGet, "/tracking/:bookingId", "204")))
}
