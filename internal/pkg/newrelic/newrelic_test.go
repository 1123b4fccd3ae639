package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	cfg := &models.Config{}
	assert.Nil(t, InitNewRelic(cfg))

	cfg.NewRelic.Enabled = true
	assert.Nil(t, InitNewRelic(cfg), "missing license key keeps the agent off")
}

func TestMiddleware_NilAppPassesThrough(t *testing.T) {
	e := echo.New()
	e.Use(Middleware(nil))
	e.GET("/ping", func(c echo.Context) error {
		assert.Nil(t, FromEchoContext(c))
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSegmentsWithoutTransaction(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("boom")

	v, err := WithSegmentAndReturn(ctx, "noop", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	assert.NoError(t, WithDatastoreSegment(ctx, "Redis", "drivers:geo", "GEORADIUS", func() error { return nil }))

	req := httptest.NewRequest(http.MethodGet, "http://users/internal", nil)
	resp, err := InstrumentHTTPRequest(ctx, req, func() (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	AddTransactionAttribute(nil, "k", "v")
	NoticeTransactionError(nil, wantErr)
}
