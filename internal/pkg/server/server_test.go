package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestGracefulServer_RunAndShutdown(t *testing.T) {
	e := echo.New()
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	srv := NewGracefulServer(e, models.ServerConfig{Host: "127.0.0.1", Port: freePort(t), ShutdownTimeout: 2})

	var order []string
	srv.OnShutdown("redis", func(context.Context) error { order = append(order, "redis"); return nil })
	srv.OnShutdown("nats", func(context.Context) error { order = append(order, "nats"); return errors.New("already closed") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + srv.Addr() + "/ping")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"nats", "redis"}, order)
}

func TestGracefulServer_ListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := NewGracefulServer(echo.New(), models.ServerConfig{Host: "127.0.0.1", Port: l.Addr().(*net.TCPAddr).Port})

	closed := false
	srv.OnShutdown("redis", func(context.Context) error { closed = true; return nil })

	err = srv.Run(context.Background())
	assert.ErrorContains(t, err, "http server failed")
	assert.True(t, closed)
}
