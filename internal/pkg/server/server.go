package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/models"
)

// GracefulServer runs Echo until its context is cancelled, then drains
// in-flight requests and runs the registered cleanup hooks.
type GracefulServer struct {
	echo     *echo.Echo
	cfg      models.ServerConfig
	shutdown *ShutdownManager
}

// NewGracefulServer creates a server bound to cfg.Host:cfg.Port
func NewGracefulServer(e *echo.Echo, cfg models.ServerConfig) *GracefulServer {
	e.HideBanner = true
	e.HidePort = true
	if cfg.ReadTimeout > 0 {
		e.Server.ReadTimeout = time.Duration(cfg.ReadTimeout) * time.Second
	}
	if cfg.WriteTimeout > 0 {
		e.Server.WriteTimeout = time.Duration(cfg.WriteTimeout) * time.Second
	}
	return &GracefulServer{echo: e, cfg: cfg, shutdown: NewShutdownManager()}
}

// OnShutdown registers a cleanup hook. Hooks run in reverse registration order.
func (s *GracefulServer) OnShutdown(name string, fn func(context.Context) error) {
	s.shutdown.Register(name, fn)
}

// Addr is the listen address
func (s *GracefulServer) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Run blocks until ctx is done or the listener fails
func (s *GracefulServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", logger.String("address", s.Addr()))
		if err := s.echo.Start(s.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.shutdownComponents()
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	timeout := time.Duration(s.cfg.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.echo.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("Server forced to shutdown", logger.Err(err))
	}
	s.shutdown.Shutdown(shutdownCtx)
	logger.Info("Server shutdown completed")
	return err
}

func (s *GracefulServer) shutdownComponents() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.shutdown.Shutdown(ctx)
}

type hook struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager collects cleanup hooks for long lived clients
type ShutdownManager struct {
	hooks []hook
}

// NewShutdownManager creates an empty manager
func NewShutdownManager() *ShutdownManager {
	return &ShutdownManager{}
}

// Register adds a hook
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.hooks = append(sm.hooks, hook{name: name, fn: fn})
}

// Shutdown runs every hook in reverse order. Failures are logged and do not stop the rest.
func (sm *ShutdownManager) Shutdown(ctx context.Context) {
	for i := len(sm.hooks) - 1; i >= 0; i-- {
		h := sm.hooks[i]
		if err := h.fn(ctx); err != nil {
			logger.Error("Error during component shutdown",
				logger.String("component", h.name),
				logger.Err(err))
		}
	}
}
