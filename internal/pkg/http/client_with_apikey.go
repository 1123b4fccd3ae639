package http

import (
	"context"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/internal/pkg/newrelic"
	"github.com/piresc/nebengjek-tracking/internal/pkg/requestcontext"
)

const (
	// DefaultTimeout applies when no timeout is configured
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader carries the service-to-service key
	APIKeyHeader = "X-API-Key"
)

// StatusError is returned when the remote service answers with a 4xx or 5xx
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, nethttp.StatusText(e.StatusCode))
}

// APIKeyClient calls sibling services with API key authentication
type APIKeyClient struct {
	client      *nethttp.Client
	apiKey      string
	baseURL     string
	serviceName string
}

// NewAPIKeyClient builds a client for serviceName at baseURL
func NewAPIKeyClient(apiKey, serviceName, baseURL string, timeout time.Duration) *APIKeyClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if apiKey == "" {
		logger.Warn("No API key configured for service", logger.String("service", serviceName))
	}
	return &APIKeyClient{
		client:      &nethttp.Client{Timeout: timeout},
		apiKey:      apiKey,
		baseURL:     baseURL,
		serviceName: serviceName,
	}
}

// GetBody performs a GET and returns the response body of a 2xx answer
func (c *APIKeyClient) GetBody(ctx context.Context, endpoint string) ([]byte, error) {
	url := c.baseURL + endpoint

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if requestID := requestcontext.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := newrelic.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.client.Do(req)
	})
	if err != nil {
		logger.WarnCtx(ctx, "HTTP request failed",
			logger.String("url", url),
			logger.String("service", c.serviceName),
			logger.Err(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.DebugCtx(ctx, "HTTP request completed",
		logger.String("url", url),
		logger.String("service", c.serviceName),
		logger.Int("status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
