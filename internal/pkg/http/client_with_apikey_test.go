package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/piresc/nebengjek-tracking/internal/pkg/requestcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyClient_GetBody(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "secret", r.Header.Get(APIKeyHeader))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(nethttp.StatusOK)
			w.Write([]byte(`{"success":true}`))
		default:
			w.WriteHeader(nethttp.StatusNotFound)
			w.Write([]byte(`{"success":false,"error":"not found"}`))
		}
	}))
	defer server.Close()

	client := NewAPIKeyClient("secret", "user-service", server.URL, time.Second)
	ctx := requestcontext.WithRequestContext(context.Background(), &requestcontext.RequestContext{RequestID: "req-1"})

	t.Run("success", func(t *testing.T) {
		body, err := client.GetBody(ctx, "/ok")
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true}`, string(body))
	})

	t.Run("status error", func(t *testing.T) {
		_, err := client.GetBody(ctx, "/missing")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, nethttp.StatusNotFound, statusErr.StatusCode)
		assert.Contains(t, statusErr.Body, "not found")
	})
}

func TestAPIKeyClient_Timeout(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewAPIKeyClient("", "user-service", server.URL, 20*time.Millisecond)
	_, err := client.GetBody(context.Background(), "/slow")
	assert.Error(t, err)
}
