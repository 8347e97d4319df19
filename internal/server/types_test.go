package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

func TestNewServer(t *testing.T) {
	server, err := NewServer(Config{
		CORSOrigin: "*",
		MaxBodyMB:  10,
		TimeoutSec: 30,
		Resolver:   layout.DefaultOptions(),
	})
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.Nil(t, server.rateLimiter)
	assert.NotNil(t, server.resolver)
}

func TestNewServerWithRateLimiting(t *testing.T) {
	server, err := NewServer(Config{
		CORSOrigin: "*",
		MaxBodyMB:  10,
		Resolver:   layout.DefaultOptions(),
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 60,
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, server.rateLimiter)
}

func TestSetupRoutes(t *testing.T) {
	server := newTestServer(t)

	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "declutter_")
}
