// Package server exposes the layout resolver as an HTTP API. Pages are
// posted as JSON cluster documents and returned resolved; a WebSocket
// endpoint streams pages for interactive clients.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/declutter/internal/layout"
)

// resolverInterface defines the methods the server needs from a resolver.
type resolverInterface interface {
	ProcessPage(page layout.Page) layout.Page
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	resolver       resolverInterface
	fullResolver   *layout.Resolver
	corsOrigin     string
	maxBodyMB      int64
	timeoutSec     int
	overlayEnabled bool
	rateLimiter    *RateLimiter
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	RequestsPerHour   int
	MaxRequestsPerDay int
	MaxDataPerDay     int64
}

// Config holds server configuration.
type Config struct {
	Host           string
	Port           int
	CORSOrigin     string
	MaxBodyMB      int64
	TimeoutSec     int
	Resolver       layout.Options
	OverlayEnabled bool
	RateLimit      RateLimitConfig
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ResolveResponse is the body of POST /resolve.
type ResolveResponse struct {
	Page       *layout.Page `json:"page,omitempty"`
	Error      string       `json:"error,omitempty"`
	Processing struct {
		ClustersIn  int   `json:"clusters_in"`
		ClustersOut int   `json:"clusters_out"`
		TotalNs     int64 `json:"total_ns"`
	} `json:"processing"`
}

// NewServer creates a new resolve server instance.
func NewServer(config Config) (*Server, error) {
	resolver := layout.NewResolver(config.Resolver)

	s := &Server{
		resolver:       resolver,
		fullResolver:   resolver,
		corsOrigin:     config.CORSOrigin,
		maxBodyMB:      config.MaxBodyMB,
		timeoutSec:     config.TimeoutSec,
		overlayEnabled: config.OverlayEnabled,
	}

	if config.RateLimit.Enabled {
		s.rateLimiter = NewRateLimiter(
			config.RateLimit.RequestsPerMinute,
			config.RateLimit.RequestsPerHour,
			config.RateLimit.MaxRequestsPerDay,
			config.RateLimit.MaxDataPerDay,
		)
	}

	return s, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/resolve", s.corsMiddleware(s.rateLimitMiddleware(s.resolveHandler)))
	mux.HandleFunc("/ws", s.resolveWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
