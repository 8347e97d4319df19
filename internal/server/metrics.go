package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "declutter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "declutter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Resolve processing metrics
	resolveRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "declutter_resolve_requests_total",
			Help: "Total number of page resolve requests",
		},
		[]string{"transport", "status"}, // transport: http, websocket
	)

	resolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "declutter_resolve_duration_seconds",
			Help:    "Page resolve duration in seconds",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		},
		[]string{"transport"},
	)

	clustersPerPage = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "declutter_clusters_per_page",
			Help:    "Number of clusters per page before and after resolution",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"stage"}, // stage: in, out
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "declutter_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"type"},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "declutter_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "declutter_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
