package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics for the host.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	ActionsTotal  *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec
	EventsEmitted *prometheus.CounterVec
	SweepRunsTotal prometheus.Counter
}

// NewMetrics creates the metrics instance, registering everything with the
// given registerer. Passing a fresh registry keeps tests isolated from the
// default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soloquest_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "soloquest_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "soloquest_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soloquest_actions_total",
				Help: "Total number of dispatched state actions",
			},
			[]string{"action", "status"},
		),
		ActionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "soloquest_action_duration_seconds",
				Help:    "Duration of state transitions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		EventsEmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soloquest_events_emitted_total",
				Help: "Total number of events emitted by state transitions",
			},
			[]string{"type"},
		),
		SweepRunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "soloquest_sweep_runs_total",
				Help: "Total number of maintenance sweep executions",
			},
		),
	}
}

// MetricsMiddleware records request counters and latency per endpoint.
func MetricsMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(duration.Seconds())
	}
}
