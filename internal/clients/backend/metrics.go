package backend

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus metrics for backend calls.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec
}

// NewMetrics creates and registers the backend metrics on registry.
func NewMetrics(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moneyball_backend_request_duration_seconds",
				Help:    "Time taken by calls to the prediction backend",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
			},
			[]string{"method", "route", "status"},
		),
		RequestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moneyball_backend_request_errors_total",
				Help: "Backend calls that failed at the transport or returned a non-2xx status",
			},
			[]string{"method", "route"},
		),
	}

	for _, c := range []prometheus.Collector{m.RequestDuration, m.RequestErrors} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register backend metrics: %w", err)
		}
	}
	return m, nil
}

// observe is nil-safe so the client works without metrics.
func (m *Metrics) observe(method, route string, status int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	statusLabel := "error"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.RequestDuration.WithLabelValues(method, route, statusLabel).Observe(elapsed.Seconds())
	if err != nil {
		m.RequestErrors.WithLabelValues(method, route).Inc()
	}
}
