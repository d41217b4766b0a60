package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors shared by the HTTP server and the stores.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_round_trips_total",
				Help: "Store round trips to the backing store by entity, operation and result",
			},
			[]string{"entity", "operation", "result"},
		),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.storeOps)
	return m
}

func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, path, status).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveRoundTrip counts one store round trip; err decides the result label.
func (m *Metrics) ObserveRoundTrip(entity, operation string, err error) {
	if m == nil {
		return
	}
	result := "confirmed"
	if err != nil {
		result = "failed"
	}
	m.storeOps.WithLabelValues(entity, operation, result).Inc()
}
