package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRoundTrip(t *testing.T) {
	m := New()

	m.ObserveRoundTrip("task", "update", nil)
	m.ObserveRoundTrip("task", "update", nil)
	m.ObserveRoundTrip("task", "update", errors.New("boom"))

	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("task", "update", "confirmed")); got != 2 {
		t.Errorf("confirmed = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("task", "update", "failed")); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/v1/tasks", "200", 0.01)

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/v1/tasks", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(m.requestDuration); n != 1 {
		t.Errorf("duration series = %d, want 1", n)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", "200", 0)
	m.ObserveRoundTrip("task", "load", nil)
}
