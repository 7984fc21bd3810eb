package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestScheduleMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScheduleMetrics(reg)
	m.ObserveReload("week", "ok")
	m.ObserveOrder("created")
	m.ObserveRenderLatency("schedule", 0.2)
}

func TestScheduleMetricsDefaultRegistry(t *testing.T) {
	m := NewScheduleMetrics(nil)
	m.ObserveReload("day", "error")
}

func TestScheduleMetricsNilSafe(t *testing.T) {
	var m *ScheduleMetrics
	m.ObserveReload("week", "ok")
	m.ObserveOrder("failed")
	m.ObserveRenderLatency("schedule", 0.1)
}
