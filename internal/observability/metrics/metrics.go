package metrics

import "github.com/prometheus/client_golang/prometheus"

// ScheduleMetrics exposes counters/histograms for the schedule UI flows.
type ScheduleMetrics struct {
	reloadsTotal  *prometheus.CounterVec
	ordersTotal   *prometheus.CounterVec
	renderLatency *prometheus.HistogramVec
}

func NewScheduleMetrics(reg prometheus.Registerer) *ScheduleMetrics {
	m := &ScheduleMetrics{
		reloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grooming",
			Subsystem: "schedule",
			Name:      "reloads_total",
			Help:      "Total schedule reloads by view",
		}, []string{"view", "status"}),
		ordersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grooming",
			Subsystem: "orders",
			Name:      "submissions_total",
			Help:      "Total order submission attempts",
		}, []string{"status"}),
		renderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grooming",
			Subsystem: "schedule",
			Name:      "render_latency_seconds",
			Help:      "Latency of page assembly including backend fetches",
			Buckets:   prometheus.DefBuckets,
		}, []string{"page"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.reloadsTotal, m.ordersTotal, m.renderLatency)
	return m
}

func (m *ScheduleMetrics) ObserveReload(view, status string) {
	if m == nil {
		return
	}
	m.reloadsTotal.WithLabelValues(view, status).Inc()
}

func (m *ScheduleMetrics) ObserveOrder(status string) {
	if m == nil {
		return
	}
	m.ordersTotal.WithLabelValues(status).Inc()
}

func (m *ScheduleMetrics) ObserveRenderLatency(page string, seconds float64) {
	if m == nil {
		return
	}
	m.renderLatency.WithLabelValues(page).Observe(seconds)
}
