package metrics

import "github.com/prometheus/client_golang/prometheus"

// ViewMetrics counts page renders by view and outcome.
type ViewMetrics struct {
	renderTotal *prometheus.CounterVec
}

func NewViewMetrics(reg prometheus.Registerer) *ViewMetrics {
	m := &ViewMetrics{
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "web",
			Name:      "page_render_total",
			Help:      "Total page renders by view and status",
		}, []string{"view", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.renderTotal)
	return m
}

func (m *ViewMetrics) ObserveRender(view, status string) {
	if m == nil {
		return
	}
	m.renderTotal.WithLabelValues(view, status).Inc()
}

// UpstreamMetrics tracks clinic API calls. It satisfies the client's
// Observer interface.
type UpstreamMetrics struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	m := &UpstreamMetrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "clinicapi",
			Name:      "request_total",
			Help:      "Total clinic API requests by operation and status",
		}, []string{"operation", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "clinicapi",
			Name:      "request_duration_seconds",
			Help:      "Latency of clinic API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestTotal, m.requestDuration)
	return m
}

func (m *UpstreamMetrics) ObserveUpstream(operation, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(operation, status).Inc()
	m.requestDuration.WithLabelValues(operation).Observe(seconds)
}
