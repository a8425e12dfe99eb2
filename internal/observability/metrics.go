package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests      *prometheus.CounterVec
	apiLatency       *prometheus.HistogramVec
	apiInflight      prometheus.Gauge
	lessonCompleted  prometheus.Counter
	courseCompleted  prometheus.Counter
	xpAwarded        *prometheus.CounterVec
	xpAwardFailures  *prometheus.CounterVec
	sideEffectErrors *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thorbis",
			Name:      "api_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "thorbis",
			Name:      "api_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "thorbis",
			Name:      "api_requests_inflight",
			Help:      "HTTP requests currently being served.",
		}),
		lessonCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "thorbis",
			Name:      "lesson_completions_total",
			Help:      "First-time lesson completions.",
		}),
		courseCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "thorbis",
			Name:      "course_completions_total",
			Help:      "First-time course completions.",
		}),
		xpAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thorbis",
			Name:      "xp_awarded_total",
			Help:      "XP credited, by source type.",
		}, []string{"source_type"}),
		xpAwardFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thorbis",
			Name:      "xp_award_failures_total",
			Help:      "XP awards abandoned after an error, by source type.",
		}, []string{"source_type"}),
		sideEffectErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "thorbis",
			Name:      "progress_side_effect_errors_total",
			Help:      "Best-effort side effects that failed after a progress write.",
		}, []string{"step"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.lessonCompleted,
		m.courseCompleted,
		m.xpAwarded,
		m.xpAwardFailures,
		m.sideEffectErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) LessonCompleted() {
	if m != nil {
		m.lessonCompleted.Inc()
	}
}

func (m *Metrics) CourseCompleted() {
	if m != nil {
		m.courseCompleted.Inc()
	}
}

func (m *Metrics) XPAwarded(sourceType string, amount int) {
	if m != nil && amount > 0 {
		m.xpAwarded.WithLabelValues(sourceType).Add(float64(amount))
	}
}

func (m *Metrics) XPAwardFailed(sourceType string) {
	if m != nil {
		m.xpAwardFailures.WithLabelValues(sourceType).Inc()
	}
}

func (m *Metrics) SideEffectFailed(step string) {
	if m != nil {
		m.sideEffectErrors.WithLabelValues(step).Inc()
	}
}
