package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	apiRequests        *prometheus.CounterVec
	apiLatency         *prometheus.HistogramVec
	apiInflight        prometheus.Gauge
	aggregations       *prometheus.CounterVec
	aggregationLatency *prometheus.HistogramVec
}

// NewMetrics returns metrics backed by their own registry, so several
// instances can coexist in one process. Callers that keep metrics disabled
// pass a nil *Metrics around; every method is nil-safe.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stock_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stock_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_aggregations_total",
			Help: "Aggregations by engine/outcome.",
		}, []string{"engine", "outcome"}),
		aggregationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stock_aggregation_duration_seconds",
			Help:    "Aggregation latency in seconds by engine/outcome.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"engine", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.aggregations,
		m.aggregationLatency,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// WriteHTTP serves the Prometheus exposition; 503 when metrics are off.
func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	m.handler.ServeHTTP(w, r)
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveAggregation records one engine call. outcome is one of "success",
// "rejected", "worker_error" or "error".
func (m *Metrics) ObserveAggregation(engine, outcome string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregations.WithLabelValues(engine, outcome).Inc()
	m.aggregationLatency.WithLabelValues(engine, outcome).Observe(dur.Seconds())
}
