package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded by RecordFetch.
const (
	OutcomeSuccess     = "success"
	OutcomeTransport   = "transport_error"
	OutcomeApplication = "application_error"
	OutcomeDecode      = "decode_error"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	fetchesTotal   *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	staleResults   prometheus.Counter
	rendersTotal   *prometheus.CounterVec
	exportsTotal   *prometheus.CounterVec
	sessionsActive prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treasury_fetches_total",
			Help: "Total number of snapshot fetches by outcome",
		},
		[]string{"outcome"},
	)
	r.fetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "treasury_fetch_duration_seconds",
			Help:    "Snapshot fetch duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
	r.staleResults = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "treasury_stale_results_total",
			Help: "Fetch results discarded because a newer fetch was issued",
		},
	)
	r.rendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treasury_renders_total",
			Help: "Total number of section renders",
		},
		[]string{"section"},
	)
	r.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "treasury_exports_total",
			Help: "Total number of export requests",
		},
		[]string{"kind", "status"},
	)
	r.sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "treasury_sessions_active",
			Help: "Number of live dashboard sessions",
		},
	)

	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.staleResults)
	reg.MustRegister(r.rendersTotal)
	reg.MustRegister(r.exportsTotal)
	reg.MustRegister(r.sessionsActive)

	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordFetch records a completed snapshot fetch.
func (r *Registry) RecordFetch(outcome string, duration float64) {
	r.fetchesTotal.WithLabelValues(outcome).Inc()
	r.fetchDuration.Observe(duration)
}

// RecordStale records a fetch result that was discarded.
func (r *Registry) RecordStale() {
	r.staleResults.Inc()
}

// RecordRender records a section render.
func (r *Registry) RecordRender(section string) {
	r.rendersTotal.WithLabelValues(section).Inc()
}

// RecordExport records an export attempt.
func (r *Registry) RecordExport(kind, status string) {
	r.exportsTotal.WithLabelValues(kind, status).Inc()
}

// SetSessionsActive sets the number of live sessions.
func (r *Registry) SetSessionsActive(count int) {
	r.sessionsActive.Set(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
