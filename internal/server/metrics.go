package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// The collectors are process-wide singletons registered with the default
// Prometheus registry at package initialization. NewMetrics can therefore be
// called any number of times (every test builds its own Server) without
// tripping duplicate registration.
var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "harmcalc_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})

	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "harmcalc_requests_total",
		Help: "Total number of HTTP requests served.",
	})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "harmcalc_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	})

	summationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "harmcalc_summation_duration_seconds",
		Help:    "Time spent computing H(N), by algorithm.",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algo"})

	summationTerms = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "harmcalc_summation_terms",
		Help:    "Requested upper bound N per summation.",
		Buckets: prometheus.ExponentialBuckets(1_000, 10, 7),
	})
)

// Metrics is the server's instrumentation facade. It narrows the Prometheus
// API to the few operations the handlers need and owns the exposition
// handler for the /metrics endpoint.
type Metrics struct {
	handler http.Handler
}

// NewMetrics returns the metrics facade. The exposition handler serves the
// default registry, so the output includes the Go runtime collectors next to
// the harmcalc series.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementActiveRequests records the start of an in-flight request.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
}

// DecrementActiveRequests records the end of an in-flight request.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// RecordRequest counts a completed request and observes its latency.
func (m *Metrics) RecordRequest(d time.Duration) {
	requestsTotal.Inc()
	requestDuration.Observe(d.Seconds())
}

// RecordSummation observes a completed summation: its duration under the
// algorithm label and the requested bound N.
func (m *Metrics) RecordSummation(algo string, n uint64, d time.Duration) {
	summationDuration.WithLabelValues(algo).Observe(d.Seconds())
	summationTerms.Observe(float64(n))
}

// WritePrometheus serves the Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
