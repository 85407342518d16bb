// Package metrics holds the process-wide request counters exposed on
// /metrics. The registry is per-instance rather than the prometheus default
// registry, so tests can run isolated instances side by side.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Webhook ingest outcomes recorded in webhook_requests_total.
const (
	ResultCreated          = "created"
	ResultDuplicate        = "duplicate"
	ResultInvalidSignature = "invalid_signature"
	ResultValidationError  = "validation_error"
)

// latencyBucketsMS are the request latency histogram bounds in milliseconds
// (+Inf is implicit).
var latencyBucketsMS = []float64{100, 500}

// Metrics is the counter registry updated by every request.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	webhookRequests *prometheus.CounterVec
	requestLatency  prometheus.Histogram
}

// New creates an isolated Metrics instance with all collectors registered.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by path and status.",
		}, []string{"path", "status"}),
		webhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Webhook ingest attempts by outcome.",
		}, []string{"result"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "request_latency_ms",
			Help:    "Request latency in milliseconds.",
			Buckets: latencyBucketsMS,
		}),
	}
	m.registry.MustRegister(m.httpRequests, m.webhookRequests, m.requestLatency)
	return m
}

// ObserveHTTP records one completed request: exactly one http_requests_total
// increment and one latency observation.
func (m *Metrics) ObserveHTTP(path string, status int, latencyMS float64) {
	m.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
	m.requestLatency.Observe(latencyMS)
}

// IncWebhook records the final outcome of one webhook ingest attempt.
func (m *Metrics) IncWebhook(result string) {
	m.webhookRequests.WithLabelValues(result).Inc()
}

// Handler returns the text exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
