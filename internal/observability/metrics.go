// Package observability holds the Prometheus collectors shared by the site
// and the API.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio"

// Metrics owns a private registry so each process (and each test) gets its
// own collectors.
type Metrics struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec
	submissions      *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors, including the Go runtime
// and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests served."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		externalRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "api_requests_total", Help: "Outbound portfolio API requests."},
			[]string{"endpoint", "status"},
		),
		externalLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "api_request_duration_seconds",
				Help:    "Outbound portfolio API request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "review_submissions_total", Help: "Review submissions by result."},
			[]string{"result"}, // result: accepted|invalid|unauthorized|limited|error
		),
	}

	m.registry.MustRegister(
		m.httpRequests, m.httpLatency,
		m.externalRequests, m.externalLatency,
		m.submissions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request. A nil receiver is a no-op.
func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one outbound API call. status is 0 when the request
// never produced a response. A nil receiver is a no-op.
func (m *Metrics) ObserveExternal(endpoint string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	m.externalRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.externalLatency.WithLabelValues(endpoint).Observe(dur.Seconds())
}

// ObserveSubmission counts one review submission by result. A nil receiver
// is a no-op.
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(result).Inc()
}
