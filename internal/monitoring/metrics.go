// Package monitoring exposes Prometheus metrics for the backend.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Kernel session metrics
	KernelsActive  prometheus.Gauge
	KernelsStarted prometheus.Counter
	KernelsKilled  prometheus.Counter

	// Notebook metrics
	NotebooksLoaded prometheus.Counter
	NotebooksSaved  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jute_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jute_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		KernelsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "jute_kernels_active",
			Help: "Number of kernel sessions currently registered",
		}),
		KernelsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jute_kernels_started_total",
			Help: "Total number of kernel sessions started",
		}),
		KernelsKilled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jute_kernels_killed_total",
			Help: "Total number of kernel sessions killed",
		}),

		NotebooksLoaded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jute_notebooks_loaded_total",
			Help: "Total number of notebook files loaded",
		}),
		NotebooksSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "jute_notebooks_saved_total",
			Help: "Total number of notebook files saved",
		}),

		Uptime: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "jute_uptime_seconds",
			Help: "Process uptime in seconds",
		}),
	}
}

// RecordHTTPRequest records metrics for one completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}
