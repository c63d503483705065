package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for chain RPC traffic.
type Metrics struct {
	RequestLatency *prometheus.HistogramVec
	BatchSize      prometheus.Histogram
	Errors         *prometheus.CounterVec
	BreakerOpen    prometheus.Gauge
}

// NewMetrics registers the RPC metrics with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "govassets_rpc_request_duration_seconds",
			Help:    "Duration of JSON-RPC HTTP requests by method",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "govassets_rpc_batch_size",
			Help:    "Number of calls carried by one JSON-RPC HTTP request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		Errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govassets_rpc_errors_total",
			Help: "JSON-RPC failures by category",
		}, []string{"category"}),
		BreakerOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "govassets_rpc_breaker_open",
			Help: "1 while the RPC endpoint circuit breaker is open",
		}),
	}
}

func (m *Metrics) ObserveRequest(method string, calls int, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(method).Observe(d.Seconds())
		m.BatchSize.Observe(float64(calls))
	}
}

func (m *Metrics) IncrementError(category string) {
	if m != nil {
		m.Errors.WithLabelValues(category).Inc()
	}
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}
