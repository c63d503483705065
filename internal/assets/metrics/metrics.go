package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for asset discovery.
type Metrics struct {
	// Discovery latency by operation
	DiscoveryLatency *prometheus.HistogramVec

	// Accounts produced by discovery by asset tag
	AccountsDiscovered *prometheus.CounterVec

	// Failed loads by operation
	LoadFailures *prometheus.CounterVec

	// Price warm-up failures
	PriceFailures prometheus.Counter
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return &Metrics{
		DiscoveryLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "govassets_discovery_duration_seconds",
			Help:    "Duration of governed account discovery by operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}), // operation: "load", "refetch"

		AccountsDiscovered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govassets_accounts_discovered_total",
			Help: "Governed accounts discovered by asset type",
		}, []string{"type"}),

		LoadFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govassets_load_failures_total",
			Help: "Discovery runs that failed by operation",
		}, []string{"operation"}),

		PriceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "govassets_price_failures_total",
			Help: "Token price warm-ups that failed",
		}),
	}
}

func (m *Metrics) ObserveDiscovery(operation string, d time.Duration) {
	if m != nil {
		m.DiscoveryLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) AddDiscovered(assetType string, n int) {
	if m != nil && n > 0 {
		m.AccountsDiscovered.WithLabelValues(assetType).Add(float64(n))
	}
}

func (m *Metrics) IncrementLoadFailure(operation string) {
	if m != nil {
		m.LoadFailures.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) IncrementPriceFailure() {
	if m != nil {
		m.PriceFailures.Inc()
	}
}
