package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the transaction-processor counters exposed on /metrics.
type Metrics struct {
	transactionCount    *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	holdingConflicts    prometheus.Counter
	reconciledCount     prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		transactionCount: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Processed investment transactions by type and final status",
			},
			[]string{"type", "status"},
		),
		transactionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "transaction_duration_seconds",
				Help:      "Duration of transaction processing",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"type"},
		),
		holdingConflicts: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "holding_version_conflicts_total",
				Help:      "Optimistic-lock conflicts observed while mutating holdings",
			},
		),
		reconciledCount: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciled_stale_transactions_total",
				Help:      "Pending transactions failed by the reconciliation sweep",
			},
		),
	}
}

func (m *Metrics) ObserveTransaction(txType, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.transactionCount.WithLabelValues(txType, status).Inc()
	m.transactionDuration.WithLabelValues(txType).Observe(duration.Seconds())
}

func (m *Metrics) IncHoldingConflict() {
	if m == nil {
		return
	}
	m.holdingConflicts.Inc()
}

func (m *Metrics) AddReconciled(n int64) {
	if m == nil {
		return
	}
	m.reconciledCount.Add(float64(n))
}
