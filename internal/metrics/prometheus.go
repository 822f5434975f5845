// Package metrics provides a Prometheus-backed implementation of the
// wallet service's MetricsCollector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector records wallet activity as Prometheus metrics. It satisfies
// wallet.MetricsCollector.
type Collector struct {
	transactions *prometheus.CounterVec
	volume       *prometheus.CounterVec
	errors       *prometheus.CounterVec
}

// NewCollector builds a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servio",
			Subsystem: "wallet",
			Name:      "transactions_total",
			Help:      "Ledger entries recorded, by transaction type.",
		}, []string{"type"}),
		volume: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servio",
			Subsystem: "wallet",
			Name:      "transaction_volume_total",
			Help:      "Absolute transaction volume, by transaction type.",
		}, []string{"type"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "servio",
			Subsystem: "wallet",
			Name:      "errors_total",
			Help:      "Failed wallet operations, by operation and error kind.",
		}, []string{"operation", "kind"}),
	}
	reg.MustRegister(c.transactions, c.volume, c.errors)
	return c
}

func (c *Collector) RecordTransaction(txType string, amount float64) {
	c.transactions.WithLabelValues(txType).Inc()
	if amount < 0 {
		amount = -amount
	}
	c.volume.WithLabelValues(txType).Add(amount)
}

func (c *Collector) RecordError(operation, errType string) {
	c.errors.WithLabelValues(operation, errType).Inc()
}
