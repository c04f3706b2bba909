package paybox

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paybox_transactions_total",
			Help: "Total number of Paybox Direct calls",
		},
		[]string{"operation", "result"},
	)

	transactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paybox_transaction_duration_seconds",
			Help:    "Duration of Paybox Direct calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	transactionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paybox_transactions_in_flight",
			Help: "Number of Paybox Direct calls currently being processed",
		},
	)
)

// Metric result labels. A decline is a completed call, not an error.
const (
	resultApproved = "approved"
	resultDeclined = "declined"
	resultError    = "error"
)

// observeTransaction records one completed call.
func observeTransaction(operation string, start time.Time, resp *responseOutcome) {
	transactionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	transactionsTotal.WithLabelValues(operation, resp.result()).Inc()
}

// responseOutcome is the minimal view metrics need of a finished call.
type responseOutcome struct {
	approved bool
	failed   bool
}

func (o *responseOutcome) result() string {
	switch {
	case o.failed:
		return resultError
	case o.approved:
		return resultApproved
	default:
		return resultDeclined
	}
}
