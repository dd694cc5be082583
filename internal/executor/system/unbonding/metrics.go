package unbonding

import "github.com/prometheus/client_golang/prometheus"

var (
	operationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "unbonding",
		Name:      "operation_counter",
		Help:      "The total number of lock, unlock and claim operations by result",
	}, []string{"operation", "result"})

	unbondingQueueLength = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "unbonding",
		Name:      "queue_length",
		Help:      "The length of an unbonding queue after an unlock",
		Buckets:   prometheus.LinearBuckets(1, 2, 10),
	})

	claimedEntriesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "unbonding",
		Name:      "claimed_entries_counter",
		Help:      "The total number of unbonding entries released by claim",
	})
)

func init() {
	prometheus.MustRegister(operationCounter)
	prometheus.MustRegister(unbondingQueueLength)
	prometheus.MustRegister(claimedEntriesCounter)
}

func recordOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	operationCounter.WithLabelValues(operation, result).Inc()
}
