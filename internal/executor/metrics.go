package executor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	executedOperationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "executor",
		Name:      "executed_operation_counter",
		Help:      "the number of executed operations",
	}, []string{"operation", "status"})

	executeOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "executor",
		Name:      "execute_operation_duration_second",
		Help:      "the duration of executing and committing one operation",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"operation"})

	publishedEventCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "executor",
		Name:      "published_event_counter",
		Help:      "the number of events published after commit",
	}, []string{"event"})

	currentEpochGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "executor",
		Name:      "current_epoch",
		Help:      "the current epoch of the ledger",
	})
)

func init() {
	prometheus.MustRegister(executedOperationCounter)
	prometheus.MustRegister(executeOperationDuration)
	prometheus.MustRegister(publishedEventCounter)
	prometheus.MustRegister(currentEpochGauge)
}
