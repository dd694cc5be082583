package unbonding

import "github.com/prometheus/client_golang/prometheus"

var (
	queryTotalCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "jsonrpc",
		Name:      "query_total_counter",
		Help:      "the total number of read-only requests",
	})

	queryFailedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "jsonrpc",
		Name:      "query_failed_counter",
		Help:      "the number of failed read-only requests",
	})

	invokeReadOnlyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "jsonrpc",
		Name:      "invoke_read_only_duration_second",
		Help:      "the duration of read-only requests",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	sendTotalCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "jsonrpc",
		Name:      "send_total_counter",
		Help:      "the total number of state changing requests",
	}, []string{"method"})

	sendFailedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "jsonrpc",
		Name:      "send_failed_counter",
		Help:      "the number of failed state changing requests",
	}, []string{"method"})
)

func init() {
	prometheus.MustRegister(queryTotalCounter)
	prometheus.MustRegister(queryFailedCounter)
	prometheus.MustRegister(invokeReadOnlyDuration)
	prometheus.MustRegister(sendTotalCounter)
	prometheus.MustRegister(sendFailedCounter)
}
