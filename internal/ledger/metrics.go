package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	commitDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "ledger",
		Name:      "commit_duration_second",
		Help:      "The total latency of state commit",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 10),
	})

	versionMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "ledger",
		Name:      "version",
		Help:      "the latest committed state version",
	})

	dirtyKeysPerCommit = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "ledger",
		Name:      "dirty_keys_per_commit",
		Help:      "The number of keys flushed by the last commit",
	})

	stateReadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "unbonding_ledger",
		Subsystem: "ledger",
		Name:      "state_read_duration",
		Help:      "The total latency of read a state from db",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(commitDuration)
	prometheus.MustRegister(versionMetric)
	prometheus.MustRegister(dirtyKeysPerCommit)
	prometheus.MustRegister(stateReadDuration)
}
