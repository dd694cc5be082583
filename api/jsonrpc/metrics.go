package jsonrpc

import "github.com/prometheus/client_golang/prometheus"

var limitedRequestCounter = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "unbonding_ledger",
	Subsystem: "jsonrpc",
	Name:      "limited_request_counter",
	Help:      "the number of requests rejected by the rate limiter",
})

func init() {
	prometheus.MustRegister(limitedRequestCounter)
}
