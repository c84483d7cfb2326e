package api

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts JSON-RPC calls by outcome.
type Metrics struct {
	Calls  *prometheus.CounterVec
	Errors *prometheus.CounterVec
}

// NewMetrics creates the RPC counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buzzblog_rpc_calls_total",
				Help: "Total number of JSON-RPC calls handled",
			},
			[]string{"method"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "buzzblog_rpc_errors_total",
				Help: "Total number of JSON-RPC calls that returned an error",
			},
			[]string{"method", "entity", "kind"},
		),
	}

	reg.MustRegister(m.Calls)
	reg.MustRegister(m.Errors)

	return m
}
