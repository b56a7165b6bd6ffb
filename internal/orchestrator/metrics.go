package orchestrator

import "github.com/prometheus/client_golang/prometheus"

var (
	proposalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_proposals_total",
			Help: "Total number of proposal generations by outcome.",
		},
		[]string{"outcome"},
	)

	dispatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_engine_dispatch_duration_seconds",
			Help:    "Duration of calculation calls to the engine.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(proposalsTotal)
	prometheus.MustRegister(dispatchDuration)
}
