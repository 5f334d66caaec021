package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	acquisitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plainspeak",
			Subsystem: "engine",
			Name:      "acquisitions_total",
			Help:      "Engine acquisition attempts by outcome",
		},
		[]string{"outcome"},
	)

	stallHintsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "plainspeak",
			Subsystem: "engine",
			Name:      "stall_hints_total",
			Help:      "Stall advisories emitted while loading",
		},
	)
)

func init() {
	prometheus.MustRegister(acquisitionsTotal, stallHintsTotal)
}
