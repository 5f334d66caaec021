package capture

import "github.com/prometheus/client_golang/prometheus"

var capSessionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "plainspeak",
		Subsystem: "capture",
		Name:      "sessions_total",
		Help:      "Capture session outcomes",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(capSessionsTotal)
}
