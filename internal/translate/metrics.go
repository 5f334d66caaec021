package translate

import "github.com/prometheus/client_golang/prometheus"

var translationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "plainspeak",
		Subsystem: "translate",
		Name:      "requests_total",
		Help:      "Translation requests by mode and outcome",
	},
	[]string{"mode", "outcome"},
)

func init() {
	prometheus.MustRegister(translationsTotal)
}
