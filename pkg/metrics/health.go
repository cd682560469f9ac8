package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProbeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelgate",
			Subsystem: "health",
			Name:      "probe_duration_seconds",
			Help:      "Backend probe latency in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model", "mode", "outcome"},
	)

	ProbesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelgate",
			Subsystem: "health",
			Name:      "probes_total",
			Help:      "Total number of backend probes by outcome",
		},
		[]string{"model", "mode", "outcome"},
	)

	BackgroundCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelgate",
			Subsystem: "health",
			Name:      "background_cycles_total",
			Help:      "Total number of background health check cycles",
		},
		[]string{"status"},
	)

	AlertsDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "modelgate",
			Subsystem: "alerting",
			Name:      "alerts_dropped_total",
			Help:      "Alerts dropped because the dispatch queue was full",
		},
	)
)

func init() {
	Registry.MustRegister(ProbeDuration, ProbesTotal, BackgroundCyclesTotal, AlertsDroppedTotal)
}
