package llm

import "github.com/prometheus/client_golang/prometheus"

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipebot",
			Subsystem: "llm",
			Name:      "generations_total",
			Help:      "Total number of assistant generations by outcome",
		},
		[]string{"outcome"},
	)

	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recipebot",
			Subsystem: "llm",
			Name:      "generation_duration_seconds",
			Help:      "Duration of assistant generations in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	sessionLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recipebot",
			Subsystem: "llm",
			Name:      "session_loads_total",
			Help:      "Total number of model sessions started",
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationDuration, sessionLoadsTotal)
}
