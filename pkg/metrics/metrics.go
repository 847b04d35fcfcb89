package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	fracturePlanner = "fracture_planner"

	// Computation metrics
	computationsTotal   = "computations_total"
	computationDuration = "computation_duration_seconds"
	warningsTotal       = "warnings_total"

	// Labels
	modelLabel   = "model"
	outcomeLabel = "outcome"
	regimeLabel  = "regime"
)

// Computation outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeInvalid    = "invalid_input"
	OutcomeDegenerate = "degenerate"
	OutcomeError      = "error"
)

var computationsTotalLabels = []string{
	modelLabel,
	outcomeLabel,
}

var computationDurationLabels = []string{
	modelLabel,
}

var warningsTotalLabels = []string{
	modelLabel,
	regimeLabel,
}

/**
* Metrics definition
**/
var computationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: fracturePlanner,
		Name:      computationsTotal,
		Help:      "number of fracture geometry computations partitioned by model and outcome",
	},
	computationsTotalLabels,
)

var computationDurationMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: fracturePlanner,
		Name:      computationDuration,
		Help:      "time spent computing a result including its sensitivity table",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	},
	computationDurationLabels,
)

var warningsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: fracturePlanner,
		Name:      warningsTotal,
		Help:      "number of warnings attached to successful results",
	},
	warningsTotalLabels,
)

func IncreaseComputationsTotalMetric(model, outcome string) {
	labels := prometheus.Labels{
		modelLabel:   model,
		outcomeLabel: outcome,
	}
	computationsTotalMetric.With(labels).Inc()
}

func ObserveComputationDuration(model string, d time.Duration) {
	computationDurationMetric.With(prometheus.Labels{modelLabel: model}).Observe(d.Seconds())
}

func IncreaseWarningsTotalMetric(model, regime string, count int) {
	if count <= 0 {
		return
	}
	labels := prometheus.Labels{
		modelLabel:  model,
		regimeLabel: regime,
	}
	warningsTotalMetric.With(labels).Add(float64(count))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(computationsTotalMetric)
	prometheus.MustRegister(computationDurationMetric)
	prometheus.MustRegister(warningsTotalMetric)
}
