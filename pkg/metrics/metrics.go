package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	trainingPlanner = "training_planner"

	estimationsTotal     = "estimations_total"
	hintsTotal           = "hints_total"
	estimatedMinutes     = "estimated_minutes"
	reportsRenderedTotal = "reports_rendered_total"

	// Labels
	resultLabel   = "result"
	hardwareLabel = "hardware"
	severityLabel = "severity"
	formatLabel   = "format"

	ResultSuccess = "success"
	// ResultRejected counts requests refused by validation (missing assets, unknown hardware).
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

/**
* Metrics definition
**/
var estimationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: trainingPlanner,
		Name:      estimationsTotal,
		Help:      "number of estimations partitioned by result and hardware",
	},
	[]string{resultLabel, hardwareLabel},
)

var hintsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: trainingPlanner,
		Name:      hintsTotal,
		Help:      "number of advisory hints emitted partitioned by severity",
	},
	[]string{severityLabel},
)

var estimatedMinutesMetric = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Subsystem: trainingPlanner,
		Name:      estimatedMinutes,
		Help:      "projected training time in minutes",
		Buckets:   []float64{10, 60, 300, 1440, 10080},
	},
	[]string{hardwareLabel},
)

var reportsRenderedTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: trainingPlanner,
		Name:      reportsRenderedTotal,
		Help:      "number of rendered reports partitioned by format",
	},
	[]string{formatLabel},
)

func IncreaseEstimationsTotalMetric(result, hardware string) {
	estimationsTotalMetric.With(prometheus.Labels{
		resultLabel:   result,
		hardwareLabel: hardware,
	}).Inc()
}

func IncreaseHintsTotalMetric(severity string, count int) {
	hintsTotalMetric.With(prometheus.Labels{severityLabel: severity}).Add(float64(count))
}

func ObserveEstimatedMinutes(hardware string, minutes float64) {
	estimatedMinutesMetric.With(prometheus.Labels{hardwareLabel: hardware}).Observe(minutes)
}

func IncreaseReportsRenderedMetric(format string) {
	reportsRenderedTotalMetric.With(prometheus.Labels{formatLabel: format}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimationsTotalMetric)
	prometheus.MustRegister(hintsTotalMetric)
	prometheus.MustRegister(estimatedMinutesMetric)
	prometheus.MustRegister(reportsRenderedTotalMetric)
}
