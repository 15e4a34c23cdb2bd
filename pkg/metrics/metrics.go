package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem = "patchcord_planner"

	calculationsTotal      = "calculations_total"
	calculationErrorsTotal = "calculation_errors_total"
	recommendedCordsTotal  = "recommended_cords_total"

	routingLabel = "routing"
	reasonLabel  = "reason"
	lengthLabel  = "length_m"

	RoutingSameRack  = "same_rack"
	RoutingCrossRack = "cross_rack"
)

var calculationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      calculationsTotal,
		Help:      "number of computed links partitioned by routing",
	},
	[]string{routingLabel},
)

var calculationErrorsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      calculationErrorsTotal,
		Help:      "number of rejected calculations partitioned by reason",
	},
	[]string{reasonLabel},
)

var recommendedCordsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      recommendedCordsTotal,
		Help:      "number of recommended patch cords partitioned by catalog length",
	},
	[]string{lengthLabel},
)

// ObserveCalculation records one successful link computation.
func ObserveCalculation(sameRack bool, recommended float64) {
	routing := RoutingCrossRack
	if sameRack {
		routing = RoutingSameRack
	}
	calculationsTotalMetric.With(prometheus.Labels{routingLabel: routing}).Inc()
	recommendedCordsTotalMetric.With(prometheus.Labels{
		lengthLabel: strconv.FormatFloat(recommended, 'f', 1, 64),
	}).Inc()
}

func IncreaseCalculationErrors(reason string) {
	calculationErrorsTotalMetric.With(prometheus.Labels{reasonLabel: reason}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(calculationsTotalMetric)
	prometheus.MustRegister(calculationErrorsTotalMetric)
	prometheus.MustRegister(recommendedCordsTotalMetric)
}
