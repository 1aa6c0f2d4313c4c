package predictor

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carprice",
			Subsystem: "predictor",
			Name:      "predictions_total",
			Help:      "Predictions by outcome (ok, unavailable, invalid)",
		},
		[]string{"outcome"},
	)

	unknownCategoryTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carprice",
			Subsystem: "predictor",
			Name:      "unknown_category_total",
			Help:      "Predictions whose categorical value was not seen in training and encoded as zeros",
		},
		[]string{"field"},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, unknownCategoryTotal)
}
