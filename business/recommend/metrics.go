package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

const noRecommendationLabel = "none"

var (
	PlatformRecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_recommendations_total",
			Help: "Count of recommendations by chosen platform (\"none\" when no platform had data).",
		},
		[]string{"platform"},
	)

	DatasetReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_reloads_total",
			Help: "Count of dataset reloads by outcome.",
		},
		[]string{"status"},
	)

	LoadedLearners = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dataset_loaded_learners",
		Help: "Number of learners in the published signal datasets.",
	})
)

func init() {
	prometheus.MustRegister(PlatformRecommendationsTotal, DatasetReloadsTotal, LoadedLearners)
}
