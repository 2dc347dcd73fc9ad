// Package metrics provides the Prometheus registry and metrics for prop
// evaluation and portfolio selection.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Evaluation counter vectors
var (
	PropsEvaluatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "props_evaluated_total",
		Help:      "Total number of props evaluated by market",
	}, []string{"market"})
	PropsUnknownTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "props_unknown_total",
		Help:      "Total number of props left without a model probability by market",
	}, []string{"market"})
	DistributionFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "distribution_fallbacks_total",
		Help:      "Total number of negative binomial fits that fell back to Poisson",
	}, []string{"market"})
)

// Evaluation histograms
var (
	EvaluationBatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "evaluation_batch_duration_seconds",
		Help:      "Duration of prop batch evaluation in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
	ModelProbability = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "prop_edge",
		Name:      "model_probability",
		Help:      "Model probabilities of evaluated props by market",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	}, []string{"market"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PropsEvaluatedTotal)
		registry.MustRegister(PropsUnknownTotal)
		registry.MustRegister(DistributionFallbacksTotal)
		registry.MustRegister(EvaluationBatchDuration)
		registry.MustRegister(ModelProbability)

		registry.MustRegister(PortfolioRunsTotal)
		registry.MustRegister(PortfolioPicksTotal)
		registry.MustRegister(PortfolioAverageEV)
		registry.MustRegister(PortfolioAverageConfidence)

		registry.MustRegister(FeatureCacheHitRatio)
		registry.MustRegister(FeaturePropsSkippedTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPropEvaluated records one evaluated prop. modelProb is ignored when
// known is false.
func RecordPropEvaluated(market string, modelProb float64, known bool) {
	PropsEvaluatedTotal.WithLabelValues(market).Inc()
	if !known {
		PropsUnknownTotal.WithLabelValues(market).Inc()
		return
	}
	ModelProbability.WithLabelValues(market).Observe(modelProb)
}

// RecordDistributionFallback records a negative binomial to Poisson fallback.
func RecordDistributionFallback(market string) {
	DistributionFallbacksTotal.WithLabelValues(market).Inc()
}

// RecordEvaluationBatch records the duration of a batch.
func RecordEvaluationBatch(durationSeconds float64) {
	EvaluationBatchDuration.Observe(durationSeconds)
}
