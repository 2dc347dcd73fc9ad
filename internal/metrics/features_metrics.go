// Package metrics defines feature-stage metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Feature stage metrics
var (
	FeatureCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "feature_cache_hit_ratio",
		Help:      "Hit ratio of the rolling-window baseline cache",
	})
	FeaturePropsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "feature_props_skipped_total",
		Help:      "Total number of raw props dropped by the feature stage by reason",
	}, []string{"reason"})
)

// RecordFeatureCacheRatio records the baseline cache hit ratio.
func RecordFeatureCacheRatio(ratio float64) {
	FeatureCacheHitRatio.Set(ratio)
}

// RecordFeaturePropSkipped records a raw prop dropped before evaluation.
func RecordFeaturePropSkipped(reason string) {
	FeaturePropsSkippedTotal.WithLabelValues(reason).Inc()
}
