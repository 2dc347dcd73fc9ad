// Package metrics defines portfolio-selection metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Portfolio counter vectors
var (
	PortfolioRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "portfolio_runs_total",
		Help:      "Total number of portfolio builds by status",
	}, []string{"status"})
	PortfolioPicksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prop_edge",
		Name:      "portfolio_picks_total",
		Help:      "Total number of selected picks by side",
	}, []string{"side"})
)

// Portfolio gauges
var (
	PortfolioAverageEV = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "portfolio_avg_ev",
		Help:      "Mean expected value per unit of the latest card",
	})
	PortfolioAverageConfidence = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "prop_edge",
		Name:      "portfolio_avg_confidence",
		Help:      "Mean confidence of the latest card",
	})
)

// RecordPortfolioRun records a portfolio build.
// status should be one of: "success", "invalid_config"
func RecordPortfolioRun(status string) {
	PortfolioRunsTotal.WithLabelValues(status).Inc()
}

// RecordPortfolio records the composition of a selected card.
func RecordPortfolio(overs, unders int, avgEV, avgConfidence float64) {
	PortfolioPicksTotal.WithLabelValues("over").Add(float64(overs))
	PortfolioPicksTotal.WithLabelValues("under").Add(float64(unders))
	PortfolioAverageEV.Set(avgEV)
	PortfolioAverageConfidence.Set(avgConfidence)
}
