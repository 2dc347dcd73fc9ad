package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordPropEvaluated(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(PropsUnknownTotal.WithLabelValues("steals"))
	RecordPropEvaluated("steals", 0, false)
	after := testutil.ToFloat64(PropsUnknownTotal.WithLabelValues("steals"))
	assert.Equal(t, before+1, after)

	assert.NotPanics(t, func() {
		RecordPropEvaluated("points", 0.61, true)
	})
}

func TestRecordDistributionFallback(t *testing.T) {
	InitRegistry()

	before := testutil.ToFloat64(DistributionFallbacksTotal.WithLabelValues("assists"))
	RecordDistributionFallback("assists")
	assert.Equal(t, before+1, testutil.ToFloat64(DistributionFallbacksTotal.WithLabelValues("assists")))
}

func TestRecordPortfolio(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name          string
		overs, unders int
		avgEV         float64
		avgConfidence float64
	}{
		{name: "full card", overs: 12, unders: 6, avgEV: 0.14, avgConfidence: 0.63},
		{name: "empty card", overs: 0, unders: 0, avgEV: 0, avgConfidence: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordPortfolio(tt.overs, tt.unders, tt.avgEV, tt.avgConfidence)
			assert.Equal(t, tt.avgEV, testutil.ToFloat64(PortfolioAverageEV))
			assert.Equal(t, tt.avgConfidence, testutil.ToFloat64(PortfolioAverageConfidence))
		})
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordPortfolioRun("success")
	RecordEvaluationBatch(0.2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "prop_edge_portfolio_runs_total"))
}

func TestRecordFeatureMetrics(t *testing.T) {
	InitRegistry()

	RecordFeatureCacheRatio(0.75)
	assert.Equal(t, 0.75, testutil.ToFloat64(FeatureCacheHitRatio))

	before := testutil.ToFloat64(FeaturePropsSkippedTotal.WithLabelValues("no_game_logs"))
	RecordFeaturePropSkipped("no_game_logs")
	assert.Equal(t, before+1, testutil.ToFloat64(FeaturePropsSkippedTotal.WithLabelValues("no_game_logs")))
}
