package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
)

func TestAdjustMean(t *testing.T) {
	adj := AdjustMean(models.Known(20), 1.05, 0.9)
	require.True(t, adj.IsKnown())
	assert.InDelta(t, 18.9, adj.Or(0), 1e-9)

	assert.False(t, AdjustMean(models.Unknown(), 1.05, 0.9).IsKnown())
}

func TestAdjustVarianceUsesFactorProduct(t *testing.T) {
	adj := AdjustVariance(models.Known(4), 1.1, 1.2)
	require.True(t, adj.IsKnown())
	assert.InDelta(t, 16*1.1*1.2, adj.Or(0), 1e-9)

	assert.False(t, AdjustVariance(models.Unknown(), 1.1, 1.2).IsKnown())
}

func TestAdjustBaseline(t *testing.T) {
	m := Adjust(models.ContextualBaseline{
		BaseMean:      models.Known(7),
		BaseStd:       models.Unknown(),
		PaceFactor:    1.02,
		DefenseFactor: 1.0,
	})
	assert.InDelta(t, 7.14, m.Mean.Or(0), 1e-9)
	assert.False(t, m.Var.IsKnown())
}

func TestNegBinParams(t *testing.T) {
	fit := NegBinParams(4, 8)
	require.False(t, fit.Fallback())
	assert.Equal(t, FitNegativeBinomial, fit.Kind)
	assert.InDelta(t, 0.5, fit.P, 1e-12)
	assert.InDelta(t, 4.0, fit.N, 1e-12)
}

func TestNegBinParamsFallback(t *testing.T) {
	tests := []struct {
		name     string
		mean     float64
		variance float64
	}{
		{"under-dispersed", 5, 3},
		{"equi-dispersed", 5, 5},
		{"zero mean", 0, 4},
		{"negative mean", -1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := NegBinParams(tt.mean, tt.variance)
			assert.True(t, fit.Fallback())
			assert.Equal(t, FitFallback, fit.Kind)
			assert.NotEmpty(t, fit.Reason)
			assert.Zero(t, fit.N)
			assert.Zero(t, fit.P)
		})
	}
}
