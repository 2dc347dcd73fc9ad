// Package simulation turns a player's context-adjusted baseline into tail
// probabilities against a prop line by Monte Carlo sampling.
package simulation

import (
	"github.com/yourusername/prop-edge/internal/models"
)

// AdjustMean scales a rolling mean by the pace and defense multipliers
func AdjustMean(baseMean models.Value, paceFactor, defenseFactor float64) models.Value {
	return baseMean.Scale(paceFactor * defenseFactor)
}

// AdjustVariance scales the squared rolling std by the product of the context
// factors. This is a deliberate simplification: the variance is assumed to
// scale like the mean rather than with the square of the multiplier.
func AdjustVariance(baseStd models.Value, paceFactor, defenseFactor float64) models.Value {
	return baseStd.Mul(baseStd).Scale(paceFactor * defenseFactor)
}

// Adjust applies the context multipliers to a baseline
func Adjust(b models.ContextualBaseline) models.AdjustedMoments {
	return models.AdjustedMoments{
		Mean: AdjustMean(b.BaseMean, b.PaceFactor, b.DefenseFactor),
		Var:  AdjustVariance(b.BaseStd, b.PaceFactor, b.DefenseFactor),
	}
}
