// Package odds converts American moneyline prices into probabilities,
// decimal prices and expected values.
package odds

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-edge/internal/models"
)

// ImpliedProbability converts American odds to the implied probability with
// no vig removed. Odds of 0 are not a price and yield unknown.
func ImpliedProbability(american int) models.Value {
	if american == 0 {
		return models.Unknown()
	}
	o := float64(american)
	if o > 0 {
		return models.Known(100.0 / (o + 100.0))
	}
	return models.Known(-o / (-o + 100.0))
}

// DecimalOdds converts American odds to decimal odds
func DecimalOdds(american int) models.Value {
	if american == 0 {
		return models.Unknown()
	}
	o := float64(american)
	if o > 0 {
		return models.Known(1.0 + o/100.0)
	}
	return models.Known(1.0 + 100.0/-o)
}

// ExpectedValue returns the expected profit of staking stake at the given
// price when the bet wins with probability winProb. It is computed as
// stake*(p/q - 1) with q the implied probability, so pricing a bet at its own
// implied probability gives exactly 0.
func ExpectedValue(american int, winProb models.Value, stake float64) models.Value {
	p, ok := winProb.Get()
	q, priced := ImpliedProbability(american).Get()
	if !ok || !priced {
		return models.Unknown()
	}
	return models.Known(stake * (p/q - 1.0))
}

// ExpectedValuePerUnit is ExpectedValue for a one unit stake
func ExpectedValuePerUnit(american int, winProb models.Value) models.Value {
	return ExpectedValue(american, winProb, 1.0)
}

// Payout returns the profit returned on a winning stake. Unknown prices pay
// nothing.
func Payout(stake decimal.Decimal, american int) decimal.Decimal {
	switch {
	case american > 0:
		return stake.Mul(decimal.NewFromInt(int64(american))).Div(decimal.NewFromInt(100))
	case american < 0:
		return stake.Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(-american)))
	default:
		return decimal.Zero
	}
}
