package odds

import "github.com/yourusername/prop-edge/internal/models"

// KellyFraction returns the full-Kelly share of bankroll for a bet at the
// given price won with probability winProb. Bets without an edge size to 0.
func KellyFraction(american int, winProb models.Value) models.Value {
	p, ok := winProb.Get()
	dec, priced := DecimalOdds(american).Get()
	if !ok || !priced {
		return models.Unknown()
	}
	b := dec - 1.0
	kelly := (b*p - (1.0 - p)) / b
	if kelly <= 0 {
		return models.Known(0)
	}
	return models.Known(kelly)
}
