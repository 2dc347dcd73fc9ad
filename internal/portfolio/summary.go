package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/odds"
)

// Summary describes a selected card
type Summary struct {
	RunID          string          `json:"run_id"`
	TotalPicks     int             `json:"total_picks"`
	Overs          int             `json:"overs"`
	Unders         int             `json:"unders"`
	AvgEV          float64         `json:"avg_ev"`
	AvgConfidence  float64         `json:"avg_confidence"`
	TotalStake     decimal.Decimal `json:"total_stake"`
	ExpectedProfit decimal.Decimal `json:"expected_profit"`
}

// Summarize computes card totals. Averages of an empty card are 0.
func Summarize(runID string, picks []models.EvaluatedProp, unitStake decimal.Decimal) Summary {
	s := Summary{
		RunID:          runID,
		TotalPicks:     len(picks),
		TotalStake:     decimal.Zero,
		ExpectedProfit: decimal.Zero,
	}
	if len(picks) == 0 {
		return s
	}

	var evSum, confSum float64
	for _, pick := range picks {
		if pick.IsOver() {
			s.Overs++
		} else if pick.IsUnder() {
			s.Unders++
		}
		evSum += pick.EVPerUnit.Or(0)
		confSum += pick.Confidence

		s.TotalStake = s.TotalStake.Add(unitStake)
		s.ExpectedProfit = s.ExpectedProfit.Add(expectedProfit(pick, unitStake))
	}
	n := float64(len(picks))
	s.AvgEV = evSum / n
	s.AvgConfidence = confSum / n
	s.ExpectedProfit = s.ExpectedProfit.Round(2)
	return s
}

// Stake is the staking line for one pick
type Stake struct {
	PlayerID string          `json:"player_id"`
	Market   models.Market   `json:"market"`
	Side     models.Side     `json:"side"`
	Odds     int             `json:"odds"`
	Stake    decimal.Decimal `json:"stake"`
	ToWin    decimal.Decimal `json:"to_win"`
	// Kelly is the full-Kelly bankroll share, reported for reference only.
	Kelly models.Value `json:"kelly"`
}

// StakePlan stakes unitStake on every pick
func StakePlan(picks []models.EvaluatedProp, unitStake decimal.Decimal) []Stake {
	plan := make([]Stake, len(picks))
	for i, pick := range picks {
		plan[i] = Stake{
			PlayerID: pick.PlayerKey(),
			Market:   pick.Market,
			Side:     pick.Side,
			Odds:     pick.Odds,
			Stake:    unitStake,
			ToWin:    odds.Payout(unitStake, pick.Odds).Round(2),
			Kelly:    odds.KellyFraction(pick.Odds, pick.ModelProb),
		}
	}
	return plan
}

// expectedProfit is p*payout - (1-p)*stake at the pick's price
func expectedProfit(pick models.EvaluatedProp, stake decimal.Decimal) decimal.Decimal {
	p, ok := pick.ModelProb.Get()
	if !ok {
		return decimal.Zero
	}
	win := decimal.NewFromFloat(p)
	lose := decimal.NewFromInt(1).Sub(win)
	return win.Mul(odds.Payout(stake, pick.Odds)).Sub(lose.Mul(stake))
}
