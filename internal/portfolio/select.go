package portfolio

import (
	"sort"

	"github.com/yourusername/prop-edge/internal/models"
)

// rank orders rows by confidence then EV, both descending. Equal rows keep
// their relative order.
func rank(rows []models.EvaluatedProp) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Confidence != rows[j].Confidence {
			return rows[i].Confidence > rows[j].Confidence
		}
		return rows[i].EVPerUnit.Or(0) > rows[j].EVPerUnit.Or(0)
	})
}

// take returns the leading rows of a ranked side pool: up to limit, topped
// up to floor when the cap leaves fewer, never more than the pool holds.
func take(pool []models.EvaluatedProp, limit, floor int) []models.EvaluatedProp {
	n := min(limit, len(pool))
	if n < floor {
		n = min(floor, len(pool))
	}
	return pool[:n]
}

// Select ranks each side, applies the side caps and fallback floors, and
// returns the combined card ranked by confidence then EV.
func Select(rows []models.EvaluatedProp, c Constraints) []models.EvaluatedProp {
	var overs, unders []models.EvaluatedProp
	for _, row := range rows {
		switch {
		case row.IsOver():
			overs = append(overs, row)
		case row.IsUnder():
			unders = append(unders, row)
		}
	}
	rank(overs)
	rank(unders)

	card := make([]models.EvaluatedProp, 0, len(rows))
	card = append(card, take(overs, c.MaxOvers, c.MinOversFallback)...)
	card = append(card, take(unders, c.MaxUnders, c.MinUndersFallback)...)
	rank(card)
	return card
}
