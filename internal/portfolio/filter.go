package portfolio

import (
	"strings"

	"github.com/yourusername/prop-edge/internal/models"
)

// Passes reports whether a row clears every threshold. Unknown values fail.
func (c Constraints) Passes(row models.EvaluatedProp) bool {
	return row.ModelProb.AtLeast(c.MinModelProb) &&
		row.Edge.AtLeast(c.MinEdge) &&
		row.EVPerUnit.AtLeast(c.MinEV) &&
		row.Confidence >= c.MinConfidence &&
		row.MinutesSignal().AtLeast(c.MinMinutes)
}

type dedupeKey struct {
	player string
	market models.Market
	side   models.Side
}

// keyOf normalises market aliases and side casing so "threes_made"/"OVER"
// group with "threes"/"over".
func keyOf(row models.EvaluatedProp) dedupeKey {
	market, ok := models.ParseMarket(string(row.Market))
	if !ok {
		market = models.Market(strings.ToLower(strings.TrimSpace(string(row.Market))))
	}
	side, ok := models.ParseSide(string(row.Side))
	if !ok {
		side = models.Side(strings.ToLower(strings.TrimSpace(string(row.Side))))
	}
	return dedupeKey{player: row.PlayerKey(), market: market, side: side}
}

// Filter keeps the rows that clear the thresholds, then collapses rows
// sharing (player, market, side) into the one with the highest EV. Ties keep
// the earliest row. Groups appear in the order of their first passing row.
// The second result is the number of duplicates dropped.
func Filter(rows []models.EvaluatedProp, c Constraints) ([]models.EvaluatedProp, int) {
	best := make(map[dedupeKey]int)
	out := make([]models.EvaluatedProp, 0, len(rows))
	dropped := 0

	for _, row := range rows {
		if !c.Passes(row) {
			continue
		}
		k := keyOf(row)
		idx, seen := best[k]
		if !seen {
			best[k] = len(out)
			out = append(out, row)
			continue
		}
		dropped++
		if row.EVPerUnit.Or(0) > out[idx].EVPerUnit.Or(0) {
			out[idx] = row
		}
	}
	return out, dropped
}
