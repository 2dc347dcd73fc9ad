package evaluation

import (
	"math"

	"github.com/yourusername/prop-edge/internal/models"
)

// FullMinutes is the playing time at which the minutes component saturates
const FullMinutes = 36.0

// Confidence blends model probability, edge magnitude and the minutes
// signal into one score. Unknown components contribute 0 and the result is
// clamped to [0, 1], since |edge| is not bounded by construction.
func Confidence(modelProb, edge, minutes models.Value) float64 {
	probComponent := modelProb.Or(0)
	edgeComponent := edge.Abs().Or(0)
	minutesComponent := 0.0
	if m, ok := minutes.Get(); ok {
		minutesComponent = math.Min(m/FullMinutes, 1.0)
	}

	score := (probComponent + edgeComponent + minutesComponent) / 3.0
	return math.Max(0, math.Min(1, score))
}
