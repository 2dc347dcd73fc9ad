package odds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/prop-edge/internal/models"
)

func TestKellyFraction(t *testing.T) {
	tests := []struct {
		name     string
		american int
		prob     models.Value
		want     float64
	}{
		{"even money edge", 100, models.Known(0.6), 0.2},
		{"plus price", 150, models.Known(0.5), (1.5*0.5 - 0.5) / 1.5},
		{"minus price", -200, models.Known(0.75), (0.5*0.75 - 0.25) / 0.5},
		{"no edge sizes to zero", -110, models.Known(0.5), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KellyFraction(tt.american, tt.prob)
			assert.InDelta(t, tt.want, got.Or(-1), 1e-12)
		})
	}

	assert.False(t, KellyFraction(0, models.Known(0.6)).IsKnown())
	assert.False(t, KellyFraction(120, models.Unknown()).IsKnown())
}
