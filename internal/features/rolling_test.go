package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollingWindow(t *testing.T) {
	logs := []GameLog{
		{PTS: 30, REB: 8, AST: 5, FG3M: 3, MIN: 36},
		{PTS: 20, REB: 6, AST: 7, FG3M: 1, MIN: 30},
		{PTS: 10, REB: 4, AST: 9, FG3M: 2, MIN: 24},
		{PTS: 40, REB: 12, AST: 1, FG3M: 6, MIN: 40},
	}

	w := RollingWindow(logs, 3)

	assert.Equal(t, 3, w.Games)
	assert.InDelta(t, 20.0, w.Points.Mean.Or(0), 1e-12)
	assert.InDelta(t, 10.0, w.Points.Std.Or(0), 1e-12)
	assert.InDelta(t, 6.0, w.Rebounds.Mean.Or(0), 1e-12)
	assert.InDelta(t, 2.0, w.Rebounds.Std.Or(0), 1e-12)
	assert.InDelta(t, 7.0, w.Assists.Mean.Or(0), 1e-12)
	assert.InDelta(t, 2.0, w.Threes.Mean.Or(0), 1e-12)
	assert.InDelta(t, 30.0, w.Minutes.Mean.Or(0), 1e-12)

	rates := w.PerMinute()
	assert.InDelta(t, 20.0/30.0, rates.Points, 1e-12)
	assert.InDelta(t, 7.0/30.0, rates.Assists, 1e-12)
}

func TestRollingWindowShortHistory(t *testing.T) {
	w := RollingWindow([]GameLog{{PTS: 18, MIN: 22}}, 10)
	assert.Equal(t, 1, w.Games)
	assert.InDelta(t, 18.0, w.Points.Mean.Or(0), 1e-12)
	assert.False(t, w.Points.Std.IsKnown())

	empty := RollingWindow(nil, 10)
	assert.Zero(t, empty.Games)
	assert.False(t, empty.Points.Mean.IsKnown())
	assert.Equal(t, Rates{}, empty.PerMinute())
}
