package features

import (
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/prop-edge/internal/models"
)

// GameLog is one game of a player's box score
type GameLog struct {
	GameDate string  `json:"game_date,omitempty"`
	PTS      float64 `json:"pts"`
	REB      float64 `json:"reb"`
	AST      float64 `json:"ast"`
	FG3M     float64 `json:"fg3m"`
	MIN      float64 `json:"min"`
}

// Window is the rolling mean and sample standard deviation of the most
// recent games
type Window struct {
	Games    int                 `json:"games"`
	Points   models.RollingStats `json:"points"`
	Rebounds models.RollingStats `json:"rebounds"`
	Assists  models.RollingStats `json:"assists"`
	Threes   models.RollingStats `json:"threes"`
	Minutes  models.RollingStats `json:"minutes"`
}

// RollingWindow summarises the first n logs, which are expected most recent
// first. The std of a single game is unknown; an empty window is all unknown.
func RollingWindow(logs []GameLog, n int) Window {
	if n < len(logs) {
		logs = logs[:n]
	}
	w := Window{Games: len(logs)}
	if len(logs) == 0 {
		return w
	}

	column := func(pick func(GameLog) float64) models.RollingStats {
		xs := make([]float64, len(logs))
		for i, g := range logs {
			xs[i] = pick(g)
		}
		rs := models.RollingStats{Mean: models.Known(stat.Mean(xs, nil))}
		if len(xs) > 1 {
			rs.Std = models.Known(stat.StdDev(xs, nil))
		}
		return rs
	}

	w.Points = column(func(g GameLog) float64 { return g.PTS })
	w.Rebounds = column(func(g GameLog) float64 { return g.REB })
	w.Assists = column(func(g GameLog) float64 { return g.AST })
	w.Threes = column(func(g GameLog) float64 { return g.FG3M })
	w.Minutes = column(func(g GameLog) float64 { return g.MIN })
	return w
}

// Rates are per-minute production rates
type Rates struct {
	Points   float64 `json:"pts_per_min"`
	Rebounds float64 `json:"reb_per_min"`
	Assists  float64 `json:"ast_per_min"`
	Threes   float64 `json:"fg3_per_min"`
}

// PerMinute divides each mean by the mean minutes. A window without
// positive minutes yields zero rates.
func (w Window) PerMinute() Rates {
	minutes := w.Minutes.Mean.Or(0)
	if minutes <= 0 {
		return Rates{}
	}
	return Rates{
		Points:   w.Points.Mean.Or(0) / minutes,
		Rebounds: w.Rebounds.Mean.Or(0) / minutes,
		Assists:  w.Assists.Mean.Or(0) / minutes,
		Threes:   w.Threes.Mean.Or(0) / minutes,
	}
}
