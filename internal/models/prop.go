package models

import "strings"

// Market is the statistical category a prop is offered on
type Market string

const (
	MarketPoints   Market = "points"
	MarketAssists  Market = "assists"
	MarketRebounds Market = "rebounds"
	MarketThrees   Market = "threes"
)

// ParseMarket normalises a book's market key. The second result is false for
// markets outside the four recognised categories.
func ParseMarket(raw string) (Market, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "points":
		return MarketPoints, true
	case "assists":
		return MarketAssists, true
	case "rebounds":
		return MarketRebounds, true
	case "threes", "threes_made", "three-pointers-made":
		return MarketThrees, true
	}
	return Market(raw), false
}

// Valid reports whether m is one of the recognised categories
func (m Market) Valid() bool {
	_, ok := ParseMarket(string(m))
	return ok
}

// Side is the direction of a prop bet
type Side string

const (
	SideOver  Side = "over"
	SideUnder Side = "under"
)

// ParseSide normalises a side string
func ParseSide(raw string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "over":
		return SideOver, true
	case "under":
		return SideUnder, true
	}
	return Side(raw), false
}

// Prop is a single offered bet on a player statistic
type Prop struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	Market     Market `json:"market"`
	Side       Side   `json:"side"`
	Line       Value  `json:"line"`
	// Odds is an American price; 0 is not a valid price and reads as unknown.
	Odds int `json:"odds"`
}

// PlayerKey identifies the player for grouping, preferring the ID
func (p Prop) PlayerKey() string {
	if p.PlayerID != "" {
		return p.PlayerID
	}
	return p.PlayerName
}

// RollingStats is a rolling-window mean and standard deviation
type RollingStats struct {
	Mean Value `json:"mean"`
	Std  Value `json:"std"`
}

// PropInput is the flat record handed to the evaluation core: the prop, its
// player's last-10 rolling statistics and the game-context multipliers.
type PropInput struct {
	Prop

	PtsLast10Mean Value `json:"pts_last10_mean"`
	PtsLast10Std  Value `json:"pts_last10_std"`
	RebLast10Mean Value `json:"reb_last10_mean"`
	RebLast10Std  Value `json:"reb_last10_std"`
	AstLast10Mean Value `json:"ast_last10_mean"`
	AstLast10Std  Value `json:"ast_last10_std"`
	Fg3Last10Mean Value `json:"fg3_last10_mean"`
	Fg3Last10Std  Value `json:"fg3_last10_std"`
	MinLast10Mean Value `json:"min_last10_mean"`

	PaceFactor    float64 `json:"pace_factor"`
	DefenseFactor float64 `json:"defense_factor"`

	PlayerTeam   string `json:"player_team_name,omitempty"`
	OpponentTeam string `json:"opp_team_name,omitempty"`
}

// Stats returns the rolling statistics for the prop's market. Unrecognised
// markets yield unknown mean and std.
func (in PropInput) Stats() RollingStats {
	market, ok := ParseMarket(string(in.Market))
	if !ok {
		return RollingStats{}
	}
	switch market {
	case MarketPoints:
		return RollingStats{Mean: in.PtsLast10Mean, Std: in.PtsLast10Std}
	case MarketAssists:
		return RollingStats{Mean: in.AstLast10Mean, Std: in.AstLast10Std}
	case MarketRebounds:
		return RollingStats{Mean: in.RebLast10Mean, Std: in.RebLast10Std}
	default:
		return RollingStats{Mean: in.Fg3Last10Mean, Std: in.Fg3Last10Std}
	}
}

// Baseline assembles the contextual baseline for the prop. Missing context
// factors read as neutral (1.0).
func (in PropInput) Baseline() ContextualBaseline {
	stats := in.Stats()
	return ContextualBaseline{
		BaseMean:      stats.Mean,
		BaseStd:       stats.Std,
		PaceFactor:    neutralFactor(in.PaceFactor),
		DefenseFactor: neutralFactor(in.DefenseFactor),
	}
}

// MinutesSignal is the playing-time signal used for confidence and filtering
func (in PropInput) MinutesSignal() Value {
	return in.MinLast10Mean
}

// ContextualBaseline is the per-prop input to the distribution adjuster
type ContextualBaseline struct {
	BaseMean      Value   `json:"base_mean"`
	BaseStd       Value   `json:"base_std"`
	PaceFactor    float64 `json:"pace_factor"`
	DefenseFactor float64 `json:"defense_factor"`
}

func neutralFactor(f float64) float64 {
	if f <= 0 {
		return 1.0
	}
	return f
}
