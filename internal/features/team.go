// Package features builds evaluation inputs from team box-score aggregates
// and player game logs: pace and defense context plus rolling windows.
package features

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/prop-edge/internal/models"
)

// TeamStats is a team's per-game box-score aggregate
type TeamStats struct {
	TeamName  string  `json:"team_name"`
	FGA       float64 `json:"fga"`
	FTA       float64 `json:"fta"`
	OREB      float64 `json:"oreb"`
	TOV       float64 `json:"tov"`
	PTS       float64 `json:"pts"`
	PlusMinus float64 `json:"plus_minus"`
	MIN       float64 `json:"min"`
}

// TeamRating holds the tempo and defensive rating derived from TeamStats
type TeamRating struct {
	TeamName    string  `json:"team_name"`
	Possessions float64 `json:"poss"`
	OppPoints   float64 `json:"opp_pts"`
	Pace        float64 `json:"pace"`
	DefRating   float64 `json:"def_rating"`
}

// League is the set of team ratings and their league averages
type League struct {
	teams        map[string]TeamRating
	AvgPace      float64
	AvgDefRating float64
}

// NewLeague derives ratings for every team. Possessions of zero are replaced
// by the league mean possessions.
func NewLeague(rows []TeamStats) (*League, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no team stats: %w", models.ErrInvalidInput)
	}

	poss := make([]float64, len(rows))
	for i, r := range rows {
		if r.MIN <= 0 {
			return nil, fmt.Errorf("team %q has non-positive minutes: %w", r.TeamName, models.ErrInvalidInput)
		}
		poss[i] = r.FGA + 0.44*r.FTA + r.TOV - r.OREB
	}
	meanPoss := stat.Mean(poss, nil)

	league := &League{teams: make(map[string]TeamRating, len(rows))}
	paces := make([]float64, len(rows))
	ratings := make([]float64, len(rows))
	for i, r := range rows {
		p := poss[i]
		if p == 0 {
			p = meanPoss
		}
		if p == 0 {
			return nil, fmt.Errorf("league possessions average to zero: %w", models.ErrInvalidInput)
		}
		oppPts := r.PTS - r.PlusMinus
		rating := TeamRating{
			TeamName:    r.TeamName,
			Possessions: p,
			OppPoints:   oppPts,
			Pace:        48 * p / r.MIN,
			DefRating:   100 * oppPts / p,
		}
		league.teams[r.TeamName] = rating
		paces[i] = rating.Pace
		ratings[i] = rating.DefRating
	}
	league.AvgPace = stat.Mean(paces, nil)
	league.AvgDefRating = stat.Mean(ratings, nil)
	return league, nil
}

// Team returns a team's rating
func (l *League) Team(name string) (TeamRating, bool) {
	r, ok := l.teams[name]
	return r, ok
}

// TeamContext is the matchup context attached to a prop
type TeamContext struct {
	PlayerTeam         string  `json:"player_team_name,omitempty"`
	OpponentTeam       string  `json:"opp_team_name,omitempty"`
	TeamPace           float64 `json:"team_pace"`
	OppPace            float64 `json:"opp_pace"`
	OppDefRating       float64 `json:"opp_defrtg"`
	LeagueAvgPace      float64 `json:"league_avg_pace"`
	LeagueAvgDefRating float64 `json:"league_avg_defrtg"`
	PaceFactor         float64 `json:"pace_factor"`
	DefenseFactor      float64 `json:"defense_factor"`
}

// Context computes the pace and defense factors for a player's team facing
// opp. Teams missing from the league use the league averages.
func (l *League) Context(team, opp string) TeamContext {
	ctx := TeamContext{
		PlayerTeam:         team,
		OpponentTeam:       opp,
		TeamPace:           l.AvgPace,
		OppPace:            l.AvgPace,
		OppDefRating:       l.AvgDefRating,
		LeagueAvgPace:      l.AvgPace,
		LeagueAvgDefRating: l.AvgDefRating,
	}
	if r, ok := l.teams[team]; ok {
		ctx.TeamPace = r.Pace
	}
	if r, ok := l.teams[opp]; ok {
		ctx.OppPace = r.Pace
		ctx.OppDefRating = r.DefRating
	}

	ctx.PaceFactor = 1.0
	if l.AvgPace != 0 {
		ctx.PaceFactor = (ctx.TeamPace + ctx.OppPace) / (2.0 * l.AvgPace)
	}
	ctx.DefenseFactor = 1.0
	if ctx.OppDefRating != 0 {
		ctx.DefenseFactor = l.AvgDefRating / ctx.OppDefRating
	}
	return ctx
}

// Opponent picks the opponent from a game's home and away teams. The second
// result is false when the player's team is neither.
func Opponent(playerTeam, home, away string) (string, bool) {
	switch playerTeam {
	case "":
		return "", false
	case home:
		return away, true
	case away:
		return home, true
	}
	return "", false
}
