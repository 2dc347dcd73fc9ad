package features

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// DefaultWindow is the rolling window length used for evaluation inputs
const DefaultWindow = 10

// ShortWindow is the secondary window reported alongside the main one
const ShortWindow = 5

// RawProp is an offered prop with the game it belongs to
type RawProp struct {
	models.Prop
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// PlayerLogs is a player's team and game logs, most recent game first
type PlayerLogs struct {
	PlayerID   string    `json:"player_id"`
	PlayerName string    `json:"player_name"`
	TeamName   string    `json:"team_name"`
	Games      []GameLog `json:"games"`
}

// RawSlate is everything the feature stage needs for one day's props
type RawSlate struct {
	Teams   []TeamStats  `json:"teams"`
	Players []PlayerLogs `json:"players"`
	Props   []RawProp    `json:"props"`
}

// FeatureRow is a built evaluation input plus the context it was derived from
type FeatureRow struct {
	models.PropInput
	HomeTeam     string       `json:"home_team,omitempty"`
	AwayTeam     string       `json:"away_team,omitempty"`
	MinLast10Std models.Value `json:"min_last10_std"`
	PtsLast5Mean models.Value `json:"pts_last5_mean"`
	RebLast5Mean models.Value `json:"reb_last5_mean"`
	AstLast5Mean models.Value `json:"ast_last5_mean"`
	Fg3Last5Mean models.Value `json:"fg3_last5_mean"`
	MinLast5Mean models.Value `json:"min_last5_mean"`
	PerMinute    Rates        `json:"per_minute"`
	TeamPace     float64      `json:"team_pace"`
	OppPace      float64      `json:"opp_pace"`
	OppDefRating float64      `json:"opp_defrtg"`
	LeaguePace   float64      `json:"league_avg_pace"`
	LeagueDefRtg float64      `json:"league_avg_defrtg"`
}

// Builder joins raw props with team context and rolling windows
type Builder struct {
	window int
	cache  *BaselineCache
	logger *logger.FeatureLogger
}

// NewBuilder creates a builder. A non-positive window uses DefaultWindow.
func NewBuilder(window int, cache *BaselineCache, log *logrus.Logger) *Builder {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Builder{
		window: window,
		cache:  cache,
		logger: logger.NewFeatureLogger(log),
	}
}

// Build returns the evaluation inputs for a slate
func (b *Builder) Build(ctx context.Context, raw RawSlate) ([]models.PropInput, error) {
	rows, err := b.BuildRows(ctx, raw)
	inputs := make([]models.PropInput, len(rows))
	for i, r := range rows {
		inputs[i] = r.PropInput
	}
	return inputs, err
}

// BuildRows builds a feature row per prop. Props whose player has no game
// logs are dropped and logged. The cache is flushed first so every run reads
// its own slate.
func (b *Builder) BuildRows(ctx context.Context, raw RawSlate) ([]FeatureRow, error) {
	league, err := NewLeague(raw.Teams)
	if err != nil {
		return nil, fmt.Errorf("failed to build league context: %w", err)
	}
	b.logger.LogLeagueLoaded(len(raw.Teams), league.AvgPace, league.AvgDefRating)
	b.cache.Flush()

	players := indexPlayers(raw.Players)
	rows := make([]FeatureRow, 0, len(raw.Props))
	dropped := 0

	for _, p := range raw.Props {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		pl, ok := players.lookup(p.Prop)
		if !ok || len(pl.Games) == 0 {
			dropped++
			metrics.RecordFeaturePropSkipped("no_game_logs")
			b.logger.LogPropDropped(p.PlayerKey(), string(p.Market), "no game logs")
			continue
		}
		rows = append(rows, b.row(league, p, pl))
	}

	_, _, ratio := b.cache.Stats()
	b.logger.LogFeaturesBuilt(len(raw.Props), len(rows), dropped, ratio)
	return rows, nil
}

func (b *Builder) row(league *League, p RawProp, pl PlayerLogs) FeatureRow {
	key := pl.PlayerID
	if key == "" {
		key = pl.PlayerName
	}
	long := b.cache.GetOrCompute(CacheKey{PlayerID: key, Window: b.window}, func() Window {
		return RollingWindow(pl.Games, b.window)
	})
	short := b.cache.GetOrCompute(CacheKey{PlayerID: key, Window: ShortWindow}, func() Window {
		return RollingWindow(pl.Games, ShortWindow)
	})

	opp, matched := Opponent(pl.TeamName, p.HomeTeam, p.AwayTeam)
	if !matched {
		b.logger.LogUnmatchedTeam(p.PlayerKey(), pl.TeamName, p.HomeTeam, p.AwayTeam)
	}
	tc := league.Context(pl.TeamName, opp)

	prop := p.Prop
	if prop.PlayerID == "" {
		prop.PlayerID = pl.PlayerID
	}
	if prop.PlayerName == "" {
		prop.PlayerName = pl.PlayerName
	}

	return FeatureRow{
		PropInput: models.PropInput{
			Prop:          prop,
			PtsLast10Mean: long.Points.Mean,
			PtsLast10Std:  long.Points.Std,
			RebLast10Mean: long.Rebounds.Mean,
			RebLast10Std:  long.Rebounds.Std,
			AstLast10Mean: long.Assists.Mean,
			AstLast10Std:  long.Assists.Std,
			Fg3Last10Mean: long.Threes.Mean,
			Fg3Last10Std:  long.Threes.Std,
			MinLast10Mean: long.Minutes.Mean,
			PaceFactor:    tc.PaceFactor,
			DefenseFactor: tc.DefenseFactor,
			PlayerTeam:    tc.PlayerTeam,
			OpponentTeam:  tc.OpponentTeam,
		},
		HomeTeam:     p.HomeTeam,
		AwayTeam:     p.AwayTeam,
		MinLast10Std: long.Minutes.Std,
		PtsLast5Mean: short.Points.Mean,
		RebLast5Mean: short.Rebounds.Mean,
		AstLast5Mean: short.Assists.Mean,
		Fg3Last5Mean: short.Threes.Mean,
		MinLast5Mean: short.Minutes.Mean,
		PerMinute:    long.PerMinute(),
		TeamPace:     tc.TeamPace,
		OppPace:      tc.OppPace,
		OppDefRating: tc.OppDefRating,
		LeaguePace:   tc.LeagueAvgPace,
		LeagueDefRtg: tc.LeagueAvgDefRating,
	}
}

type playerIndex struct {
	byID   map[string]PlayerLogs
	byName map[string]PlayerLogs
}

func indexPlayers(players []PlayerLogs) playerIndex {
	idx := playerIndex{
		byID:   make(map[string]PlayerLogs, len(players)),
		byName: make(map[string]PlayerLogs, len(players)),
	}
	for _, p := range players {
		if p.PlayerID != "" {
			idx.byID[p.PlayerID] = p
		}
		if p.PlayerName != "" {
			idx.byName[strings.ToLower(p.PlayerName)] = p
		}
	}
	return idx
}

// lookup matches by ID, then by exact case-insensitive name
func (idx playerIndex) lookup(p models.Prop) (PlayerLogs, bool) {
	if p.PlayerID != "" {
		if pl, ok := idx.byID[p.PlayerID]; ok {
			return pl, true
		}
	}
	pl, ok := idx.byName[strings.ToLower(p.PlayerName)]
	return pl, ok
}
