package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
)

func sampleTeams() []TeamStats {
	return []TeamStats{
		{TeamName: "Boston Celtics", FGA: 88, FTA: 20, OREB: 10, TOV: 14, PTS: 112, PlusMinus: 4, MIN: 240},
		{TeamName: "Denver Nuggets", FGA: 90, FTA: 25, OREB: 12, TOV: 12, PTS: 110, PlusMinus: -6, MIN: 240},
	}
}

func TestNewLeagueRatings(t *testing.T) {
	league, err := NewLeague(sampleTeams())
	require.NoError(t, err)

	bos, ok := league.Team("Boston Celtics")
	require.True(t, ok)
	assert.InDelta(t, 100.8, bos.Possessions, 1e-9)
	assert.InDelta(t, 108.0, bos.OppPoints, 1e-9)
	assert.InDelta(t, 48*100.8/240, bos.Pace, 1e-9)
	assert.InDelta(t, 100*108/100.8, bos.DefRating, 1e-9)

	den, ok := league.Team("Denver Nuggets")
	require.True(t, ok)
	assert.InDelta(t, 101.0, den.Possessions, 1e-9)
	assert.InDelta(t, 116.0, den.OppPoints, 1e-9)

	assert.InDelta(t, (bos.Pace+den.Pace)/2, league.AvgPace, 1e-9)
	assert.InDelta(t, (bos.DefRating+den.DefRating)/2, league.AvgDefRating, 1e-9)
}

func TestNewLeagueZeroPossessionsUseMean(t *testing.T) {
	teams := append(sampleTeams(), TeamStats{TeamName: "Empty", PTS: 100, MIN: 240})

	league, err := NewLeague(teams)
	require.NoError(t, err)

	empty, _ := league.Team("Empty")
	assert.InDelta(t, (100.8+101.0+0)/3, empty.Possessions, 1e-9)
}

func TestNewLeagueInvalid(t *testing.T) {
	_, err := NewLeague(nil)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = NewLeague([]TeamStats{{TeamName: "No Minutes", FGA: 80}})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLeagueContext(t *testing.T) {
	league, err := NewLeague(sampleTeams())
	require.NoError(t, err)
	bos, _ := league.Team("Boston Celtics")
	den, _ := league.Team("Denver Nuggets")

	tc := league.Context("Boston Celtics", "Denver Nuggets")
	assert.InDelta(t, (bos.Pace+den.Pace)/(2*league.AvgPace), tc.PaceFactor, 1e-12)
	assert.InDelta(t, league.AvgDefRating/den.DefRating, tc.DefenseFactor, 1e-12)
	assert.Equal(t, "Denver Nuggets", tc.OpponentTeam)

	// unknown opponent falls back to league averages
	tc = league.Context("Boston Celtics", "Atlantis")
	assert.InDelta(t, (bos.Pace+league.AvgPace)/(2*league.AvgPace), tc.PaceFactor, 1e-12)
	assert.InDelta(t, 1.0, tc.DefenseFactor, 1e-12)

	tc = league.Context("", "")
	assert.InDelta(t, 1.0, tc.PaceFactor, 1e-12)
	assert.InDelta(t, 1.0, tc.DefenseFactor, 1e-12)
}

func TestOpponent(t *testing.T) {
	tests := []struct {
		team, home, away string
		want             string
		ok               bool
	}{
		{"Boston Celtics", "Boston Celtics", "Denver Nuggets", "Denver Nuggets", true},
		{"Denver Nuggets", "Boston Celtics", "Denver Nuggets", "Boston Celtics", true},
		{"Miami Heat", "Boston Celtics", "Denver Nuggets", "", false},
		{"", "Boston Celtics", "Denver Nuggets", "", false},
	}
	for _, tt := range tests {
		got, ok := Opponent(tt.team, tt.home, tt.away)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.ok, ok)
	}
}
