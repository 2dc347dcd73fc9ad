package evaluation

import (
	"context"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/odds"
	"github.com/yourusername/prop-edge/internal/simulation"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func pointsProp(side models.Side, line float64, oddsPrice int) models.PropInput {
	return models.PropInput{
		Prop: models.Prop{
			PlayerID: "201939",
			Market:   models.MarketPoints,
			Side:     side,
			Line:     models.Known(line),
			Odds:     oddsPrice,
		},
		PtsLast10Mean: models.Known(27.4),
		PtsLast10Std:  models.Known(6.2),
		MinLast10Mean: models.Known(34.1),
		PaceFactor:    1.02,
		DefenseFactor: 0.98,
	}
}

func TestEvaluatePointsProp(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 20000, Seed: 1, Workers: 1}, testLogger())
	in := pointsProp(models.SideOver, 25.5, -115)

	row := ev.Evaluate(simulation.NewSource(5), in)

	mean := 27.4 * 1.02 * 0.98
	variance := 6.2 * 6.2 * 1.02 * 0.98
	assert.InDelta(t, mean, row.AdjustedMoments.Mean.Or(0), 1e-9)
	assert.InDelta(t, variance, row.Var.Or(0), 1e-9)

	require.True(t, row.ModelProb.IsKnown())
	want := 1 - distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance)}.CDF(25.5)
	assert.InDelta(t, want, row.ModelProb.Or(0), 0.02)

	implied := odds.ImpliedProbability(-115)
	assert.Equal(t, implied, row.ImpliedProb)
	assert.InDelta(t, row.ModelProb.Or(0)-implied.Or(0), row.Edge.Or(0), 1e-12)
	assert.Equal(t, odds.ExpectedValuePerUnit(-115, row.ModelProb), row.EVPerUnit)
	assert.Equal(t, Confidence(row.ModelProb, row.Edge, models.Known(34.1)), row.Confidence)
	assert.Equal(t, models.FamilyNormal, row.Family)
	assert.Equal(t, 20000, row.NumSims)
}

func TestEvaluateUnknownBaseMean(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 1000, Seed: 1}, testLogger())
	in := pointsProp(models.SideOver, 25.5, -110)
	in.PtsLast10Mean = models.Unknown()

	row := ev.Evaluate(simulation.NewSource(1), in)

	assert.False(t, row.AdjustedMoments.Mean.IsKnown())
	assert.False(t, row.ModelProb.IsKnown())
	assert.False(t, row.Edge.IsKnown())
	assert.False(t, row.EVPerUnit.IsKnown())
	assert.True(t, row.ImpliedProb.IsKnown())
	assert.Equal(t, models.FamilyNone, row.Family)
	// only the minutes component survives
	assert.InDelta(t, (34.1/36.0)/3, row.Confidence, 1e-12)
}

func TestEvaluateUnrecognisedMarket(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 1000, Seed: 1}, testLogger())
	in := pointsProp(models.SideOver, 1.5, 120)
	in.Market = "steals"

	row := ev.Evaluate(simulation.NewSource(1), in)

	assert.False(t, row.AdjustedMoments.Mean.IsKnown())
	assert.False(t, row.ModelProb.IsKnown())
	assert.False(t, row.EVPerUnit.IsKnown())
	assert.Equal(t, models.Market("steals"), row.Market)
}

func TestEvaluateUnrecognisedSide(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 1000, Seed: 1}, testLogger())
	row := ev.Evaluate(simulation.NewSource(1), pointsProp("push", 25.5, -110))
	assert.False(t, row.ModelProb.IsKnown())
	assert.True(t, row.AdjustedMoments.Mean.IsKnown())
}

func TestEvaluateUnderUsesUnderTail(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 5000, Seed: 1}, testLogger())
	over := ev.Evaluate(simulation.NewSource(8), pointsProp(models.SideOver, 26.5, -110))
	under := ev.Evaluate(simulation.NewSource(8), pointsProp(models.SideUnder, 26.5, -110))

	// same draws, continuous distribution: the tails are complementary
	assert.InDelta(t, 1.0, over.ModelProb.Or(0)+under.ModelProb.Or(0), 1e-9)
}

func TestEvaluatePointsWithoutStdFallsBackToSqrtMean(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 20000, Seed: 1}, testLogger())
	in := pointsProp(models.SideOver, 16.5, -110)
	in.PtsLast10Mean = models.Known(16)
	in.PtsLast10Std = models.Unknown()
	in.PaceFactor, in.DefenseFactor = 1, 1

	row := ev.Evaluate(simulation.NewSource(2), in)

	want := 1 - distuv.Normal{Mu: 16, Sigma: 4}.CDF(16.5)
	assert.InDelta(t, want, row.ModelProb.Or(0), 0.02)
}

func TestEvaluateCountMarkets(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 2000, Seed: 1}, testLogger())

	base := models.PropInput{
		Prop:          models.Prop{PlayerID: "1628983", Side: models.SideOver, Line: models.Known(6.5), Odds: 105},
		AstLast10Mean: models.Known(7.0),
		AstLast10Std:  models.Known(3.4),
		RebLast10Mean: models.Known(6.0),
		RebLast10Std:  models.Known(1.5),
		Fg3Last10Mean: models.Known(2.6),
		Fg3Last10Std:  models.Known(1.4),
		MinLast10Mean: models.Known(33),
	}

	assists := base
	assists.Market = models.MarketAssists
	row := ev.Evaluate(simulation.NewSource(3), assists)
	assert.Equal(t, models.FamilyNegativeBinomial, row.Family)

	rebounds := base
	rebounds.Market = models.MarketRebounds
	row = ev.Evaluate(simulation.NewSource(3), rebounds)
	// variance 2.25 <= mean 6
	assert.Equal(t, models.FamilyPoisson, row.Family)

	threes := base
	threes.Market = "threes_made"
	threes.Line = models.Known(2.5)
	row = ev.Evaluate(simulation.NewSource(3), threes)
	assert.Equal(t, models.FamilyPoisson, row.Family)
	assert.Equal(t, models.MarketThrees, row.Market)
	assert.True(t, row.ModelProb.IsKnown())
}

func TestEvaluateCountMarketMissingStd(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 2000, Seed: 1}, testLogger())
	in := models.PropInput{
		Prop:          models.Prop{PlayerID: "1", Market: models.MarketAssists, Side: models.SideUnder, Line: models.Known(4.5), Odds: -120},
		AstLast10Mean: models.Known(5),
	}

	row := ev.Evaluate(simulation.NewSource(3), in)

	// variance defaults to mean + 1, which is over-dispersed
	assert.Equal(t, models.FamilyNegativeBinomial, row.Family)
	assert.True(t, row.ModelProb.IsKnown())
}

func batchInputs(n int) []models.PropInput {
	inputs := make([]models.PropInput, 0, n)
	for i := 0; i < n; i++ {
		in := pointsProp(models.SideOver, 20.5+float64(i%7), -110)
		in.PlayerID = fmt.Sprintf("p%d", i)
		inputs = append(inputs, in)
	}
	return inputs
}

func TestEvaluateBatchReproducibleAcrossWorkerCounts(t *testing.T) {
	inputs := batchInputs(40)

	serial := NewEvaluator(Config{NumSims: 500, Seed: 1234, Workers: 1}, testLogger())
	parallel := NewEvaluator(Config{NumSims: 500, Seed: 1234, Workers: 8}, testLogger())

	a, err := serial.EvaluateBatch(context.Background(), inputs)
	require.NoError(t, err)
	b, err := parallel.EvaluateBatch(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, a, len(inputs))
	assert.Equal(t, a, b)
	for i := range inputs {
		assert.Equal(t, inputs[i].PlayerID, a[i].PlayerID)
	}
}

func TestEvaluateBatchCancelled(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 100, Seed: 1, Workers: 2}, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := ev.EvaluateBatch(ctx, batchInputs(50))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}

func TestEvaluateBatchEmpty(t *testing.T) {
	ev := NewEvaluator(Config{NumSims: 100, Seed: 1}, testLogger())
	rows, err := ev.EvaluateBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFromConfig(t *testing.T) {
	cfg, err := FromConfig(&config.SimulationConfig{NumSims: 5000, Seed: 3, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, Config{NumSims: 5000, Seed: 3, Workers: 2}, cfg)

	_, err = FromConfig(&config.SimulationConfig{NumSims: 0})
	assert.Error(t, err)

	_, err = FromConfig(nil)
	assert.Error(t, err)
}
