package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/prop-edge/internal/models"
)

func known(x float64) models.Value { return models.Known(x) }

func TestNormalTailsBounded(t *testing.T) {
	est := NewEstimator(10000)
	for _, line := range []float64{0, 5.5, 22.5, 24, 40.5} {
		tails := est.Normal(NewSource(42), known(24), known(6), known(line))
		require.True(t, tails.Over.IsKnown())
		require.True(t, tails.Under.IsKnown())
		over, under := tails.Over.Or(-1), tails.Under.Or(-1)
		assert.GreaterOrEqual(t, over, 0.0)
		assert.GreaterOrEqual(t, under, 0.0)
		assert.LessOrEqual(t, over+under, 1.0)
	}
}

func TestNormalDeterministicWithSeed(t *testing.T) {
	est := NewEstimator(5000)
	a := est.Normal(NewSource(7), known(24), known(6), known(23.5))
	b := est.Normal(NewSource(7), known(24), known(6), known(23.5))
	assert.Equal(t, a, b)
}

func TestNormalMatchesAnalyticTail(t *testing.T) {
	est := NewEstimator(20000)
	tails := est.Normal(NewSource(11), known(24), known(6), known(22.5))
	want := 1 - distuv.Normal{Mu: 24, Sigma: 6}.CDF(22.5)
	assert.InDelta(t, want, tails.Over.Or(0), 0.02)
}

func TestNormalClampsNegativeDraws(t *testing.T) {
	est := NewEstimator(10000)
	tails := est.Normal(NewSource(3), known(1), known(5), known(0))
	// clamped draws sit exactly on the line and count toward neither side
	assert.Equal(t, 0.0, tails.Under.Or(-1))
	assert.Less(t, tails.Over.Or(1), 1.0)
}

func TestNormalMissingPreconditions(t *testing.T) {
	est := NewEstimator(100)
	cases := []Tails{
		est.Normal(NewSource(1), models.Unknown(), known(5), known(20)),
		est.Normal(NewSource(1), known(20), models.Unknown(), known(20)),
		est.Normal(NewSource(1), known(20), known(5), models.Unknown()),
		est.Normal(NewSource(1), known(0), known(5), known(20)),
		est.Normal(NewSource(1), known(20), known(0), known(20)),
	}
	for i, tails := range cases {
		assert.False(t, tails.Over.IsKnown(), "case %d", i)
		assert.False(t, tails.Under.IsKnown(), "case %d", i)
	}
}

func TestPoissonTiesExcluded(t *testing.T) {
	est := NewEstimator(10000)
	tails := est.Poisson(NewSource(5), known(2), known(2))
	sum := tails.Over.Or(0) + tails.Under.Or(0)
	// P(X = 2) for lambda 2 is about 0.27
	assert.InDelta(t, 1-2*math.Exp(-2), sum, 0.03)
}

func TestPoissonMatchesAnalyticTail(t *testing.T) {
	est := NewEstimator(20000)
	tails := est.Poisson(NewSource(9), known(10), known(9.5))
	want := 1 - distuv.Poisson{Lambda: 10}.CDF(9)
	assert.InDelta(t, want, tails.Over.Or(0), 0.02)
	assert.InDelta(t, 1-want, tails.Under.Or(0), 0.02)
}

func TestPoissonRequiresPositiveMean(t *testing.T) {
	est := NewEstimator(100)
	tails := est.Poisson(NewSource(1), known(0), known(0.5))
	assert.False(t, tails.Over.IsKnown())
	assert.False(t, tails.Under.IsKnown())
}

func TestNegBinOrPoissonSamplesNegBin(t *testing.T) {
	est := NewEstimator(20000)
	// NB(n=4, p=0.5): P(X <= 3) = 0.5 exactly
	tails, family := est.NegBinOrPoisson(NewSource(21), known(4), known(8), known(3.5))
	assert.Equal(t, models.FamilyNegativeBinomial, family)
	assert.InDelta(t, 0.5, tails.Over.Or(0), 0.02)
	assert.InDelta(t, 0.5, tails.Under.Or(0), 0.02)
}

func TestNegBinOrPoissonFallsBack(t *testing.T) {
	est := NewEstimator(2000)
	tails, family := est.NegBinOrPoisson(NewSource(4), known(5), known(3), known(4.5))
	assert.Equal(t, models.FamilyPoisson, family)

	poisson := est.Poisson(NewSource(4), known(5), known(4.5))
	assert.Equal(t, poisson, tails)
}

func TestNegBinOrPoissonMissingMean(t *testing.T) {
	est := NewEstimator(100)
	tails, family := est.NegBinOrPoisson(NewSource(1), models.Unknown(), known(8), known(3.5))
	assert.Equal(t, models.FamilyNone, family)
	assert.False(t, tails.Over.IsKnown())
}

func TestTailsForSide(t *testing.T) {
	tails := Tails{Over: known(0.6), Under: known(0.4)}
	assert.Equal(t, 0.6, tails.For(models.SideOver).Or(0))
	assert.Equal(t, 0.4, tails.For("UNDER").Or(0))
	assert.False(t, tails.For("push").IsKnown())
}

func TestStreamSourceIndependent(t *testing.T) {
	a := StreamSource(99, 0).Uint64()
	b := StreamSource(99, 1).Uint64()
	c := StreamSource(99, 0).Uint64()
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}

func TestNewEstimatorDefault(t *testing.T) {
	assert.Equal(t, DefaultNumSims, NewEstimator(0).NumSims)
}
