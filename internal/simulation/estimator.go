package simulation

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/prop-edge/internal/models"
)

// DefaultNumSims is the number of draws per prop
const DefaultNumSims = 10000

// Tails holds the empirical probabilities of landing strictly above and
// strictly below a line. Draws equal to the line count toward neither.
type Tails struct {
	Over  models.Value
	Under models.Value
}

// For returns the tail matching side, unknown for an unrecognised side
func (t Tails) For(side models.Side) models.Value {
	s, ok := models.ParseSide(string(side))
	if !ok {
		return models.Unknown()
	}
	if s == models.SideOver {
		return t.Over
	}
	return t.Under
}

// Estimator draws samples from a fitted distribution and measures the tails
// against a line. The random source is always supplied by the caller.
type Estimator struct {
	NumSims int
}

// NewEstimator creates an estimator, defaulting the draw count
func NewEstimator(numSims int) Estimator {
	if numSims <= 0 {
		numSims = DefaultNumSims
	}
	return Estimator{NumSims: numSims}
}

func (e Estimator) sims() int {
	if e.NumSims <= 0 {
		return DefaultNumSims
	}
	return e.NumSims
}

// Normal samples N(mean, std), clamping negative draws to zero
func (e Estimator) Normal(src rand.Source, mean, std, line models.Value) Tails {
	mu, okMean := mean.Get()
	sigma, okStd := std.Get()
	l, okLine := line.Get()
	if !okMean || !okStd || !okLine || mu <= 0 || sigma <= 0 {
		return Tails{}
	}

	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	return e.tally(l, func() float64 {
		x := dist.Rand()
		if x < 0 {
			return 0
		}
		return x
	})
}

// Poisson samples Poisson(mean)
func (e Estimator) Poisson(src rand.Source, mean, line models.Value) Tails {
	lambda, okMean := mean.Get()
	l, okLine := line.Get()
	if !okMean || !okLine || lambda <= 0 {
		return Tails{}
	}

	dist := distuv.Poisson{Lambda: lambda, Src: src}
	return e.tally(l, dist.Rand)
}

// NegBinOrPoisson samples a negative binomial matched to (mean, variance),
// falling back to Poisson with the same mean when the moments do not admit
// one. The family actually sampled is returned alongside the tails.
func (e Estimator) NegBinOrPoisson(src rand.Source, mean, variance, line models.Value) (Tails, models.Family) {
	mu, okMean := mean.Get()
	_, okLine := line.Get()
	if !okMean || !okLine || mu <= 0 {
		return Tails{}, models.FamilyNone
	}

	v, okVar := variance.Get()
	if !okVar {
		return e.Poisson(src, mean, line), models.FamilyPoisson
	}
	fit := NegBinParams(mu, v)
	if fit.Fallback() {
		return e.Poisson(src, mean, line), models.FamilyPoisson
	}
	return e.negBin(src, fit, line.Or(0)), models.FamilyNegativeBinomial
}

// negBin draws NB(n, p) as a gamma-Poisson mixture: the Poisson rate is
// Gamma(shape n, rate p/(1-p)), giving mean n(1-p)/p.
func (e Estimator) negBin(src rand.Source, fit ParamFit, line float64) Tails {
	rate := distuv.Gamma{Alpha: fit.N, Beta: fit.P / (1 - fit.P), Src: src}
	return e.tally(line, func() float64 {
		lambda := rate.Rand()
		if lambda <= 0 {
			return 0
		}
		return distuv.Poisson{Lambda: lambda, Src: src}.Rand()
	})
}

func (e Estimator) tally(line float64, draw func() float64) Tails {
	n := e.sims()
	over, under := 0, 0
	for i := 0; i < n; i++ {
		x := draw()
		if x > line {
			over++
		} else if x < line {
			under++
		}
	}
	return Tails{
		Over:  models.Known(float64(over) / float64(n)),
		Under: models.Known(float64(under) / float64(n)),
	}
}
