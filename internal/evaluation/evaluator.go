// Package evaluation runs the per-prop pipeline: context adjustment,
// distribution choice, Monte Carlo tails, market comparison and confidence.
package evaluation

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/yourusername/prop-edge/internal/config"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/odds"
	"github.com/yourusername/prop-edge/internal/simulation"
)

// Config configures an Evaluator
type Config struct {
	NumSims int
	// Seed fixes the random streams of a batch; 0 draws one from the clock.
	Seed    int64
	Workers int
}

// FromConfig converts app config to evaluation config
func FromConfig(cfg *config.SimulationConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("simulation config is required")
	}
	c := Config{
		NumSims: cfg.NumSims,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
	}
	return c, c.Validate()
}

// Validate validates evaluation parameters
func (c Config) Validate() error {
	if c.NumSims <= 0 {
		return fmt.Errorf("num sims must be positive")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// Evaluator turns prop inputs into evaluated props
type Evaluator struct {
	estimator simulation.Estimator
	seed      int64
	workers   int
	logger    *logger.EvaluationLogger
}

// NewEvaluator creates a new evaluator
func NewEvaluator(cfg Config, log *logrus.Logger) *Evaluator {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Evaluator{
		estimator: simulation.NewEstimator(cfg.NumSims),
		seed:      cfg.Seed,
		workers:   workers,
		logger:    logger.NewEvaluationLogger(log),
	}
}

// NumSims returns the draw count per prop
func (e *Evaluator) NumSims() int {
	return e.estimator.NumSims
}

// Evaluate runs the full pipeline for one prop using src for sampling.
// Missing statistics, an unrecognised market or side, and rejected
// distribution fits never fail: they leave the model fields unknown or fall
// back to Poisson.
func (e *Evaluator) Evaluate(src rand.Source, in models.PropInput) models.EvaluatedProp {
	in = normalize(in)
	moments := simulation.Adjust(in.Baseline())
	tails, family := e.simulate(src, in, moments)

	outcome := models.SimulationOutcome{
		ModelProb:   tails.For(in.Side),
		ImpliedProb: odds.ImpliedProbability(in.Odds),
		NumSims:     e.estimator.NumSims,
	}
	if outcome.ModelProb.IsKnown() {
		outcome.Family = family
	}
	outcome.Edge = outcome.ModelProb.Sub(outcome.ImpliedProb)
	outcome.EVPerUnit = odds.ExpectedValuePerUnit(in.Odds, outcome.ModelProb)
	outcome.Confidence = Confidence(outcome.ModelProb, outcome.Edge, in.MinutesSignal())

	return models.EvaluatedProp{
		PropInput:         in,
		AdjustedMoments:   moments,
		SimulationOutcome: outcome,
	}
}

func (e *Evaluator) simulate(src rand.Source, in models.PropInput, moments models.AdjustedMoments) (simulation.Tails, models.Family) {
	market, ok := models.ParseMarket(string(in.Market))
	if !ok {
		return simulation.Tails{}, models.FamilyNone
	}
	mean, ok := moments.Mean.Get()
	if !ok || !in.Line.IsKnown() {
		return simulation.Tails{}, models.FamilyNone
	}

	switch market {
	case models.MarketPoints:
		return e.estimator.Normal(src, moments.Mean, pointsStd(mean, moments.Var), in.Line), models.FamilyNormal
	case models.MarketAssists, models.MarketRebounds:
		variance := countVariance(mean, moments.Var)
		tails, family := e.estimator.NegBinOrPoisson(src, moments.Mean, variance, in.Line)
		if family == models.FamilyPoisson {
			metrics.RecordDistributionFallback(string(market))
			e.logger.LogDistributionFallback(in.PlayerKey(), string(market), mean, variance.Or(0))
		}
		return tails, family
	default:
		return e.estimator.Poisson(src, moments.Mean, in.Line), models.FamilyPoisson
	}
}

// normalize canonicalises recognised market and side spellings so rows
// group consistently downstream. Unrecognised values are echoed unchanged.
func normalize(in models.PropInput) models.PropInput {
	if market, ok := models.ParseMarket(string(in.Market)); ok {
		in.Market = market
	}
	if side, ok := models.ParseSide(string(in.Side)); ok {
		in.Side = side
	}
	return in
}

// pointsStd uses the adjusted variance, or sqrt(mean) when the variance is
// unusable.
func pointsStd(mean float64, variance models.Value) models.Value {
	if v, ok := variance.Get(); ok && v > 0 {
		return models.Known(math.Sqrt(v))
	}
	return models.Known(math.Sqrt(mean))
}

// countVariance uses the adjusted variance, or mean+1 when it is unusable.
func countVariance(mean float64, variance models.Value) models.Value {
	if v, ok := variance.Get(); ok && v > 0 {
		return variance
	}
	return models.Known(mean + 1.0)
}

// EvaluateBatch evaluates props on a worker pool. Prop i always samples from
// its own stream derived from the batch seed, so a fixed seed reproduces the
// batch regardless of scheduling. Results keep input order. If ctx is
// cancelled the props finished so far are returned with ctx.Err().
func (e *Evaluator) EvaluateBatch(ctx context.Context, inputs []models.PropInput) ([]models.EvaluatedProp, error) {
	start := time.Now()
	seed := e.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := make([]models.EvaluatedProp, len(inputs))
	done := make([]bool, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := e.workers
	if workers > len(inputs) {
		workers = len(inputs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.Evaluate(simulation.StreamSource(seed, i), inputs[i])
				done[i] = true
			}
		}()
	}

	var cancelErr error
queue:
	for i := range inputs {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break
		}
		select {
		case <-ctx.Done():
			cancelErr = ctx.Err()
			break queue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	evaluated := make([]models.EvaluatedProp, 0, len(inputs))
	unknown, fallbacks := 0, 0
	for i, ok := range done {
		if !ok {
			continue
		}
		row := results[i]
		evaluated = append(evaluated, row)

		p, known := row.ModelProb.Get()
		metrics.RecordPropEvaluated(string(row.Market), p, known)
		if !known {
			unknown++
			e.logger.LogPropSkipped(row.PlayerKey(), string(row.Market), string(row.Side), skipReason(row))
		}
		if row.Family == models.FamilyPoisson && (row.Market == models.MarketAssists || row.Market == models.MarketRebounds) {
			fallbacks++
		}
	}

	elapsed := time.Since(start)
	metrics.RecordEvaluationBatch(elapsed.Seconds())
	e.logger.WithField("seed", seed).Debug("Batch seed resolved")
	e.logger.LogBatchEvaluated(len(evaluated), unknown, fallbacks, e.estimator.NumSims, workers, float64(elapsed.Milliseconds()))

	return evaluated, cancelErr
}

func skipReason(row models.EvaluatedProp) string {
	switch {
	case !row.Market.Valid():
		return "unrecognised market"
	case !row.Line.IsKnown():
		return "missing line"
	case !row.AdjustedMoments.Mean.IsKnown():
		return "missing baseline mean"
	default:
		if _, ok := models.ParseSide(string(row.Side)); !ok {
			return "unrecognised side"
		}
		return "distribution preconditions not met"
	}
}
