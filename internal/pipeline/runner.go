// Package pipeline glues evaluation and portfolio selection into a single
// run over a batch of props.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/evaluation"
	"github.com/yourusername/prop-edge/internal/ingest"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/portfolio"
)

const (
	// EvaluatedFile holds every evaluated prop of a run
	EvaluatedFile = "evaluated_props.json"
	// PortfolioFile holds the selected card
	PortfolioFile = "portfolio.json"
)

// Result is the output of one run
type Result struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	NumSims     int                    `json:"n_sims"`
	Evaluated   []models.EvaluatedProp `json:"evaluated"`
	Portfolio   portfolio.Portfolio    `json:"portfolio"`
	OutputDir   string                 `json:"-"`
}

// Runner evaluates a batch of props and selects a card from them
type Runner struct {
	evaluator   *evaluation.Evaluator
	constraints portfolio.Constraints
	logger      *logger.EvaluationLogger
	now         func() time.Time
}

// NewRunner creates a new runner
func NewRunner(evaluator *evaluation.Evaluator, constraints portfolio.Constraints, log *logrus.Logger) *Runner {
	return &Runner{
		evaluator:   evaluator,
		constraints: constraints,
		logger:      logger.NewEvaluationLogger(log),
		now:         time.Now,
	}
}

// Constraints returns the runner's portfolio constraints
func (r *Runner) Constraints() portfolio.Constraints {
	return r.constraints
}

// Evaluator returns the runner's evaluator
func (r *Runner) Evaluator() *evaluation.Evaluator {
	return r.evaluator
}

// Run evaluates inputs and builds the card under a fresh run ID. Invalid
// constraints fail before any prop is evaluated. If ctx is cancelled the
// props evaluated so far are returned with the error and no card.
func (r *Runner) Run(ctx context.Context, inputs []models.PropInput) (Result, error) {
	return r.RunWithConstraints(ctx, inputs, r.constraints)
}

// RunWithConstraints is Run with constraints overriding the runner's own
func (r *Runner) RunWithConstraints(ctx context.Context, inputs []models.PropInput, c portfolio.Constraints) (Result, error) {
	result := Result{
		RunID:       uuid.NewString(),
		GeneratedAt: r.now().UTC(),
		NumSims:     r.evaluator.NumSims(),
	}
	log := r.logger.WithRun(result.RunID)

	if err := c.Validate(); err != nil {
		return result, err
	}

	log.WithField("props", len(inputs)).Info("Run started")
	evaluated, err := r.evaluator.EvaluateBatch(ctx, inputs)
	result.Evaluated = evaluated
	if err != nil {
		log.WithError(err).Warn("Run interrupted during evaluation")
		return result, fmt.Errorf("evaluation interrupted after %d of %d props: %w", len(evaluated), len(inputs), err)
	}

	card, err := portfolio.BuildForRun(result.RunID, evaluated, c)
	if err != nil {
		return result, err
	}
	result.Portfolio = card

	log.LogFilterApplied(card.Candidates, card.Passed-card.Duplicates, card.Duplicates)
	s := card.Summary
	log.LogPortfolioSelected(s.TotalPicks, s.Overs, s.Unders, s.AvgEV, s.AvgConfidence)
	return result, nil
}

// RunFile reads props from inPath, runs them and writes the evaluated rows
// and card under outDir/<date>.
func (r *Runner) RunFile(ctx context.Context, inPath, outDir string) (Result, error) {
	inputs, err := ingest.ReadProps(inPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read props: %w", err)
	}

	result, err := r.Run(ctx, inputs)
	if err != nil {
		return result, err
	}
	if err := r.write(&result, outDir); err != nil {
		return result, err
	}
	return result, nil
}

func (r *Runner) write(result *Result, outDir string) error {
	dir := filepath.Join(outDir, result.GeneratedAt.Format("2006-01-02"))
	if err := ingest.WriteJSON(filepath.Join(dir, EvaluatedFile), result.Evaluated); err != nil {
		return err
	}
	if err := ingest.WriteJSON(filepath.Join(dir, PortfolioFile), result.Portfolio); err != nil {
		return err
	}
	result.OutputDir = dir
	r.logger.WithRun(result.RunID).WithField("output_dir", dir).Info("Run results written")
	return nil
}
