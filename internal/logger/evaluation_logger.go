// Package logger provides evaluation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EvaluationLogger provides dedicated logging for prop evaluation and
// portfolio selection.
type EvaluationLogger struct {
	*logrus.Entry
}

// NewEvaluationLogger creates a new evaluation logger.
func NewEvaluationLogger(baseLogger *logrus.Logger) *EvaluationLogger {
	return &EvaluationLogger{
		Entry: baseLogger.WithField("component", "evaluation"),
	}
}

// WithRun scopes the logger to a single run.
func (el *EvaluationLogger) WithRun(runID string) *EvaluationLogger {
	return &EvaluationLogger{Entry: el.WithField("run_id", runID)}
}

// LogBatchEvaluated logs completion of an evaluation batch.
func (el *EvaluationLogger) LogBatchEvaluated(props, unknown, fallbacks, numSims, workers int, durationMs float64) {
	el.WithFields(logrus.Fields{
		"props_evaluated":        props,
		"props_unknown":          unknown,
		"distribution_fallbacks": fallbacks,
		"n_sims":                 numSims,
		"workers":                workers,
		"evaluation_duration_ms": durationMs,
	}).Info("Prop batch evaluated")
}

// LogDistributionFallback logs a negative binomial fit rejected in favour of Poisson.
func (el *EvaluationLogger) LogDistributionFallback(playerID, market string, mean, variance float64) {
	el.WithFields(logrus.Fields{
		"player_id": playerID,
		"market":    market,
		"adj_mean":  mean,
		"adj_var":   variance,
	}).Debug("Negative binomial fit rejected, sampling Poisson")
}

// LogPropSkipped logs a prop left without a model probability.
func (el *EvaluationLogger) LogPropSkipped(playerID, market, side, reason string) {
	el.WithFields(logrus.Fields{
		"player_id": playerID,
		"market":    market,
		"side":      side,
		"reason":    reason,
	}).Debug("Prop has no model probability")
}

// LogFilterApplied logs the result of the threshold and dedupe stage.
func (el *EvaluationLogger) LogFilterApplied(rowsBefore, rowsAfter, duplicatesDropped int) {
	el.WithFields(logrus.Fields{
		"rows_before":        rowsBefore,
		"rows_after":         rowsAfter,
		"duplicates_dropped": duplicatesDropped,
	}).Info("Portfolio filter applied")
}

// LogPortfolioSelected logs the final card.
func (el *EvaluationLogger) LogPortfolioSelected(picks, overs, unders int, avgEV, avgConfidence float64) {
	el.WithFields(logrus.Fields{
		"num_picks":      picks,
		"num_overs":      overs,
		"num_unders":     unders,
		"avg_ev":         avgEV,
		"avg_confidence": avgConfidence,
	}).Info("Portfolio selected")
}
