package portfolio

import (
	"github.com/google/uuid"

	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// Portfolio is a selected daily card
type Portfolio struct {
	Summary    Summary                `json:"summary"`
	Picks      []models.EvaluatedProp `json:"picks"`
	Stakes     []Stake                `json:"stakes"`
	Candidates int                    `json:"candidates"`
	Passed     int                    `json:"passed"`
	Duplicates int                    `json:"duplicates_dropped"`
}

// Build validates c, then filters, dedupes and selects rows into a card with
// a fresh run ID.
func Build(rows []models.EvaluatedProp, c Constraints) (Portfolio, error) {
	return BuildForRun(uuid.NewString(), rows, c)
}

// BuildForRun is Build under a caller-supplied run ID
func BuildForRun(runID string, rows []models.EvaluatedProp, c Constraints) (Portfolio, error) {
	if err := c.Validate(); err != nil {
		metrics.RecordPortfolioRun("invalid_config")
		return Portfolio{}, err
	}

	filtered, dropped := Filter(rows, c)
	picks := Select(filtered, c)
	summary := Summarize(runID, picks, c.UnitStake)

	metrics.RecordPortfolioRun("success")
	metrics.RecordPortfolio(summary.Overs, summary.Unders, summary.AvgEV, summary.AvgConfidence)

	return Portfolio{
		Summary:    summary,
		Picks:      picks,
		Stakes:     StakePlan(picks, c.UnitStake),
		Candidates: len(rows),
		Passed:     len(filtered) + dropped,
		Duplicates: dropped,
	}, nil
}
