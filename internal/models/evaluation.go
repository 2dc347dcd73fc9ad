package models

// Family is the outcome distribution a prop was simulated with
type Family string

const (
	FamilyNone             Family = ""
	FamilyNormal           Family = "normal"
	FamilyPoisson          Family = "poisson"
	FamilyNegativeBinomial Family = "negative_binomial"
)

// AdjustedMoments is the context-adjusted mean and variance of a prop's
// statistic. It lives only for the duration of one evaluation.
type AdjustedMoments struct {
	Mean Value `json:"adj_mean"`
	Var  Value `json:"adj_var"`
}

// SimulationOutcome is the numeric result of evaluating one prop
type SimulationOutcome struct {
	ModelProb   Value   `json:"model_prob"`
	ImpliedProb Value   `json:"implied_prob"`
	Edge        Value   `json:"edge"`
	EVPerUnit   Value   `json:"ev_per_unit"`
	Confidence  float64 `json:"confidence"`
	Family      Family  `json:"family,omitempty"`
	NumSims     int     `json:"n_sims"`
}

// EvaluatedProp is a prop input augmented with its evaluation. It is created
// once per prop and run and never mutated afterwards.
type EvaluatedProp struct {
	PropInput
	AdjustedMoments
	SimulationOutcome
}

// IsOver reports whether the prop is on the over side
func (e EvaluatedProp) IsOver() bool {
	side, _ := ParseSide(string(e.Side))
	return side == SideOver
}

// IsUnder reports whether the prop is on the under side
func (e EvaluatedProp) IsUnder() bool {
	side, _ := ParseSide(string(e.Side))
	return side == SideUnder
}
