package simulation

import "math"

// FitKind tags the outcome of moment matching
type FitKind int

const (
	// FitFallback means the moments admit no negative binomial and the
	// caller should sample Poisson with the same mean.
	FitFallback FitKind = iota
	FitNegativeBinomial
)

// ParamFit is the result of mapping (mean, variance) onto a negative
// binomial NB(n, p) counting failures before the n-th success.
type ParamFit struct {
	Kind   FitKind
	N      float64
	P      float64
	Reason string
}

// Fallback reports whether the fit was rejected
func (f ParamFit) Fallback() bool {
	return f.Kind != FitNegativeBinomial
}

// NegBinParams moment-matches a negative binomial. It requires a positive
// mean and over-dispersion (variance > mean).
func NegBinParams(mean, variance float64) ParamFit {
	if mean <= 0 {
		return ParamFit{Kind: FitFallback, Reason: "non-positive mean"}
	}
	if variance <= mean {
		return ParamFit{Kind: FitFallback, Reason: "not over-dispersed"}
	}
	p := mean / variance
	n := mean * mean / (variance - mean)
	if p <= 0 || p >= 1 || math.IsNaN(p) {
		return ParamFit{Kind: FitFallback, Reason: "p outside (0,1)"}
	}
	if n <= 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return ParamFit{Kind: FitFallback, Reason: "invalid n"}
	}
	return ParamFit{Kind: FitNegativeBinomial, N: n, P: p}
}
