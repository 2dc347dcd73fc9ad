// Package portfolio filters evaluated props and selects a bounded, ranked
// daily card.
package portfolio

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yourusername/prop-edge/internal/config"
)

// Constraints are the selection thresholds and side caps
type Constraints struct {
	MinModelProb      float64         `json:"min_model_prob" validate:"gte=0,lte=1"`
	MinEdge           float64         `json:"min_edge" validate:"gte=-1,lte=1"`
	MinEV             float64         `json:"min_ev"`
	MinConfidence     float64         `json:"min_confidence" validate:"gte=0,lte=1"`
	MinMinutes        float64         `json:"min_minutes" validate:"gte=0"`
	MaxOvers          int             `json:"max_overs" validate:"gte=0"`
	MaxUnders         int             `json:"max_unders" validate:"gte=0"`
	MinOversFallback  int             `json:"min_overs_fallback" validate:"gte=0"`
	MinUndersFallback int             `json:"min_unders_fallback" validate:"gte=0"`
	UnitStake         decimal.Decimal `json:"unit_stake"`
}

// DefaultConstraints returns the standard daily card thresholds
func DefaultConstraints() Constraints {
	return Constraints{
		MinModelProb:      0.55,
		MinEdge:           0.03,
		MinEV:             0.02,
		MinConfidence:     0.5,
		MinMinutes:        15,
		MaxOvers:          12,
		MaxUnders:         6,
		MinOversFallback:  10,
		MinUndersFallback: 3,
		UnitStake:         decimal.NewFromInt(1),
	}
}

// FromConfig converts app config to portfolio constraints
func FromConfig(cfg *config.PortfolioConfig) (Constraints, error) {
	if cfg == nil {
		return Constraints{}, &ConfigurationError{Field: "portfolio", Reason: "configuration is required"}
	}
	stake, err := decimal.NewFromString(cfg.UnitStake)
	if err != nil {
		return Constraints{}, &ConfigurationError{Field: "unit_stake", Reason: err.Error()}
	}
	c := Constraints{
		MinModelProb:      cfg.MinModelProb,
		MinEdge:           cfg.MinEdge,
		MinEV:             cfg.MinEV,
		MinConfidence:     cfg.MinConfidence,
		MinMinutes:        cfg.MinMinutes,
		MaxOvers:          cfg.MaxOvers,
		MaxUnders:         cfg.MaxUnders,
		MinOversFallback:  cfg.MinOversFallback,
		MinUndersFallback: cfg.MinUndersFallback,
		UnitStake:         stake,
	}
	return c, c.Validate()
}

// ConfigurationError reports unusable constraints. It is raised before any
// row is filtered.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid portfolio constraint %s: %s", e.Field, e.Reason)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the constraints and returns a *ConfigurationError
func (c Constraints) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fe := validationErrors[0]
			return &ConfigurationError{
				Field:  fe.Field(),
				Reason: fmt.Sprintf("failed '%s' (value %v)", fe.Tag(), fe.Value()),
			}
		}
		return &ConfigurationError{Field: "constraints", Reason: err.Error()}
	}
	if c.UnitStake.IsNegative() {
		return &ConfigurationError{Field: "unit_stake", Reason: "must not be negative"}
	}
	return nil
}
