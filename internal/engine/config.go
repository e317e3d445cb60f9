package engine

import (
	"fmt"
	"math"
	"strings"
)

// Default engine settings.
const (
	DefaultLambda             = 0.05
	DefaultDisagreementWeight = 1.0
	DefaultThreshold          = 0.60
	DefaultMinQuorum          = 1
	DefaultReference          = 0.5
	DefaultSteepness          = 10.0
	DefaultMidpoint           = 0.25
)

// Config holds the tunables consumed by the aggregation engine.
type Config struct {
	Lambda             float64
	DisagreementWeight float64
	Threshold          float64
	MinQuorum          int
	Squash             SquashConfig
}

// SquashConfig selects and parameterizes the confidence squashing strategy.
type SquashConfig struct {
	Kind      SquashKind
	Reference float64
	Steepness float64
	Midpoint  float64
	// Custom replaces the built-in strategy. Kind then only labels it.
	Custom Squasher
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Lambda:             DefaultLambda,
		DisagreementWeight: DefaultDisagreementWeight,
		Threshold:          DefaultThreshold,
		MinQuorum:          DefaultMinQuorum,
		Squash: SquashConfig{
			Kind:      SquashLinear,
			Reference: DefaultReference,
			Steepness: DefaultSteepness,
			Midpoint:  DefaultMidpoint,
		},
	}
}

// Issue is a single invalid engine setting.
type Issue struct {
	Field   string
	Message string
}

// ConfigurationError reports invalid engine settings.
type ConfigurationError struct {
	Issues []Issue
}

// Error renders every issue on one line.
func (err *ConfigurationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "invalid engine configuration"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return "invalid engine configuration: " + strings.Join(parts, "; ")
}

// Validate checks every range constraint and returns a *ConfigurationError.
func (cfg Config) Validate() error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if !finite(cfg.Lambda) || cfg.Lambda <= 0 {
		add("lambda_smoothing", "must be greater than 0")
	}
	if !inUnitInterval(cfg.DisagreementWeight) {
		add("disagreement_weight", "must be within [0, 1]")
	}
	if !inUnitInterval(cfg.Threshold) {
		add("confidence_threshold", "must be within [0, 1]")
	}
	if cfg.MinQuorum < 0 {
		add("min_paths_quorum", "must not be negative")
	}
	if _, err := NewSquasher(cfg.Squash); err != nil {
		add("squash", err.Error())
	}

	if len(issues) > 0 {
		return &ConfigurationError{Issues: issues}
	}
	return nil
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

func inUnitInterval(value float64) bool {
	return finite(value) && value >= 0 && value <= 1
}
