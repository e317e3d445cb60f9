package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SquashKind names a squashing strategy.
type SquashKind string

const (
	SquashLinear   SquashKind = "linear"
	SquashLogistic SquashKind = "logistic"
	// SquashCustom is recorded for a SquashConfig.Custom strategy left unnamed.
	SquashCustom SquashKind = "custom"
)

// Squasher maps a raw score onto [0, 1]. Implementations must be monotonic.
type Squasher interface {
	Squash(raw float64) float64
}

// SquasherFunc adapts a function to the Squasher interface.
type SquasherFunc func(raw float64) float64

// Squash calls f(raw).
func (f SquasherFunc) Squash(raw float64) float64 {
	return f(raw)
}

// builtinSquashers is read-only after package init.
var builtinSquashers = map[SquashKind]func(cfg SquashConfig) (Squasher, error){
	SquashLinear:   buildLinear,
	SquashLogistic: buildLogistic,
}

// SquashKinds lists the built-in strategy names in sorted order.
func SquashKinds() []string {
	kinds := make([]string, 0, len(builtinSquashers))
	for kind := range builtinSquashers {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	return kinds
}

// Canonical trims and lower-cases Kind. An empty Kind becomes SquashLinear,
// or SquashCustom when Custom is set.
func (cfg SquashConfig) Canonical() SquashConfig {
	cfg.Kind = SquashKind(strings.ToLower(strings.TrimSpace(string(cfg.Kind))))
	if cfg.Kind == "" {
		cfg.Kind = SquashLinear
		if cfg.Custom != nil {
			cfg.Kind = SquashCustom
		}
	}
	return cfg
}

// NewSquasher returns cfg.Custom when set, otherwise the built-in strategy
// selected by cfg.Kind.
func NewSquasher(cfg SquashConfig) (Squasher, error) {
	if cfg.Custom != nil {
		return cfg.Custom, nil
	}
	kind := cfg.Canonical().Kind
	build, ok := builtinSquashers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q (expected one of %s)", cfg.Kind, strings.Join(SquashKinds(), ", "))
	}
	return build(cfg)
}

func buildLinear(cfg SquashConfig) (Squasher, error) {
	reference := cfg.Reference
	if !finite(reference) || reference <= 0 {
		return nil, fmt.Errorf("reference must be greater than 0")
	}
	return SquasherFunc(func(raw float64) float64 {
		return clamp01(raw / reference)
	}), nil
}

func buildLogistic(cfg SquashConfig) (Squasher, error) {
	if !finite(cfg.Steepness) || cfg.Steepness <= 0 {
		return nil, fmt.Errorf("steepness must be greater than 0")
	}
	if !finite(cfg.Midpoint) {
		return nil, fmt.Errorf("midpoint must be finite")
	}
	steepness, midpoint := cfg.Steepness, cfg.Midpoint
	return SquasherFunc(func(raw float64) float64 {
		return clamp01(1 / (1 + math.Exp(-steepness*(raw-midpoint))))
	}), nil
}

// clamp01 bounds value to [0, 1]; NaN maps to 0.
func clamp01(value float64) float64 {
	switch {
	case math.IsNaN(value), value <= 0:
		return 0
	case value >= 1:
		return 1
	default:
		return value
	}
}
