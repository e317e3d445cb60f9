//go:build cucumber

package engine

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/cucumber/godog"
)

// TestEngineScenarios runs the aggregation feature scenarios.
func TestEngineScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "spec", "features", "engine.feature")
	suite := godog.TestSuite{
		Name:                "engine",
		ScenarioInitializer: InitializeEngineScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeEngineScenario wires steps for engine feature scenarios.
func InitializeEngineScenario(ctx *godog.ScenarioContext) {
	state := &engineScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the default engine configuration$`, state.givenDefaultConfig)
	ctx.Step(`^the confidence threshold is ([0-9.]+)$`, state.givenThreshold)
	ctx.Step(`^the minimum quorum is (\d+)$`, state.givenQuorum)
	ctx.Step(`^(\d+) paths? votes? "([^"]+)" with verification ([0-9.]+) and cost ([0-9.]+)$`, state.givenPaths)
	ctx.Step(`^(\d+) failed paths?$`, state.givenFailedPaths)
	ctx.Step(`^the paths are evaluated$`, state.whenEvaluated)
	ctx.Step(`^candidate "([^"]+)" has raw score ([0-9.]+)$`, state.thenRawScore)
	ctx.Step(`^the disagreement is ([0-9.]+)$`, state.thenDisagreement)
	ctx.Step(`^the confidence is ([0-9.]+)$`, state.thenConfidence)
	ctx.Step(`^the engine abstains$`, state.thenAbstains)
	ctx.Step(`^the engine abstains with reason "([^"]+)"$`, state.thenAbstainsWithReason)
	ctx.Step(`^the selected answer is "([^"]+)"$`, state.thenSelected)
}

// engineScenarioState holds scenario state for engine feature tests.
type engineScenarioState struct {
	cfg      Config
	outcomes []PathOutcome
	result   EvaluationResult
}

func (s *engineScenarioState) reset() {
	s.cfg = DefaultConfig()
	s.outcomes = nil
	s.result = EvaluationResult{}
}

func (s *engineScenarioState) givenDefaultConfig() error {
	s.cfg = DefaultConfig()
	return nil
}

func (s *engineScenarioState) givenThreshold(value string) error {
	threshold, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	s.cfg.Threshold = threshold
	return nil
}

func (s *engineScenarioState) givenQuorum(count int) error {
	s.cfg.MinQuorum = count
	return nil
}

func (s *engineScenarioState) givenPaths(count int, value, verification, cost string) error {
	v, err := strconv.ParseFloat(verification, 64)
	if err != nil {
		return err
	}
	c, err := strconv.ParseFloat(cost, 64)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		s.outcomes = append(s.outcomes, PathOutcome{Value: value, VerificationScore: v, InfoCost: c, Succeeded: true})
	}
	return nil
}

func (s *engineScenarioState) givenFailedPaths(count int) error {
	for i := 0; i < count; i++ {
		s.outcomes = append(s.outcomes, PathOutcome{Succeeded: false})
	}
	return nil
}

func (s *engineScenarioState) whenEvaluated() error {
	eng, err := New(s.cfg)
	if err != nil {
		return err
	}
	s.result = eng.Evaluate(s.outcomes)
	return nil
}

func (s *engineScenarioState) thenRawScore(value, expected string) error {
	for _, candidate := range s.result.Candidates {
		if candidate.Value == value {
			return expectRounded("raw score", candidate.RawScore, expected)
		}
	}
	return fmt.Errorf("candidate %q not found", value)
}

func (s *engineScenarioState) thenDisagreement(expected string) error {
	return expectRounded("disagreement", s.result.Disagreement, expected)
}

func (s *engineScenarioState) thenConfidence(expected string) error {
	return expectRounded("confidence", s.result.Confidence, expected)
}

func (s *engineScenarioState) thenAbstains() error {
	if !s.result.Abstained || s.result.SelectedValue != Abstain {
		return fmt.Errorf("expected abstention, got %+v", s.result)
	}
	return nil
}

func (s *engineScenarioState) thenAbstainsWithReason(reason string) error {
	if err := s.thenAbstains(); err != nil {
		return err
	}
	if string(s.result.AbstainReason) != reason {
		return fmt.Errorf("expected reason %q, got %q", reason, s.result.AbstainReason)
	}
	return nil
}

func (s *engineScenarioState) thenSelected(value string) error {
	if s.result.Abstained || s.result.SelectedValue != value {
		return fmt.Errorf("expected %q, got %+v", value, s.result)
	}
	return nil
}

// expectRounded compares actual to expected at the precision expected is written with.
func expectRounded(label string, actual float64, expected string) error {
	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	decimals := 0
	for i := len(expected) - 1; i >= 0 && expected[i] != '.'; i-- {
		decimals++
	}
	if decimals == len(expected) {
		decimals = 0
	}
	tolerance := 0.5 * math.Pow(10, -float64(decimals))
	if math.Abs(actual-want) > tolerance {
		return fmt.Errorf("expected %s %s, got %.6f", label, expected, actual)
	}
	return nil
}
