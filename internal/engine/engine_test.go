package engine

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func mustEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	eng, err := New(cfg)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

func paths(value string, n int, verification, cost float64) []PathOutcome {
	out := make([]PathOutcome, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, PathOutcome{Value: value, VerificationScore: verification, InfoCost: cost, Succeeded: true})
	}
	return out
}

func approx(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// TestEvaluateSplitVoteAbstains verifies the four-to-one split scenario.
func TestEvaluateSplitVoteAbstains(t *testing.T) {
	eng := mustEngine(t, DefaultConfig())
	outcomes := append(paths("B", 4, 0.9, 2), paths("C", 1, 0.8, 5)...)

	result := eng.Evaluate(outcomes)

	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(result.Candidates))
	}
	b, c := result.Candidates[0], result.Candidates[1]
	if b.Value != "B" || c.Value != "C" {
		t.Fatalf("unexpected ranking: %+v", result.Candidates)
	}
	if !approx(b.RawScore, 0.72/2.05, 1e-12) {
		t.Fatalf("expected B raw score %.6f, got %.6f", 0.72/2.05, b.RawScore)
	}
	if !approx(c.RawScore, 0.16/5.05, 1e-12) {
		t.Fatalf("expected C raw score %.6f, got %.6f", 0.16/5.05, c.RawScore)
	}
	if !approx(result.Disagreement, 0.7219, 1e-4) {
		t.Fatalf("expected disagreement ~0.722, got %.6f", result.Disagreement)
	}
	if !approx(result.Confidence, 0.1953, 1e-3) {
		t.Fatalf("expected confidence ~0.195, got %.6f", result.Confidence)
	}
	if !result.Abstained || result.SelectedValue != Abstain {
		t.Fatalf("expected abstain, got %+v", result)
	}
	if result.AbstainReason != ReasonBelowThreshold {
		t.Fatalf("expected below_threshold, got %q", result.AbstainReason)
	}
}

// TestEvaluateUnanimousAnswers verifies the unanimous scenario answers with full confidence.
func TestEvaluateUnanimousAnswers(t *testing.T) {
	eng := mustEngine(t, DefaultConfig())

	result := eng.Evaluate(paths("A", 5, 0.95, 1))

	if result.Disagreement != 0 {
		t.Fatalf("expected zero disagreement, got %f", result.Disagreement)
	}
	if !approx(result.Candidates[0].RawScore, 0.95/1.05, 1e-12) {
		t.Fatalf("unexpected raw score %f", result.Candidates[0].RawScore)
	}
	if result.Confidence != 1 {
		t.Fatalf("expected confidence 1, got %f", result.Confidence)
	}
	if result.Abstained || result.SelectedValue != "A" {
		t.Fatalf("expected answer A, got %+v", result)
	}
}

// TestEvaluateAllFailedAbstains verifies the all-failed degenerate case.
func TestEvaluateAllFailedAbstains(t *testing.T) {
	eng := mustEngine(t, DefaultConfig())
	outcomes := []PathOutcome{{Value: "A", VerificationScore: 1, Succeeded: false}, {Succeeded: false}}

	result := eng.Evaluate(outcomes)

	if !result.Abstained || result.Confidence != 0 {
		t.Fatalf("expected abstain with zero confidence, got %+v", result)
	}
	if result.AbstainReason != ReasonNoCandidates {
		t.Fatalf("expected no_candidates, got %q", result.AbstainReason)
	}
	if result.FailedCount != 2 || result.SucceededCount != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if result.Candidates == nil || len(result.Candidates) != 0 {
		t.Fatalf("expected empty candidate list, got %#v", result.Candidates)
	}
}

// TestEvaluateEmptyInput verifies an empty outcome set is handled.
func TestEvaluateEmptyInput(t *testing.T) {
	eng := mustEngine(t, DefaultConfig())
	result := eng.Evaluate(nil)
	if !result.Abstained || result.Confidence != 0 || result.SelectedValue != Abstain {
		t.Fatalf("expected abstain, got %+v", result)
	}
}

// TestEvaluateQuorumForcesAbstain verifies the quorum check overrides the formula.
func TestEvaluateQuorumForcesAbstain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinQuorum = 3
	eng := mustEngine(t, cfg)
	outcomes := append(paths("A", 2, 1, 0.1), PathOutcome{Succeeded: false})

	result := eng.Evaluate(outcomes)

	if !result.Abstained || result.AbstainReason != ReasonInsufficientQuorum {
		t.Fatalf("expected quorum abstain, got %+v", result)
	}
	if result.Confidence != 1 {
		t.Fatalf("expected confidence retained for diagnostics, got %f", result.Confidence)
	}
}

// TestEvaluateTieBreakIsLexicographic verifies identical candidates resolve to the smaller value.
func TestEvaluateTieBreakIsLexicographic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DisagreementWeight = 0
	cfg.Threshold = 0
	eng := mustEngine(t, cfg)
	outcomes := []PathOutcome{
		{Value: "D", VerificationScore: 0.7, InfoCost: 1, Succeeded: true},
		{Value: "B", VerificationScore: 0.7, InfoCost: 1, Succeeded: true},
	}
	for i := 0; i < 20; i++ {
		result := eng.Evaluate(outcomes)
		if result.SelectedValue != "B" {
			t.Fatalf("run %d: expected B, got %q", i, result.SelectedValue)
		}
		outcomes[0], outcomes[1] = outcomes[1], outcomes[0]
	}
}

// TestEvaluateOrderIndependent verifies permuting inputs yields identical results.
func TestEvaluateOrderIndependent(t *testing.T) {
	eng := mustEngine(t, DefaultConfig())
	outcomes := []PathOutcome{
		{Value: "A", VerificationScore: 0.1, InfoCost: 1.7, Succeeded: true},
		{Value: "A", VerificationScore: 0.3, InfoCost: 0.2, Succeeded: true},
		{Value: "A", VerificationScore: 0.7, InfoCost: 3.1, Succeeded: true},
		{Value: "B", VerificationScore: 0.9, InfoCost: 2.05, Succeeded: true},
		{Value: "B", VerificationScore: 0.2, InfoCost: 0.01, Succeeded: true},
		{Value: Unparseable, VerificationScore: 0, InfoCost: 4, Succeeded: true},
		{Value: "C", VerificationScore: 1, InfoCost: 1, Succeeded: false},
	}
	want := eng.Evaluate(outcomes)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		shuffled := append([]PathOutcome(nil), outcomes...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := eng.Evaluate(shuffled)
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("permutation %d changed result:\nwant %+v\ngot  %+v", i, want, got)
		}
	}
}

// TestEvaluateConfidenceBounded verifies confidence stays in [0, 1] for hostile inputs.
func TestEvaluateConfidenceBounded(t *testing.T) {
	linear := DefaultConfig()
	linear.Squash.Reference = 1e-9
	logistic := DefaultConfig()
	logistic.Squash.Kind = SquashLogistic
	logistic.DisagreementWeight = 0
	configs := []Config{DefaultConfig(), linear, logistic}

	values := []string{"A", "B", "C", Unparseable}
	specials := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -3, 0, 0.5, 1, 7}
	rng := rand.New(rand.NewSource(11))
	for _, cfg := range configs {
		eng := mustEngine(t, cfg)
		for i := 0; i < 300; i++ {
			n := rng.Intn(8)
			outcomes := make([]PathOutcome, n)
			for j := range outcomes {
				outcomes[j] = PathOutcome{
					Value:             values[rng.Intn(len(values))],
					VerificationScore: specials[rng.Intn(len(specials))],
					InfoCost:          specials[rng.Intn(len(specials))],
					Succeeded:         rng.Intn(4) != 0,
				}
			}
			result := eng.Evaluate(outcomes)
			if math.IsNaN(result.Confidence) || result.Confidence < 0 || result.Confidence > 1 {
				t.Fatalf("confidence out of range: %f for %+v", result.Confidence, outcomes)
			}
			if math.IsNaN(result.Disagreement) || result.Disagreement < 0 || result.Disagreement > 1 {
				t.Fatalf("disagreement out of range: %f", result.Disagreement)
			}
		}
	}
}

// TestEvaluateDisagreementWeightMonotonic verifies raising the penalty never raises confidence.
func TestEvaluateDisagreementWeightMonotonic(t *testing.T) {
	outcomes := append(paths("A", 3, 0.8, 0.5), paths("B", 2, 0.6, 0.5)...)
	previous := math.Inf(1)
	for step := 0; step <= 10; step++ {
		cfg := DefaultConfig()
		cfg.DisagreementWeight = float64(step) / 10
		result := mustEngine(t, cfg).Evaluate(outcomes)
		if result.Confidence > previous {
			t.Fatalf("beta=%.1f raised confidence from %f to %f", cfg.DisagreementWeight, previous, result.Confidence)
		}
		previous = result.Confidence
	}
}

// TestEvaluateUnparseableCanWin verifies unparseable paths form their own bucket.
func TestEvaluateUnparseableCanWin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 0
	eng := mustEngine(t, cfg)
	outcomes := append(paths(Unparseable, 3, 0.5, 1), paths("A", 1, 0.5, 1)...)

	result := eng.Evaluate(outcomes)

	if result.Candidates[0].Value != Unparseable {
		t.Fatalf("expected unparseable to rank first, got %+v", result.Candidates)
	}
	if result.SelectedValue != Unparseable {
		t.Fatalf("expected unparseable selection, got %q", result.SelectedValue)
	}
}

// TestNewRejectsInvalidConfig verifies range violations fail fast.
func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := Config{
		Lambda:             0,
		DisagreementWeight: 1.5,
		Threshold:          -0.1,
		MinQuorum:          -1,
		Squash:             SquashConfig{Kind: "cubic"},
	}
	_, err := New(cfg)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if len(cfgErr.Issues) != 5 {
		t.Fatalf("expected 5 issues, got %d: %v", len(cfgErr.Issues), cfgErr)
	}
}
