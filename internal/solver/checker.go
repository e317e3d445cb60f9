package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"vireon/internal/backend"
	"vireon/internal/engine"
	"vireon/internal/prompt"
	"vireon/internal/question"
)

// ErrNoVerdicts is returned when every verification call failed.
var ErrNoVerdicts = errors.New("no verification succeeded")

// Checker scores how likely a proposed value is correct, in [0,1].
type Checker interface {
	Check(ctx context.Context, q question.Question, value string) (float64, error)
}

// CheckerOptions tune an LLMChecker.
type CheckerOptions struct {
	Verifications int
	Temperature   float64
	OptionLetters string
	MaxTokens     int
}

// LLMChecker asks a backend model to grade a proposed letter several times.
type LLMChecker struct {
	model backend.Model
	opts  CheckerOptions
}

// NewLLMChecker builds a checker over model.
func NewLLMChecker(model backend.Model, opts CheckerOptions) *LLMChecker {
	if opts.Verifications < 1 {
		opts.Verifications = 1
	}
	return &LLMChecker{model: model, opts: opts}
}

// Check returns 0.5+0.5*mean(verdicts). Failed calls are skipped; if all of
// them fail the joined errors are returned. Unparseable values score 0
// without calling the model.
func (c *LLMChecker) Check(ctx context.Context, q question.Question, value string) (float64, error) {
	if value == engine.Unparseable || value == "" {
		return 0, nil
	}
	letters := q.OptionLetters(c.opts.OptionLetters)
	userPrompt, err := prompt.RenderVerifier(q.Prompt, prompt.LabelOptions(q.Options, letters), value)
	if err != nil {
		return 0, err
	}

	verdicts := make([]int, 0, c.opts.Verifications)
	var failures []error
	for i := 0; i < c.opts.Verifications; i++ {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		resp, err := c.model.Complete(ctx, backend.Request{
			Purpose:     backend.PurposeVerify,
			System:      prompt.VerifierSystem,
			User:        userPrompt,
			Temperature: c.opts.Temperature,
			MaxTokens:   c.opts.MaxTokens,
		})
		if err != nil {
			failures = append(failures, err)
			continue
		}
		verdicts = append(verdicts, ParseVerdict(resp.Text))
	}
	if len(verdicts) == 0 {
		return 0, fmt.Errorf("check %s value %s: %w", q.ID, value, errors.Join(append([]error{ErrNoVerdicts}, failures...)...))
	}
	return VerificationScore(verdicts), nil
}

// ParseVerdict maps a verifier response to +1 (CORRECT), -1 (INCORRECT) or 0.
// The leading word decides; otherwise the response must mention exactly one
// of the two verdicts.
func ParseVerdict(text string) int {
	upper := strings.ToUpper(strings.TrimSpace(text))
	words := strings.FieldsFunc(upper, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '_'
	})
	if len(words) > 0 {
		switch words[0] {
		case "CORRECT":
			return 1
		case "INCORRECT":
			return -1
		}
	}
	hasCorrect, hasIncorrect := false, false
	for _, word := range words {
		switch word {
		case "CORRECT":
			hasCorrect = true
		case "INCORRECT":
			hasIncorrect = true
		}
	}
	switch {
	case hasCorrect && !hasIncorrect:
		return 1
	case hasIncorrect && !hasCorrect:
		return -1
	default:
		return 0
	}
}

// VerificationScore shifts the mean verdict from [-1,1] into [0,1].
func VerificationScore(verdicts []int) float64 {
	if len(verdicts) == 0 {
		return 0
	}
	sum := 0
	for _, verdict := range verdicts {
		sum += verdict
	}
	score := 0.5 + 0.5*float64(sum)/float64(len(verdicts))
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
