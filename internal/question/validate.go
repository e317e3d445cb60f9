package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a questions file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("questions validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Normalize trims fields, upper-cases answer letters, assigns positional ids
// to records without one and validates the result.
func Normalize(questions []Question) ([]Question, error) {
	collector := &issueCollector{}
	if len(questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	out := make([]Question, len(questions))
	seenIDs := map[string]int{}
	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%04d", i+1)
		}
		if first, exists := seenIDs[q.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q (first used by questions[%d])", q.ID, first))
		} else {
			seenIDs[q.ID] = i
		}

		q.Prompt = strings.TrimSpace(q.Prompt)
		if q.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}

		q.Options = normalizeStringSlice(q.Options)
		if len(q.Options) > MaxOptions {
			collector.add(prefix+".options", fmt.Sprintf("must include at most %d entries", MaxOptions))
		}
		for optionIndex, option := range q.Options {
			if option == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, optionIndex), "is required")
			}
		}

		q.Answer = strings.ToUpper(strings.TrimSpace(q.Answer))
		if q.Answer != "" && len(q.Options) <= MaxOptions {
			letters := q.OptionLetters(optionAlphabet)
			if len(q.Answer) != 1 || !strings.Contains(letters, q.Answer) {
				collector.add(prefix+".answer", fmt.Sprintf("must be one of %s, got %q", strings.Join(strings.Split(letters, ""), ", "), q.Answer))
			}
		}

		q.Category = strings.TrimSpace(q.Category)
		out[i] = q
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeStringSlice(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
