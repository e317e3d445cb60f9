package config

import "strings"

// Issue is one invalid config field, named by its YAML path.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string { return i.Field + ": " + i.Message }

// ValidationError lists every invalid field found in one pass.
type ValidationError struct {
	Issues []Issue
}

// Error prints one issue per line.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	var b strings.Builder
	for i, issue := range err.Issues {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

type issueCollector []Issue

func (c *issueCollector) add(field, message string) {
	*c = append(*c, Issue{Field: field, Message: message})
}

func (c issueCollector) result() error {
	if len(c) == 0 {
		return nil
	}
	return &ValidationError{Issues: c}
}
