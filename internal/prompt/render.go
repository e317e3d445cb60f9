package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// System prompts for the two roles.
const (
	ReasoningSystem = "You are a careful, technical problem-solver trained to solve PhD-level questions. Avoid guessing; reason explicitly."
	VerifierSystem  = "You are a strict, unemotional checker. You do not change answers; you only evaluate if a proposed letter is correct."
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Option is one labelled answer option.
type Option struct {
	Letter string
	Text   string
}

type promptData struct {
	Question string
	Options  []Option
	Proposed string
}

// LabelOptions pairs options with letters. Options beyond the alphabet are
// dropped.
func LabelOptions(options []string, letters string) []Option {
	labelled := make([]Option, 0, len(options))
	for i, text := range options {
		if i >= len(letters) {
			break
		}
		labelled = append(labelled, Option{Letter: letters[i : i+1], Text: text})
	}
	return labelled
}

// RenderReasoning builds the user prompt for one reasoning path.
func RenderReasoning(question string, options []Option) (string, error) {
	return render("reasoning.tmpl", promptData{Question: question, Options: options})
}

// RenderVerifier builds the user prompt asking whether proposed is correct.
func RenderVerifier(question string, options []Option, proposed string) (string, error) {
	return render("verifier.tmpl", promptData{Question: question, Options: options, Proposed: proposed})
}

func render(name string, data promptData) (string, error) {
	var builder strings.Builder
	if err := templates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return builder.String(), nil
}
