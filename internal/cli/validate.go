package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"vireon/internal/config"
	"vireon/internal/question"
	"vireon/internal/spec"
)

// validateReport is what a successful validate run prints.
type validateReport struct {
	configPath string
	cfg        spec.Config
	questions  []question.Question
	checked    bool
}

// runValidate implements the validate command.
func runValidate(cmd *Command, args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}

	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	specPath := flags.String("spec", "", "Path to config file (default: search for .vireon/config.yml)")
	questionsPath := flags.String("questions", "", "Questions file to validate as well")
	if err := flags.Parse(args); err != nil {
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}
	if extra := flags.Args(); len(extra) > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(extra, " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}

	report, err := validateProject(*specPath, strings.TrimSpace(*questionsPath))
	if err != nil {
		fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
		return ExitError
	}
	report.print(stdout)
	return ExitOK
}

// validateProject loads the config and, when questionsPath is set, the
// question set. The first failure wins.
func validateProject(specPath, questionsPath string) (validateReport, error) {
	resolved, err := resolveSpecPath(specPath)
	if err != nil {
		return validateReport{}, err
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return validateReport{}, err
	}
	report := validateReport{configPath: resolved, cfg: cfg}
	if questionsPath == "" {
		return report, nil
	}
	report.questions, err = question.LoadFile(questionsPath)
	if err != nil {
		return validateReport{}, err
	}
	report.checked = true
	return report, nil
}

func (r validateReport) print(w io.Writer) {
	fmt.Fprintf(w, "Config OK (%s)\n", r.configPath)
	if !r.checked {
		return
	}
	fmt.Fprintf(w, "Questions OK (%d)\n", len(r.questions))
	letters := r.cfg.Solver.OptionLetters
	if n := questionsBeyondLetters(r.questions, letters); n > 0 {
		fmt.Fprintf(w, "Warning: %d question(s) have more options than solver.option_letters %q\n", n, letters)
	}
}

// questionsBeyondLetters counts questions whose options cannot all be labelled.
func questionsBeyondLetters(questions []question.Question, letters string) int {
	count := 0
	for _, q := range questions {
		if len(q.Options) > len(letters) {
			count++
		}
	}
	return count
}
