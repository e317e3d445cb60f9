package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"vireon/internal/question"
	"vireon/internal/scoring"
)

// scoreOutput is the --json shape of the score command.
type scoreOutput struct {
	scoring.Report
	Skipped int `json:"skipped"`
}

// runScore implements the score command.
func runScore(cmd *Command, args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	questionsPath := fs.String("questions", "", "Questions file the results answer")
	asJSON := fs.Bool("json", false, "Print the report as JSON")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return ExitUsage
	}
	if len(positional) != 1 || strings.TrimSpace(*questionsPath) == "" {
		fmt.Fprintln(stderr, "Usage: vireon score --questions <file> <results_file>")
		return ExitUsage
	}

	questions, err := question.LoadFile(*questionsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
		return ExitError
	}
	predictions, err := scoring.LoadResults(positional[0])
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load results: %v\n", err)
		return ExitError
	}
	report := scoring.Score(questions, predictions)

	if *asJSON {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(scoreOutput{Report: report, Skipped: predictions.Skipped}); err != nil {
			fmt.Fprintf(stderr, "Failed to encode report: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
	fmt.Fprintf(stdout, "Scored questions : %d\n", report.N)
	fmt.Fprintf(stdout, "Accuracy         : %.2f%%\n", report.Accuracy*100)
	fmt.Fprintf(stdout, "Calibration (ECE): %.3f\n", report.ECE)
	fmt.Fprintf(stdout, "Missing results  : %d\n", report.Missing)
	if predictions.Skipped > 0 {
		fmt.Fprintf(stdout, "Ungraded rows    : %d\n", predictions.Skipped)
	}
	return ExitOK
}
