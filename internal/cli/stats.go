package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"

	"vireon/internal/question"
)

// runStats implements the stats command.
func runStats(cmd *Command, args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print statistics as JSON")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return ExitUsage
	}
	if len(positional) != 1 {
		fmt.Fprintln(stderr, "Usage: vireon stats <questions_file>")
		return ExitUsage
	}

	questions, err := question.LoadFile(positional[0])
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
		return ExitError
	}
	stats := question.ComputeStats(questions)

	if *asJSON {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(stats); err != nil {
			fmt.Fprintf(stderr, "Failed to encode stats: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
	fmt.Fprintf(stdout, "Questions: %d\n", stats.Questions)
	fmt.Fprintf(stdout, "With answer key: %d\n", stats.WithAnswerKey)
	fmt.Fprintln(stdout, "Categories:")
	for _, name := range question.SortedKeys(stats.Categories) {
		fmt.Fprintf(stdout, "  %-24s %d\n", name, stats.Categories[name])
	}
	fmt.Fprintln(stdout, "Options per question:")
	counts := make([]int, 0, len(stats.OptionCounts))
	for count := range stats.OptionCounts {
		counts = append(counts, count)
	}
	sort.Ints(counts)
	for _, count := range counts {
		fmt.Fprintf(stdout, "  %-24d %d\n", count, stats.OptionCounts[count])
	}
	if len(stats.AnswerDistribution) > 0 {
		fmt.Fprintln(stdout, "Answer keys:")
		for _, letter := range question.SortedKeys(stats.AnswerDistribution) {
			fmt.Fprintf(stdout, "  %-24s %d\n", letter, stats.AnswerDistribution[letter])
		}
	}
	fmt.Fprintln(stdout, "User fragility:")
	for _, level := range question.SortedKeys(stats.Fragility) {
		fmt.Fprintf(stdout, "  %-24s %d\n", level, stats.Fragility[level])
	}
	fmt.Fprintf(stdout, "Evaluation tags: %d must, %d must_not\n", stats.MustTags, stats.MustNotTags)
	return ExitOK
}
