// Package cli implements the vireon command line.
package cli

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one vireon subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(cmd *Command, args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a subcommand and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	switch {
	case len(args) == 0:
		printUsage(stdout)
		return ExitUsage
	case isHelpArg(args[0]):
		printUsage(stdout)
		return ExitOK
	}
	for _, cmd := range commands {
		if cmd.Name == args[0] {
			return cmd.Run(cmd, args[1:], stdout, stderr)
		}
	}
	fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
	printUsage(stderr)
	return ExitUsage
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, "Usage:\n  vireon <command> [options]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name, cmd.Summary)
	}
	_ = tw.Flush()
	fmt.Fprintln(w, "\nRun \"vireon <command> --help\" for details.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

// parseInterspersed parses flags that may appear before or after positional
// arguments and returns the positional arguments in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

var commands = []*Command{
	{
		Name:    "init",
		Summary: "Scaffold .vireon/config.yml and example questions",
		Usage: []string{
			"vireon init [--spec <path>]",
		},
		Run: runInit,
	},
	{
		Name:    "validate",
		Summary: "Validate the config and optionally a questions file",
		Usage: []string{
			"vireon validate [--spec <path>] [--questions <file>]",
		},
		Run: runValidate,
	},
	{
		Name:    "eval",
		Summary: "Answer a question set with calibrated abstention",
		Usage: []string{
			"vireon eval <questions_file> [--spec <path>] [--provider <name>] [--model <name>] [--limit <n>]",
			"vireon eval <questions_file> [--ui auto|live|plain] [--verbose] [--log <file>] [--no-color]",
			"vireon eval <questions_file> [--output-dir <dir>] [--metrics] [--duckdb <file>]",
		},
		Run: runEval,
	},
	{
		Name:    "score",
		Summary: "Score a results file against a question set",
		Usage: []string{
			"vireon score --questions <file> <results_file> [--json]",
		},
		Run: runScore,
	},
	{
		Name:    "stats",
		Summary: "Describe a question set",
		Usage: []string{
			"vireon stats <questions_file> [--json]",
		},
		Run: runStats,
	},
	{
		Name:    "report",
		Summary: "Summarize runs stored in DuckDB",
		Usage: []string{
			"vireon report --duckdb <file> [--run <run_id>] [--limit <n>] [--no-color]",
		},
		Run: runReport,
	},
}
