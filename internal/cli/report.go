package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"vireon/internal/duckdb"
	"vireon/internal/runner"
)

// runReport implements the report command.
func runReport(cmd *Command, args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("duckdb", "", "DuckDB database written by eval --duckdb")
	runID := fs.String("run", "", "Break one run down by category")
	limit := fs.Int("limit", 20, "Maximum runs to list (0 for all)")
	noColor := fs.Bool("no-color", false, "Disable ANSI colors")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() > 0 || strings.TrimSpace(*dbPath) == "" {
		fmt.Fprintln(stderr, "Usage: vireon report --duckdb <file>")
		return ExitUsage
	}
	if _, err := os.Stat(*dbPath); err != nil {
		fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
		return ExitError
	}

	ctx := context.Background()
	db, err := duckdb.Open(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
		return ExitError
	}
	defer db.Close()

	plain := *noColor || !runner.ShouldUseStyling(stdout)
	if id := strings.TrimSpace(*runID); id != "" {
		rows, err := duckdb.CategoryOutcomes(ctx, db, id)
		if err != nil {
			fmt.Fprintf(stderr, "Report failed: %v\n", err)
			return ExitError
		}
		if len(rows) == 0 {
			fmt.Fprintf(stderr, "No stored run %s\n", id)
			return ExitError
		}
		fmt.Fprintln(stdout, renderCategoryTable(rows, plain))
		return ExitOK
	}

	runs, err := duckdb.ListRuns(ctx, db, *limit)
	if err != nil {
		fmt.Fprintf(stderr, "Report failed: %v\n", err)
		return ExitError
	}
	if len(runs) == 0 {
		fmt.Fprintln(stdout, "No runs stored.")
		return ExitOK
	}
	fmt.Fprintln(stdout, renderRunTable(runs, plain))
	return ExitOK
}

func renderRunTable(runs []duckdb.RunRow, plain bool) string {
	t := newReportTable(plain).Headers("Run", "Provider", "Model", "Started", "Questions", "Answered", "Accuracy", "Selective", "Coverage", "ECE")
	for _, run := range runs {
		id := run.RunID
		if run.Interrupted {
			id += " *"
		}
		t.Row(
			id,
			run.Provider,
			run.Model,
			run.StartedAt.UTC().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", run.QuestionsTotal),
			fmt.Sprintf("%d", run.Answered),
			percent(run.Accuracy),
			percent(run.SelectiveAccuracy),
			percent(run.Coverage),
			fmt.Sprintf("%.3f", run.ECE),
		)
	}
	return t.Render()
}

func renderCategoryTable(rows []duckdb.CategoryRow, plain bool) string {
	t := newReportTable(plain).Headers("Category", "Questions", "Answered", "Correct", "Mean confidence")
	for _, row := range rows {
		t.Row(
			row.Category,
			fmt.Sprintf("%d", row.Questions),
			fmt.Sprintf("%d", row.Answered),
			fmt.Sprintf("%d", row.Correct),
			fmt.Sprintf("%.3f", row.MeanConfidence),
		)
	}
	return t.Render()
}

func newReportTable(plain bool) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder())
	if plain {
		return t.Border(lipgloss.ASCIIBorder())
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return t.StyleFunc(func(row, _ int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	})
}

func percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}
