package runner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerColor  = lipgloss.Color("33")
	labelColor   = lipgloss.Color("244")
	goodColor    = lipgloss.Color("42")
	warnColor    = lipgloss.Color("220")
	badColor     = lipgloss.Color("196")
	summaryWidth = 22
)

// RenderSummary formats the run summary for the console. Styling is skipped
// when noColor is set.
func RenderSummary(results Results, noColor bool) string {
	summary := results.Summary
	lines := []string{
		stylize(fmt.Sprintf("Run %s | %s", results.RunID, results.Model), noColor, headerColor, true),
		row("Questions", fmt.Sprintf("%d", summary.QuestionsTotal), noColor, ""),
		row("Answered", fmt.Sprintf("%d", summary.Answered), noColor, ""),
		row("Abstained", fmt.Sprintf("%d%s", summary.Abstained, formatReasons(summary.AbstainReasons)), noColor, warnIf(summary.Abstained > 0)),
		row("Correct", fmt.Sprintf("%d/%d graded", summary.Correct, summary.Graded), noColor, ""),
		row("Accuracy", formatPercent(summary.Accuracy), noColor, ""),
		row("Selective accuracy", formatPercent(summary.SelectiveAccuracy), noColor, goodColor),
		row("Coverage", formatPercent(summary.Coverage), noColor, ""),
		row("ECE", fmt.Sprintf("%.4f", summary.ECE), noColor, ""),
		row("Mean confidence", fmt.Sprintf("%.3f", summary.MeanConfidence), noColor, ""),
		row("Mean disagreement", fmt.Sprintf("%.3f", summary.MeanDisagreement), noColor, ""),
	}
	if summary.PathsFailed > 0 {
		lines = append(lines, row("Failed paths", fmt.Sprintf("%d", summary.PathsFailed), noColor, badColor))
	}
	if results.Interrupted {
		lines = append(lines, stylize("Run interrupted; partial results", noColor, badColor, true))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func row(label, value string, noColor bool, color lipgloss.Color) string {
	padded := label + ":" + strings.Repeat(" ", max(summaryWidth-len(label)-1, 1))
	if noColor {
		return padded + value
	}
	labelText := lipgloss.NewStyle().Foreground(labelColor).Render(padded)
	if color == "" {
		return labelText + value
	}
	return labelText + lipgloss.NewStyle().Foreground(color).Render(value)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}

func warnIf(condition bool) lipgloss.Color {
	if condition {
		return warnColor
	}
	return ""
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value*100)
}

func formatReasons(reasons map[string]int) string {
	if len(reasons) == 0 {
		return ""
	}
	keys := make([]string, 0, len(reasons))
	for key := range reasons {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, reasons[key]))
	}
	return " (" + strings.Join(parts, " ") + ")"
}
