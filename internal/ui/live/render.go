package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorHeader  = lipgloss.Color("33")
	colorCounts  = lipgloss.Color("242")
	colorMetrics = lipgloss.Color("42")
	colorMuted   = lipgloss.Color("244")
)

func renderHeader(state State, now time.Time, noColor bool) string {
	parts := []string{"Run " + state.RunID}
	if state.Model != "" {
		parts = append(parts, "Model: "+state.Model)
	}
	if state.Questions > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d questions", state.Counts.Done, state.Questions))
	}
	if !state.StartedAt.IsZero() {
		parts = append(parts, "Elapsed: "+formatDuration(now.Sub(state.StartedAt)))
	}
	return stylize(strings.Join(parts, " | "), noColor, colorHeader)
}

func renderSummary(state State, noColor bool) string {
	c := state.Counts
	line := fmt.Sprintf(
		"Queued: %d Running: %d Answered: %d Abstained: %d Correct: %d Incorrect: %d Skipped: %d Paths: %d ok / %d failed",
		c.Queued, c.Running, c.Answered, c.Abstained, c.Correct, c.Incorrect, c.Skipped,
		state.PathsDone, state.PathsFailed,
	)
	return stylize(line, noColor, colorCounts)
}

// renderResultLine is empty until the run summary arrives.
func renderResultLine(state State, noColor bool) string {
	s := state.Summary
	if s == nil {
		return ""
	}
	line := fmt.Sprintf("Accuracy %.1f%% | Selective %.1f%% | Coverage %.1f%% | ECE %.3f",
		100*s.Accuracy, 100*s.SelectiveAccuracy, 100*s.Coverage, s.ECE)
	return stylize(line, noColor, colorMetrics)
}

func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, colorMuted)
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor || text == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
