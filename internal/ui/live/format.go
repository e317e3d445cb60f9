package live

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vireon/internal/runner"
)

var statusColors = map[runner.QuestionEventType]lipgloss.Color{
	runner.QuestionQueued:    "246",
	runner.QuestionRunning:   "33",
	runner.QuestionAnswered:  "42",
	runner.QuestionAbstained: "220",
	runner.QuestionSkipped:   "246",
}

// formatQuestionID prefers the dataset id and falls back to Q01, Q02, ...
func formatQuestionID(row QuestionRow) string {
	if row.ID != "" {
		return row.ID
	}
	return fmt.Sprintf("Q%02d", row.Index+1)
}

// formatQuestionText collapses whitespace and cuts the text to limit runes.
func formatQuestionText(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if limit <= 3 || len(runes) <= limit {
		return flat
	}
	return string(runes[:limit-3]) + "..."
}

func formatStatus(row QuestionRow, noColor bool) string {
	label := statusLabel(row)
	if noColor {
		return label
	}
	color, ok := statusColors[row.Status]
	if !ok {
		color = colorMuted
	}
	if row.Correct != nil && !*row.Correct {
		color = "196"
	}
	return lipgloss.NewStyle().Foreground(color).Render(label)
}

func statusLabel(row QuestionRow) string {
	switch {
	case row.Status == runner.QuestionAnswered && row.Correct == nil:
		return "answered"
	case row.Status == runner.QuestionAnswered && *row.Correct:
		return "correct"
	case row.Status == runner.QuestionAnswered:
		return "incorrect"
	case row.Status == runner.QuestionAbstained && row.AbstainReason != "":
		return fmt.Sprintf("abstained (%s)", row.AbstainReason)
	default:
		return string(row.Status)
	}
}

func formatPaths(row QuestionRow) string {
	switch {
	case row.PathsDone == 0 && row.PathsFailed == 0:
		return ""
	case row.PathsFailed == 0:
		return fmt.Sprintf("%d ok", row.PathsDone)
	default:
		return fmt.Sprintf("%d ok / %d failed", row.PathsDone, row.PathsFailed)
	}
}

// formatAnswer returns the answer and confidence columns. Both stay blank
// until the question settles, and abstentions show a dash for the answer.
func formatAnswer(row QuestionRow) (string, string) {
	if !isTerminalStatus(row.Status) || row.Status == runner.QuestionSkipped {
		return "", ""
	}
	value := row.Value
	if row.Status == runner.QuestionAbstained {
		value = "-"
	}
	return value, fmt.Sprintf("%.2f", row.Confidence)
}

func formatRowDuration(row QuestionRow, now time.Time) string {
	switch {
	case row.StartedAt.IsZero():
		return ""
	case row.FinishedAt.IsZero():
		return formatDuration(now.Sub(row.StartedAt))
	default:
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
}
