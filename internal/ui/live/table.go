package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	minQuestionWidth = 20
	defaultWidth     = 120
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// columnsForWidth sizes the question column to fill the terminal width.
func columnsForWidth(width int) []table.Column {
	if width <= 0 {
		width = defaultWidth
	}
	fixed := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Status", Width: 28},
		{Title: "Paths", Width: 18},
		{Title: "Answer", Width: 8},
		{Title: "Conf", Width: 6},
		{Title: "Elapsed", Width: 9},
	}
	used := 0
	for _, column := range fixed {
		used += column.Width + 2
	}
	question := max(width-used-2, minQuestionWidth)
	return []table.Column{
		fixed[0],
		{Title: "Question", Width: question},
		fixed[1],
		fixed[2],
		fixed[3],
		fixed[4],
		fixed[5],
	}
}

// defaultColumns returns columns for an unknown terminal width.
func defaultColumns() []table.Column {
	return columnsForWidth(defaultWidth)
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool, questionWidth int) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		answer, confidence := formatAnswer(row)
		rows = append(rows, table.Row{
			formatQuestionID(row),
			formatQuestionText(row.Text, questionWidth),
			formatStatus(row, noColor),
			formatPaths(row),
			answer,
			confidence,
			formatRowDuration(row, now),
		})
	}
	return rows
}
