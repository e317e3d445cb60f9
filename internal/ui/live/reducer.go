package live

import (
	"fmt"
	"slices"
	"time"

	"vireon/internal/runner"
)

// Reduce returns state with event applied. Rows are created on demand so
// events may arrive before the queued announcement for their index.
func Reduce(state State, event runner.QuestionEvent) State {
	if event.QuestionIndex < 0 {
		return state
	}
	state.Rows = slices.Clone(state.Rows)
	for len(state.Rows) <= event.QuestionIndex {
		state.Rows = append(state.Rows, QuestionRow{Index: len(state.Rows), Status: runner.QuestionQueued})
	}

	row := &state.Rows[event.QuestionIndex]
	row.apply(event)
	switch event.Type {
	case runner.QuestionPathDone:
		state.PathsDone++
	case runner.QuestionPathFailed:
		state.PathsFailed++
	}

	state.Counts = StatusCounts{}
	for _, r := range state.Rows {
		state.Counts.add(r)
	}
	if message := describeEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

func (row *QuestionRow) apply(event runner.QuestionEvent) {
	if row.ID == "" {
		row.ID = event.QuestionID
	}
	if row.Text == "" {
		row.Text = event.QuestionText
	}
	switch {
	case event.Type == runner.QuestionPathDone:
		row.PathsDone++
	case event.Type == runner.QuestionPathFailed:
		row.PathsFailed++
	case event.Type == runner.QuestionRunning:
		row.Status = event.Type
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
	case isTerminalStatus(event.Type):
		row.Status = event.Type
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Value = event.Value
		row.Confidence = event.Confidence
		row.Disagreement = event.Disagreement
		row.Correct = event.Correct
		row.AbstainReason = event.AbstainReason
		row.Error = event.Error
	default:
		row.Status = event.Type
	}
}

func (c *StatusCounts) add(row QuestionRow) {
	switch row.Status {
	case runner.QuestionQueued:
		c.Queued++
	case runner.QuestionRunning:
		c.Running++
	case runner.QuestionAnswered:
		c.Done++
		c.Answered++
		if row.Correct != nil && *row.Correct {
			c.Correct++
		} else if row.Correct != nil {
			c.Incorrect++
		}
	case runner.QuestionAbstained:
		c.Done++
		c.Abstained++
	case runner.QuestionSkipped:
		c.Done++
		c.Skipped++
	}
}

func isTerminalStatus(status runner.QuestionEventType) bool {
	return status == runner.QuestionAnswered || status == runner.QuestionAbstained || status == runner.QuestionSkipped
}

// describeEvent is the footer text for notable events; empty for the rest.
func describeEvent(event runner.QuestionEvent) string {
	q := event.QuestionIndex + 1
	switch event.Type {
	case runner.QuestionPathFailed:
		if event.Error == "" {
			return fmt.Sprintf("Q%d path %d failed", q, event.PathIndex)
		}
		return fmt.Sprintf("Q%d path %d failed: %s", q, event.PathIndex, event.Error)
	case runner.QuestionAnswered:
		return fmt.Sprintf("Q%d answered %s (confidence %.2f)", q, event.Value, event.Confidence)
	case runner.QuestionAbstained:
		return fmt.Sprintf("Q%d abstained (%s)", q, event.AbstainReason)
	case runner.QuestionSkipped:
		return fmt.Sprintf("Q%d skipped", q)
	default:
		return ""
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(100 * time.Millisecond).String()
}
