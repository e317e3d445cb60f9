package live

import (
	"time"

	"vireon/internal/runner"
)

// Messages the Controller sends into the Bubble Tea program.
type (
	runStartedMsg struct {
		runID     string
		model     string
		questions int
		at        time.Time
	}
	questionMsg    runner.QuestionEvent
	runFinishedMsg runner.Summary
	tickMsg        time.Time
)
