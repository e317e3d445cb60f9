package live

import (
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vireon/internal/runner"
)

// Controller drives a Bubble Tea program from runner callbacks. Messages are
// handed to the program with Send, which blocks until the UI loop accepts
// them and returns immediately once the program has exited.
type Controller struct {
	program *tea.Program
	done    chan struct{}
}

// Start runs the live UI on stdout in the alternate screen until the run
// finishes or Close is called.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	c := &Controller{
		program: tea.NewProgram(NewModel(opts), tea.WithOutput(stdout), tea.WithInput(nil), tea.WithAltScreen()),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		_, _ = c.program.Run()
	}()
	return c
}

// Close asks the program to quit. It is safe to call more than once.
func (c *Controller) Close() {
	if c != nil {
		c.program.Quit()
	}
}

// Wait blocks until the program has restored the terminal.
func (c *Controller) Wait() {
	if c != nil {
		<-c.done
	}
}

// OnRunStart implements runner.RunObserver.
func (c *Controller) OnRunStart(runID string, model string, questions int) {
	c.program.Send(runStartedMsg{runID: runID, model: model, questions: questions, at: time.Now()})
}

// OnQuestionEvent implements runner.RunObserver.
func (c *Controller) OnQuestionEvent(event runner.QuestionEvent) {
	c.program.Send(questionMsg(event))
}

// OnRunEnd implements runner.RunObserver. The model quits after folding in
// the summary.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.program.Send(runFinishedMsg(results.Summary))
}
