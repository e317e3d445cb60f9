package runner

import "time"

// QuestionEventType identifies a question status update for observers.
type QuestionEventType string

const (
	// QuestionQueued marks a question known but not yet started.
	QuestionQueued QuestionEventType = "queued"
	// QuestionRunning marks a question whose paths are being solved.
	QuestionRunning QuestionEventType = "running"
	// QuestionPathDone marks one path finishing successfully.
	QuestionPathDone QuestionEventType = "path_done"
	// QuestionPathFailed marks one path failing or timing out.
	QuestionPathFailed QuestionEventType = "path_failed"
	// QuestionAnswered marks a question the engine answered.
	QuestionAnswered QuestionEventType = "answered"
	// QuestionAbstained marks a question the engine abstained on.
	QuestionAbstained QuestionEventType = "abstained"
	// QuestionSkipped marks a question never started because the run stopped.
	QuestionSkipped QuestionEventType = "skipped"
)

// QuestionEvent carries a single status update for a question.
type QuestionEvent struct {
	QuestionIndex int
	QuestionID    string
	QuestionText  string
	Type          QuestionEventType
	PathIndex     int
	Value         string
	Latency       time.Duration
	Confidence    float64
	Disagreement  float64
	Correct       *bool
	AbstainReason string
	Error         string
	EmittedAt     time.Time
}

// RunObserver receives run lifecycle events for UI, metrics or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, model string, questions int)
	// OnQuestionEvent delivers a question status update. It may be called
	// concurrently from path workers.
	OnQuestionEvent(event QuestionEvent)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}

// MultiObserver fans events out to several observers in order.
type MultiObserver []RunObserver

// OnRunStart forwards to every observer.
func (m MultiObserver) OnRunStart(runID string, model string, questions int) {
	for _, observer := range m {
		if observer != nil {
			observer.OnRunStart(runID, model, questions)
		}
	}
}

// OnQuestionEvent forwards to every observer.
func (m MultiObserver) OnQuestionEvent(event QuestionEvent) {
	for _, observer := range m {
		if observer != nil {
			observer.OnQuestionEvent(event)
		}
	}
}

// OnRunEnd forwards to every observer.
func (m MultiObserver) OnRunEnd(results Results) {
	for _, observer := range m {
		if observer != nil {
			observer.OnRunEnd(results)
		}
	}
}

// emitter stamps and forwards events when an observer is set.
type emitter struct {
	observer RunObserver
	now      func() time.Time
}

func (e emitter) emit(event QuestionEvent) {
	if e.observer == nil {
		return
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = e.now()
	}
	e.observer.OnQuestionEvent(event)
}
