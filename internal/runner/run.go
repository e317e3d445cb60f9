package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"vireon/internal/engine"
	"vireon/internal/question"
	"vireon/internal/solver"
	"vireon/internal/vcs"
)

// RunDependencies are the collaborators a run needs. Solver, Checker and
// Engine are required.
type RunDependencies struct {
	Solver   solver.Solver
	Checker  solver.Checker
	Engine   *engine.Engine
	RunID    func() (string, error)
	Now      func() time.Time
	Observer RunObserver
}

// RunParams configures a run.
type RunParams struct {
	Provider         string
	Model            string
	QuestionsFile    string
	Source           *vcs.Provenance
	NumPaths         int
	Workers          int
	PathTimeout      time.Duration
	LatencyWeight    float64
	Verbose          bool
	VerboseWriter    io.Writer
	VerboseLogWriter io.Writer
	NoColor          bool
	Deps             RunDependencies
}

// Run evaluates questions one after another, fanning each question's paths
// out across workers. When ctx is cancelled the question in flight is still
// aggregated from the outcomes collected so far, the remaining questions are
// skipped, and the partial results are returned with ctx's error.
func Run(ctx context.Context, questions []question.Question, params RunParams) (Results, error) {
	if err := validateParams(params); err != nil {
		return Results{}, err
	}
	runID, err := pickRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	logger := newVerboseLogger(params)
	events := emitter{observer: params.Deps.Observer, now: now}

	engineCfg := params.Deps.Engine.Config()
	results := Results{
		RunID:         runID,
		Provider:      params.Provider,
		Model:         params.Model,
		QuestionsFile: params.QuestionsFile,
		Source:        params.Source,
		StartedAt:     now(),
		Settings: Settings{
			NumPaths:            params.NumPaths,
			Workers:             params.Workers,
			PathTimeoutSeconds:  params.PathTimeout.Seconds(),
			LatencyWeight:       params.LatencyWeight,
			LambdaSmoothing:     engineCfg.Lambda,
			DisagreementWeight:  engineCfg.DisagreementWeight,
			ConfidenceThreshold: engineCfg.Threshold,
			MinPathsQuorum:      engineCfg.MinQuorum,
			SquashKind:          string(engineCfg.Squash.Kind),
		},
		Questions: make([]QuestionResult, 0, len(questions)),
	}

	if params.Deps.Observer != nil {
		params.Deps.Observer.OnRunStart(runID, params.Model, len(questions))
	}
	for index, item := range questions {
		events.emit(QuestionEvent{QuestionIndex: index, QuestionID: item.ID, QuestionText: item.Prompt, Type: QuestionQueued})
	}
	logger.logf(styleQuestion, "Run %s provider=%s model=%s questions=%d paths=%d workers=%d",
		runID, params.Provider, params.Model, len(questions), params.NumPaths, params.Workers)

	var runErr error
	for index, item := range questions {
		if err := ctx.Err(); err != nil {
			runErr = err
			for skipped := index; skipped < len(questions); skipped++ {
				events.emit(QuestionEvent{QuestionIndex: skipped, QuestionID: questions[skipped].ID, Type: QuestionSkipped, Error: err.Error()})
			}
			break
		}
		job := questionJob{
			index:  index,
			total:  len(questions),
			item:   item,
			params: params,
			logger: logger,
			events: events,
			now:    now,
		}
		results.Questions = append(results.Questions, job.run(ctx))
	}
	if runErr == nil {
		runErr = ctx.Err()
	}

	results.Interrupted = runErr != nil
	results.FinishedAt = now()
	results.Summary = Summarize(results.Questions)
	logger.logf(styleMetrics, "Summary answered=%d abstained=%d correct=%d accuracy=%.3f coverage=%.3f ece=%.3f",
		results.Summary.Answered, results.Summary.Abstained, results.Summary.Correct,
		results.Summary.Accuracy, results.Summary.Coverage, results.Summary.ECE)
	if params.Deps.Observer != nil {
		params.Deps.Observer.OnRunEnd(results)
	}
	if runErr != nil {
		return results, fmt.Errorf("run interrupted: %w", runErr)
	}
	return results, nil
}

func validateParams(params RunParams) error {
	var missing []error
	if params.Deps.Solver == nil {
		missing = append(missing, errors.New("solver is required"))
	}
	if params.Deps.Checker == nil {
		missing = append(missing, errors.New("checker is required"))
	}
	if params.Deps.Engine == nil {
		missing = append(missing, errors.New("engine is required"))
	}
	if params.NumPaths < 1 {
		missing = append(missing, errors.New("num paths must be >= 1"))
	}
	if params.Workers < 1 {
		missing = append(missing, errors.New("workers must be >= 1"))
	}
	return errors.Join(missing...)
}

// questionJob evaluates a single question.
type questionJob struct {
	index  int
	total  int
	item   question.Question
	params RunParams
	logger verboseLogger
	events emitter
	now    func() time.Time
}

func (j questionJob) run(ctx context.Context) QuestionResult {
	started := j.now()
	j.logger.logf(styleQuestion, "Question %d/%d id=%s paths=%d", j.index+1, j.total, j.item.ID, j.params.NumPaths)
	j.events.emit(QuestionEvent{QuestionIndex: j.index, QuestionID: j.item.ID, QuestionText: j.item.Prompt, Type: QuestionRunning})

	paths := j.runPaths(ctx)
	outcomes := make([]engine.PathOutcome, len(paths))
	for i, path := range paths {
		outcomes[i] = path.Outcome()
	}
	evaluation := j.params.Deps.Engine.Evaluate(outcomes)

	result := QuestionResult{
		ID:             j.item.ID,
		Question:       j.item.Prompt,
		Category:       j.item.Category,
		GroundTruth:    j.item.Answer,
		SelectedValue:  evaluation.SelectedValue,
		Confidence:     evaluation.Confidence,
		Disagreement:   evaluation.Disagreement,
		Abstained:      evaluation.Abstained,
		AbstainReason:  evaluation.AbstainReason,
		SucceededCount: evaluation.SucceededCount,
		FailedCount:    evaluation.FailedCount,
		Candidates:     evaluation.Candidates,
		Paths:          paths,
		WallTimeSecs:   j.now().Sub(started).Seconds(),
	}
	if j.item.HasAnswerKey() && !evaluation.Abstained {
		correct := evaluation.SelectedValue == j.item.Answer
		result.Correct = &correct
	}

	event := QuestionEvent{
		QuestionIndex: j.index,
		QuestionID:    j.item.ID,
		QuestionText:  j.item.Prompt,
		Type:          QuestionAnswered,
		Value:         result.SelectedValue,
		Confidence:    result.Confidence,
		Disagreement:  result.Disagreement,
		Correct:       result.Correct,
	}
	if result.Abstained {
		event.Type = QuestionAbstained
		event.AbstainReason = string(result.AbstainReason)
		j.logger.logf(styleAbstain, "Question %s abstained reason=%s confidence=%.3f disagreement=%.3f succeeded=%d failed=%d",
			j.item.ID, result.AbstainReason, result.Confidence, result.Disagreement, result.SucceededCount, result.FailedCount)
	} else {
		j.logger.logf(styleMetrics, "Question %s selected=%s confidence=%.3f disagreement=%.3f succeeded=%d failed=%d",
			j.item.ID, result.SelectedValue, result.Confidence, result.Disagreement, result.SucceededCount, result.FailedCount)
	}
	j.events.emit(event)
	return result
}

// runPaths solves and checks every path, at most Workers at a time. Results
// are indexed by path so the engine sees them in path order.
func (j questionJob) runPaths(ctx context.Context) []PathResult {
	paths := make([]PathResult, j.params.NumPaths)
	var group errgroup.Group
	group.SetLimit(j.params.Workers)
	for i := 0; i < j.params.NumPaths; i++ {
		pathIndex := i
		if err := ctx.Err(); err != nil {
			paths[pathIndex] = j.finishPath(PathResult{Index: pathIndex, Error: err.Error()})
			continue
		}
		group.Go(func() error {
			paths[pathIndex] = j.runPath(ctx, pathIndex)
			return nil
		})
	}
	_ = group.Wait()
	return paths
}

func (j questionJob) runPath(ctx context.Context, pathIndex int) PathResult {
	result := PathResult{Index: pathIndex}
	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return j.finishPath(result)
	}
	pathCtx := ctx
	if j.params.PathTimeout > 0 {
		var cancel context.CancelFunc
		pathCtx, cancel = context.WithTimeout(ctx, j.params.PathTimeout)
		defer cancel()
	}

	attempt, err := j.params.Deps.Solver.Solve(pathCtx, j.item, pathIndex)
	if err != nil {
		result.Error = err.Error()
		return j.finishPath(result)
	}
	result.Value = attempt.Value
	result.Steps = attempt.Steps
	result.LatencySeconds = attempt.Latency.Seconds()
	result.Temperature = attempt.Temperature
	result.Response = attempt.RawText

	score, err := j.params.Deps.Checker.Check(pathCtx, j.item, attempt.Value)
	if err != nil {
		result.Error = err.Error()
		return j.finishPath(result)
	}
	result.VerificationScore = score
	result.InfoCost = solver.InfoCost(attempt.Steps, attempt.Latency, j.params.LatencyWeight)
	result.Succeeded = true
	return j.finishPath(result)
}

func (j questionJob) finishPath(result PathResult) PathResult {
	event := QuestionEvent{
		QuestionIndex: j.index,
		QuestionID:    j.item.ID,
		PathIndex:     result.Index,
		Value:         result.Value,
		Latency:       time.Duration(result.LatencySeconds * float64(time.Second)),
	}
	if result.Succeeded {
		event.Type = QuestionPathDone
		j.logger.logf(styleDefault, "Question %s path %d value=%s verification=%.3f info_cost=%.3f steps=%d",
			j.item.ID, result.Index, result.Value, result.VerificationScore, result.InfoCost, result.Steps)
	} else {
		event.Type = QuestionPathFailed
		event.Error = result.Error
		j.logger.logf(styleError, "Question %s path %d error=%s", j.item.ID, result.Index, result.Error)
	}
	j.events.emit(event)
	return result
}
