package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"vireon/internal/backend"
	"vireon/internal/config"
	"vireon/internal/duckdb"
	"vireon/internal/metrics"
	"vireon/internal/question"
	"vireon/internal/runner"
	"vireon/internal/spec"
	"vireon/internal/ui/live"
	"vireon/internal/vcs"
)

// Test seams for evaluation execution and its collaborators.
var (
	runEvalAndWrite = runner.RunAndWrite
	newModel        = backend.New
	fileProvenance  = vcs.FileProvenance
	startLiveUI     = func(stdout io.Writer, noColor bool) liveUI {
		return live.Start(stdout, live.Options{NoColor: noColor})
	}
)

// liveUI is the part of the live controller eval drives.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait()
}

// evalOptions holds parsed eval flags.
type evalOptions struct {
	specPath  string
	provider  string
	model     string
	limit     int
	outputDir string
	verbose   bool
	logPath   string
	noColor   bool
	uiMode    string
	metrics   bool
	duckdb    string
}

// runEval implements the eval command.
func runEval(cmd *Command, args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}
	var opts evalOptions
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.specPath, "spec", "", "Path to config file (default: search for .vireon/config.yml)")
	fs.StringVar(&opts.provider, "provider", "", "Override backend.provider (openai|xai|stub)")
	fs.StringVar(&opts.model, "model", "", "Override backend.model")
	fs.IntVar(&opts.limit, "limit", 0, "Evaluate only the first N questions")
	fs.StringVar(&opts.outputDir, "output-dir", "", "Override output directory")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose logging")
	fs.StringVar(&opts.logPath, "log", "", "Write verbose logs to a file")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
	fs.StringVar(&opts.uiMode, "ui", "auto", "Console UI mode (auto|live|plain)")
	fs.BoolVar(&opts.metrics, "metrics", false, "Write Prometheus metrics to metrics.prom in the run directory")
	fs.StringVar(&opts.duckdb, "duckdb", "", "Ingest the run into this DuckDB database")
	questionArgs, err := parseInterspersed(fs, args)
	if err != nil {
		return ExitUsage
	}
	if len(questionArgs) != 1 {
		fmt.Fprintln(stderr, "Usage: vireon eval <questions_file> [options]")
		return ExitUsage
	}
	if opts.limit < 0 {
		fmt.Fprintln(stderr, "--limit must not be negative")
		return ExitUsage
	}
	decision, err := resolveUIMode(opts.uiMode, opts.verbose, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid --ui: %v\n", err)
		return ExitUsage
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}

	resolvedSpec, err := resolveSpecPath(opts.specPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to locate config: %v\n", err)
		return ExitError
	}
	cfg, err := config.Load(resolvedSpec)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return ExitError
	}
	if err := applyBackendOverrides(&cfg, opts.provider, opts.model); err != nil {
		fmt.Fprintf(stderr, "Invalid overrides: %v\n", err)
		return ExitUsage
	}

	questionsPath, err := filepath.Abs(questionArgs[0])
	if err != nil {
		fmt.Fprintf(stderr, "Failed to resolve questions file: %v\n", err)
		return ExitError
	}
	questions, err := question.LoadFile(questionsPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load questions: %v\n", err)
		return ExitError
	}
	if opts.limit > 0 && opts.limit < len(questions) {
		questions = questions[:opts.limit]
	}

	model, err := newModel(config.BackendSettings(cfg, os.Getenv))
	if err != nil {
		fmt.Fprintf(stderr, "Failed to build backend: %v\n", err)
		return ExitError
	}
	params, err := runner.ParamsFromConfig(cfg, model)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid eval config: %v\n", err)
		return ExitError
	}
	outputDir, err := resolveRunOutputDir(opts.outputDir, resolvedSpec, cfg.Run.OutputDir)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to resolve output dir: %v\n", err)
		return ExitError
	}

	var logFile io.WriteCloser
	if strings.TrimSpace(opts.logPath) != "" {
		file, err := openLogFile(opts.logPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open log file: %v\n", err)
			return ExitError
		}
		logFile = file
		defer func() { _ = logFile.Close() }()
	}

	params.QuestionsFile = questionsPath
	if prov, err := fileProvenance(context.Background(), questionsPath); err == nil {
		params.Source = &prov
	}
	params.Verbose = opts.verbose
	params.VerboseWriter = stdout
	if logFile != nil {
		params.VerboseLogWriter = logFile
	}
	params.NoColor = opts.noColor

	var observers runner.MultiObserver
	var recorder *metrics.Recorder
	if opts.metrics {
		recorder = metrics.NewRecorder()
		observers = append(observers, recorder)
	}
	var ui liveUI
	if decision.useLive {
		ui = startLiveUI(stdout, opts.noColor)
		observers = append(observers, ui)
	}
	if len(observers) > 0 {
		params.Deps.Observer = observers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	results, paths, runErr := runEvalAndWrite(ctx, questions, params, outputDir)
	stop()
	if ui != nil {
		ui.Close()
		ui.Wait()
	}
	interrupted := runErr != nil && errors.Is(runErr, context.Canceled) && paths.RunID != ""
	if runErr != nil && !interrupted {
		fmt.Fprintf(stderr, "Eval failed: %v\n", runErr)
		return ExitError
	}

	noColor := opts.noColor || !runner.ShouldUseStyling(stdout)
	fmt.Fprintln(stdout, runner.RenderSummary(results, noColor))
	fmt.Fprintf(stdout, "Results: %s\n", paths.ResultsPath())
	fmt.Fprintf(stdout, "Responses: %s\n", paths.ResponsesPath())

	exitCode := ExitOK
	if interrupted {
		fmt.Fprintf(stderr, "Run %s interrupted; partial results written\n", results.RunID)
		exitCode = ExitError
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(paths.MetricsPath()); err != nil {
			fmt.Fprintf(stderr, "Failed to write metrics: %v\n", err)
			exitCode = ExitError
		} else {
			fmt.Fprintf(stdout, "Metrics: %s\n", paths.MetricsPath())
		}
	}
	if strings.TrimSpace(opts.duckdb) != "" {
		summary, err := ingestRun(context.Background(), opts.duckdb, results)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to ingest run: %v\n", err)
			exitCode = ExitError
		} else {
			fmt.Fprintf(stdout, "DuckDB: %d questions, %d paths -> %s\n", summary.Questions, summary.Paths, opts.duckdb)
		}
	}
	return exitCode
}

// applyBackendOverrides swaps provider or model and re-validates the config.
// A provider change resets the model and API key variable to that
// provider's defaults unless they are given too.
func applyBackendOverrides(cfg *spec.Config, provider, model string) error {
	provider = strings.TrimSpace(provider)
	model = strings.TrimSpace(model)
	if provider == "" && model == "" {
		return nil
	}
	if provider != "" {
		cfg.Backend.Provider = provider
		cfg.Backend.Model = ""
		cfg.Backend.APIKeyEnv = ""
	}
	if model != "" {
		cfg.Backend.Model = model
	}
	config.Normalize(cfg)
	return config.Validate(cfg)
}

func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
}

func ingestRun(ctx context.Context, path string, results runner.Results) (duckdb.IngestSummary, error) {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return duckdb.IngestSummary{}, err
	}
	defer db.Close()
	return duckdb.IngestRun(ctx, db, results)
}
