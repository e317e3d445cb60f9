// Package metrics records run statistics in a Prometheus registry and writes
// them as a node-exporter textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"vireon/internal/runner"
)

// Recorder implements runner.RunObserver and keeps its own registry.
type Recorder struct {
	registry *prometheus.Registry

	questionsTotal   *prometheus.CounterVec
	pathsTotal       *prometheus.CounterVec
	pathLatency      prometheus.Histogram
	confidence       *prometheus.HistogramVec
	disagreement     prometheus.Histogram
	accuracy         prometheus.Gauge
	selective        prometheus.Gauge
	coverage         prometheus.Gauge
	calibrationError prometheus.Gauge
	runInfo          *prometheus.GaugeVec
}

// NewRecorder registers the vireon metric families in a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		questionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vireon_questions_total",
			Help: "Questions evaluated by outcome",
		}, []string{"outcome"}),
		pathsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "vireon_paths_total",
			Help: "Reasoning paths by status",
		}, []string{"status"}),
		pathLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vireon_path_latency_seconds",
			Help:    "Solver latency per successful path",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
		confidence: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vireon_confidence",
			Help:    "Calibrated confidence per question",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"outcome"}),
		disagreement: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "vireon_disagreement",
			Help:    "Normalized entropy of the vote per question",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		accuracy: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vireon_accuracy",
			Help: "Correct answers over all questions",
		}),
		selective: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vireon_selective_accuracy",
			Help: "Correct answers over graded answered questions",
		}),
		coverage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vireon_coverage",
			Help: "Answered questions over all questions",
		}),
		calibrationError: factory.NewGauge(prometheus.GaugeOpts{
			Name: "vireon_expected_calibration_error",
			Help: "Expected calibration error over graded answers",
		}),
		runInfo: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vireon_run_info",
			Help: "Run identity; always 1",
		}, []string{"run_id", "model"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// OnRunStart records the run identity.
func (r *Recorder) OnRunStart(runID string, model string, questions int) {
	r.runInfo.WithLabelValues(runID, model).Set(1)
}

// OnQuestionEvent counts paths and question outcomes.
func (r *Recorder) OnQuestionEvent(event runner.QuestionEvent) {
	switch event.Type {
	case runner.QuestionPathDone:
		r.pathsTotal.WithLabelValues("succeeded").Inc()
		r.pathLatency.Observe(event.Latency.Seconds())
	case runner.QuestionPathFailed:
		r.pathsTotal.WithLabelValues("failed").Inc()
	case runner.QuestionAnswered, runner.QuestionAbstained:
		outcome := string(event.Type)
		r.questionsTotal.WithLabelValues(outcome).Inc()
		r.confidence.WithLabelValues(outcome).Observe(event.Confidence)
		r.disagreement.Observe(event.Disagreement)
	case runner.QuestionSkipped:
		r.questionsTotal.WithLabelValues("skipped").Inc()
	}
}

// OnRunEnd records the dataset-level rates.
func (r *Recorder) OnRunEnd(results runner.Results) {
	r.accuracy.Set(results.Summary.Accuracy)
	r.selective.Set(results.Summary.SelectiveAccuracy)
	r.coverage.Set(results.Summary.Coverage)
	r.calibrationError.Set(results.Summary.ECE)
}

// WriteTextfile writes the registry in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
