package runner

import (
	"vireon/internal/scoring"
)

// Summarize aggregates per-question results. Accuracy is over all questions,
// selective accuracy over graded answers, and ECE over graded answers using
// their confidences.
func Summarize(questions []QuestionResult) Summary {
	summary := Summary{QuestionsTotal: len(questions)}
	var confidences []float64
	var outcomes []bool
	confidenceSum, disagreementSum := 0.0, 0.0
	for _, result := range questions {
		confidenceSum += result.Confidence
		disagreementSum += result.Disagreement
		summary.PathsFailed += result.FailedCount
		if result.Abstained {
			summary.Abstained++
			if summary.AbstainReasons == nil {
				summary.AbstainReasons = map[string]int{}
			}
			summary.AbstainReasons[string(result.AbstainReason)]++
			continue
		}
		summary.Answered++
		if result.Correct == nil {
			continue
		}
		summary.Graded++
		if *result.Correct {
			summary.Correct++
		} else {
			summary.Incorrect++
		}
		confidences = append(confidences, result.Confidence)
		outcomes = append(outcomes, *result.Correct)
	}
	if summary.QuestionsTotal > 0 {
		total := float64(summary.QuestionsTotal)
		summary.Accuracy = float64(summary.Correct) / total
		summary.Coverage = float64(summary.Answered) / total
		summary.MeanConfidence = confidenceSum / total
		summary.MeanDisagreement = disagreementSum / total
	}
	if summary.Graded > 0 {
		summary.SelectiveAccuracy = float64(summary.Correct) / float64(summary.Graded)
	}
	summary.ECE = scoring.ExpectedCalibrationError(confidences, outcomes, scoring.DefaultBins)
	return summary
}
