package scoring

import (
	"vireon/internal/question"
)

// DefaultBins is the number of uniform confidence bins used for ECE.
const DefaultBins = 10

// Report is the dataset-level grade.
type Report struct {
	N        int     `json:"n"`
	Accuracy float64 `json:"accuracy"`
	ECE      float64 `json:"ece"`
	Missing  int     `json:"missing"`
}

// Score grades predictions for questions. Questions without a prediction are
// counted as missing and excluded.
func Score(questions []question.Question, predictions Predictions) Report {
	confidences := make([]float64, 0, len(questions))
	outcomes := make([]bool, 0, len(questions))
	report := Report{}
	for _, q := range questions {
		prediction, ok := predictions.ByID[q.ID]
		if !ok {
			report.Missing++
			continue
		}
		confidences = append(confidences, prediction.Confidence)
		outcomes = append(outcomes, prediction.Correct)
	}
	report.N = len(outcomes)
	if report.N == 0 {
		return report
	}
	correct := 0
	for _, ok := range outcomes {
		if ok {
			correct++
		}
	}
	report.Accuracy = float64(correct) / float64(report.N)
	report.ECE = ExpectedCalibrationError(confidences, outcomes, DefaultBins)
	return report
}

// ExpectedCalibrationError bins confidences uniformly over [0,1] and sums
// |accuracy - bin centre| weighted by bin size. Confidence 1 falls into the
// top bin.
func ExpectedCalibrationError(confidences []float64, correct []bool, bins int) float64 {
	n := len(confidences)
	if n == 0 || n != len(correct) || bins < 1 {
		return 0
	}
	totals := make([]int, bins)
	hits := make([]int, bins)
	for i, confidence := range confidences {
		index := int(confidence * float64(bins))
		if index >= bins {
			index = bins - 1
		}
		if index < 0 {
			index = 0
		}
		totals[index]++
		if correct[i] {
			hits[index]++
		}
	}
	ece := 0.0
	for i := 0; i < bins; i++ {
		if totals[i] == 0 {
			continue
		}
		accuracy := float64(hits[i]) / float64(totals[i])
		centre := (float64(i) + 0.5) / float64(bins)
		gap := accuracy - centre
		if gap < 0 {
			gap = -gap
		}
		ece += gap * float64(totals[i]) / float64(n)
	}
	return ece
}
