package engine

import (
	"math"
	"sort"
)

// Accumulation is the grouped reduction of a question's path outcomes.
type Accumulation struct {
	Candidates     []CandidateStats
	SucceededCount int
	FailedCount    int
}

// Accumulate groups succeeded outcomes by value. Candidates are returned in
// ascending value order and do not depend on the order of outcomes.
func Accumulate(outcomes []PathOutcome) Accumulation {
	type bucket struct {
		verification []float64
		cost         []float64
	}
	buckets := map[string]*bucket{}
	acc := Accumulation{}
	for _, outcome := range outcomes {
		if !outcome.Succeeded {
			acc.FailedCount++
			continue
		}
		acc.SucceededCount++
		b, ok := buckets[outcome.Value]
		if !ok {
			b = &bucket{}
			buckets[outcome.Value] = b
		}
		b.verification = append(b.verification, sanitizeVerification(outcome.VerificationScore))
		b.cost = append(b.cost, sanitizeCost(outcome.InfoCost))
	}
	if acc.SucceededCount == 0 {
		return acc
	}

	values := make([]string, 0, len(buckets))
	for value := range buckets {
		values = append(values, value)
	}
	sort.Strings(values)

	total := float64(acc.SucceededCount)
	acc.Candidates = make([]CandidateStats, 0, len(values))
	for _, value := range values {
		b := buckets[value]
		count := len(b.verification)
		acc.Candidates = append(acc.Candidates, CandidateStats{
			Value:            value,
			VoteFraction:     float64(count) / total,
			MeanVerification: orderedMean(b.verification),
			MeanInfoCost:     orderedMean(b.cost),
			SupportCount:     count,
		})
	}
	return acc
}

// orderedMean sums in ascending order so the result is permutation invariant.
func orderedMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, value := range sorted {
		sum += value
	}
	return sum / float64(len(sorted))
}

func sanitizeVerification(score float64) float64 {
	return clamp01(score)
}

func sanitizeCost(cost float64) float64 {
	if math.IsNaN(cost) || cost < 0 {
		return 0
	}
	if math.IsInf(cost, 1) {
		return math.MaxFloat64
	}
	return cost
}
