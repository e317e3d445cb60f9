package engine

import "sort"

// RawScore computes the truth-rate-per-cost score for one candidate.
func RawScore(candidate CandidateStats, lambda float64) float64 {
	return (candidate.MeanVerification * candidate.VoteFraction) / (candidate.MeanInfoCost + lambda)
}

// Score returns a copy of candidates with RawScore set, ranked best first.
func Score(candidates []CandidateStats, lambda float64) []CandidateStats {
	scored := make([]CandidateStats, len(candidates))
	for i, candidate := range candidates {
		candidate.RawScore = RawScore(candidate, lambda)
		scored[i] = candidate
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return ranksBefore(scored[i], scored[j])
	})
	return scored
}

// ranksBefore is a total order: raw score, vote fraction and mean
// verification descending, then value ascending.
func ranksBefore(a, b CandidateStats) bool {
	if a.RawScore != b.RawScore {
		return a.RawScore > b.RawScore
	}
	if a.VoteFraction != b.VoteFraction {
		return a.VoteFraction > b.VoteFraction
	}
	if a.MeanVerification != b.MeanVerification {
		return a.MeanVerification > b.MeanVerification
	}
	return a.Value < b.Value
}
