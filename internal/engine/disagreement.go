package engine

import "math"

// Disagreement returns the normalized entropy of the vote distribution:
// 0 when unanimous, 1 when votes are spread evenly over every candidate.
func Disagreement(candidates []CandidateStats) float64 {
	k := 0
	for _, candidate := range candidates {
		if candidate.VoteFraction > 0 {
			k++
		}
	}
	if k <= 1 {
		return 0
	}
	entropy := 0.0
	for _, candidate := range candidates {
		p := candidate.VoteFraction
		if p <= 0 {
			continue
		}
		entropy -= p * math.Log(p)
	}
	return clamp01(entropy / math.Log(float64(k)))
}
