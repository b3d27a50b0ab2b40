package symptom

import (
	"math"
	"sort"
)

// Score ranks every condition against the reported symptom keys.
// score = |symptoms ∩ defining| / |defining|, rounded to 3 decimals.
// Ties keep the table's declaration order.
func Score(conditions []Condition, symptoms []string) []ScoreResult {
	reported := make(map[string]struct{}, len(symptoms))
	for _, s := range symptoms {
		reported[s] = struct{}{}
	}

	results := make([]ScoreResult, 0, len(conditions))
	for _, c := range conditions {
		matched := make([]string, 0, len(c.Symptoms))
		for _, s := range c.Symptoms {
			if _, ok := reported[s]; ok {
				matched = append(matched, s)
			}
		}
		score := 0.0
		if len(c.Symptoms) > 0 {
			score = round3(float64(len(matched)) / float64(len(c.Symptoms)))
		}
		results = append(results, ScoreResult{
			Condition:       c.Name,
			Score:           score,
			MatchedSymptoms: matched,
			Precautions:     c.Precautions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Top returns at most n results from an already ranked slice.
func Top(results []ScoreResult, n int) []ScoreResult {
	if n < 0 {
		n = 0
	}
	if len(results) > n {
		return results[:n]
	}
	return results
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
