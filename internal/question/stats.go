package question

import (
	"encoding/json"
	"sort"
	"strings"
)

// DefaultFragility is counted for questions whose metadata carries no
// user_fragility.
const DefaultFragility = "medium"

// Stats describes a question set before any model is run.
type Stats struct {
	Questions          int            `json:"questions"`
	WithAnswerKey      int            `json:"with_answer_key"`
	Categories         map[string]int `json:"categories"`
	OptionCounts       map[int]int    `json:"option_counts"`
	AnswerDistribution map[string]int `json:"answer_distribution"`
	// Fragility counts metadata.user_fragility values.
	Fragility   map[string]int `json:"fragility_distribution"`
	MustTags    int            `json:"total_must_tags"`
	MustNotTags int            `json:"total_must_not_tags"`
}

// evaluationTags is the optional metadata.evaluation object.
type evaluationTags struct {
	Must    []string `json:"must"`
	MustNot []string `json:"must_not"`
}

// ComputeStats tallies counts and distributions over questions.
func ComputeStats(questions []Question) Stats {
	stats := Stats{
		Questions:          len(questions),
		Categories:         map[string]int{},
		OptionCounts:       map[int]int{},
		AnswerDistribution: map[string]int{},
		Fragility:          map[string]int{},
	}
	for _, q := range questions {
		category := q.Category
		if category == "" {
			category = "uncategorized"
		}
		stats.Categories[category]++
		stats.OptionCounts[len(q.Options)]++
		if q.HasAnswerKey() {
			stats.WithAnswerKey++
			stats.AnswerDistribution[q.Answer]++
		}
		stats.Fragility[fragility(q.Metadata)]++
		var tags evaluationTags
		if raw, ok := q.Metadata["evaluation"]; ok && json.Unmarshal(raw, &tags) == nil {
			stats.MustTags += len(tags.Must)
			stats.MustNotTags += len(tags.MustNot)
		}
	}
	return stats
}

// fragility reads metadata.user_fragility, ignoring values that are not strings.
func fragility(metadata map[string]json.RawMessage) string {
	var value string
	if raw, ok := metadata["user_fragility"]; ok && json.Unmarshal(raw, &value) == nil {
		if value = strings.ToLower(strings.TrimSpace(value)); value != "" {
			return value
		}
	}
	return DefaultFragility
}

// SortedKeys returns the keys of counts in ascending order.
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
