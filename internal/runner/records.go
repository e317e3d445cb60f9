package runner

import (
	"sort"

	"github.com/google/uuid"

	"vireon/internal/engine"
)

// Behavior tags attached to result records.
const (
	TagAnswered           = "answered"
	TagAbstained          = "abstained"
	TagUnanimous          = "unanimous"
	TagSplitVote          = "split_vote"
	TagPathFailures       = "path_failures"
	TagUnparseable        = "unparseable"
	TagInsufficientQuorum = "insufficient_quorum"
	TagLowConfidence      = "low_confidence"
	TagCorrect            = "correct"
	TagIncorrect          = "incorrect"
)

var newRecordID = func() string {
	return uuid.NewString()
}

// ResultRecord is one line of responses.jsonl.
type ResultRecord struct {
	ID          string         `json:"id"`
	QuestionID  string         `json:"question_id"`
	Model       string         `json:"model"`
	Response    string         `json:"response"`
	TagsPresent []string       `json:"tags_present"`
	Metadata    map[string]any `json:"metadata"`
}

// BuildRecords converts a run into result records, one per question.
func BuildRecords(results Results) []ResultRecord {
	records := make([]ResultRecord, 0, len(results.Questions))
	for _, result := range results.Questions {
		metadata := map[string]any{
			"run_id":          results.RunID,
			"selected_value":  result.SelectedValue,
			"confidence":      result.Confidence,
			"disagreement":    result.Disagreement,
			"abstained":       result.Abstained,
			"succeeded_count": result.SucceededCount,
			"failed_count":    result.FailedCount,
		}
		if result.AbstainReason != engine.ReasonNone {
			metadata["abstain_reason"] = string(result.AbstainReason)
		}
		if result.Category != "" {
			metadata["category"] = result.Category
		}
		if result.Correct != nil {
			metadata["correct"] = *result.Correct
		}
		records = append(records, ResultRecord{
			ID:          newRecordID(),
			QuestionID:  result.ID,
			Model:       results.Model,
			Response:    recordResponse(result),
			TagsPresent: BehaviorTags(result),
			Metadata:    metadata,
		})
	}
	return records
}

func recordResponse(result QuestionResult) string {
	if result.Abstained {
		return engine.Abstain
	}
	return "Answer: " + result.SelectedValue
}

// BehaviorTags derives the sorted behavior tags for a question result.
func BehaviorTags(result QuestionResult) []string {
	tags := []string{}
	if result.Abstained {
		tags = append(tags, TagAbstained)
		switch result.AbstainReason {
		case engine.ReasonInsufficientQuorum:
			tags = append(tags, TagInsufficientQuorum)
		case engine.ReasonBelowThreshold:
			tags = append(tags, TagLowConfidence)
		}
	} else {
		tags = append(tags, TagAnswered)
	}
	switch {
	case len(result.Candidates) == 1:
		tags = append(tags, TagUnanimous)
	case len(result.Candidates) > 1:
		tags = append(tags, TagSplitVote)
	}
	if result.FailedCount > 0 {
		tags = append(tags, TagPathFailures)
	}
	for _, candidate := range result.Candidates {
		if candidate.Value == engine.Unparseable {
			tags = append(tags, TagUnparseable)
			break
		}
	}
	if result.Correct != nil {
		if *result.Correct {
			tags = append(tags, TagCorrect)
		} else {
			tags = append(tags, TagIncorrect)
		}
	}
	sort.Strings(tags)
	return tags
}
