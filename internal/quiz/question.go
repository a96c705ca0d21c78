// Package quiz implements the question-flow engine of the runner game: a
// finite game-state machine with score and lives tracking, a cyclic question
// queue with a built-in fallback, and a coordinator that decides when to
// interrupt the run with a question and how to apply the answer's effects.
//
// The package is presentation-free. The terminal overlay (or any other
// front end) plugs in through the Presenter interface.
package quiz

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionType enumerates the supported question formats.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeMatching       QuestionType = "matching"
)

// knownTypes lists every valid QuestionType.
var knownTypes = map[QuestionType]bool{
	TypeMultipleChoice: true,
	TypeTrueFalse:      true,
	TypeFillBlank:      true,
	TypeMatching:       true,
}

// HasOptions reports whether this question type presents a fixed option list.
func (t QuestionType) HasOptions() bool {
	return t == TypeMultipleChoice || t == TypeTrueFalse
}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return knownTypes[t]
}

// Question is one quiz item. Instances are validated once at the content
// boundary and treated as immutable afterwards.
type Question struct {
	ID         string
	Type       QuestionType
	Prompt     string
	Options    []string // required for multiple_choice/true_false, ignored otherwise
	Answer     string
	Feedback   string
	Difficulty int    // 1..5, 0 when unset
	Subject    string // optional
	Topic      string // optional
}

// Validate performs the full structural check applied when content is loaded.
func (q Question) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return fmt.Errorf("question has empty id")
	}
	if !q.Type.Valid() {
		return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("question %q: empty prompt", q.ID)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("question %q: empty answer", q.ID)
	}
	if strings.TrimSpace(q.Feedback) == "" {
		return fmt.Errorf("question %q: empty feedback", q.ID)
	}
	if q.Type.HasOptions() {
		if len(q.Options) < 2 {
			return fmt.Errorf("question %q: needs at least 2 options, has %d", q.ID, len(q.Options))
		}
		seen := make(map[string]bool, len(q.Options))
		answerFound := false
		for i, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("question %q: option %d is empty", q.ID, i)
			}
			if seen[opt] {
				return fmt.Errorf("question %q: duplicate option %q", q.ID, opt)
			}
			seen[opt] = true
			if opt == q.Answer {
				answerFound = true
			}
		}
		if !answerFound {
			return fmt.Errorf("question %q: answer %q is not among the options", q.ID, q.Answer)
		}
	}
	if q.Difficulty < 0 || q.Difficulty > 5 {
		return fmt.Errorf("question %q: difficulty %d outside 0..5", q.ID, q.Difficulty)
	}
	return nil
}

// Displayable is the lightweight runtime check the queue applies before
// serving a record. It is cheaper than Validate and only guards what the
// presentation actually needs.
func (q Question) Displayable() bool {
	if q.Prompt == "" || q.Answer == "" || q.Feedback == "" {
		return false
	}
	if q.Type.HasOptions() {
		if len(q.Options) < 2 {
			return false
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FallbackQuestion returns the built-in question served when the queue is
// empty or holds no displayable records. It keeps the game playable with a
// partially corrupt or missing deck.
func FallbackQuestion() Question {
	return Question{
		ID:       "fallback-arithmetic",
		Type:     TypeMultipleChoice,
		Prompt:   "What is 2 + 2?",
		Options:  []string{"3", "4", "5", "22"},
		Answer:   "4",
		Feedback: "2 + 2 = 4.",
		Subject:  "math",
	}
}

// Metadata describes a loaded question set.
type Metadata struct {
	Title       string
	Description string
	Version     string
	Author      string
}

// SortTypes returns the given set of question types in stable order.
func SortTypes(types []QuestionType) []QuestionType {
	sorted := make([]QuestionType, len(types))
	copy(sorted, types)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}
