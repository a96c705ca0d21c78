// Package content loads question decks from YAML or JSON files. All
// structural validation happens here, at the system boundary; once a deck is
// loaded its questions are immutable and internal code relies on them being
// well formed.
package content

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/skillrun/quizrunner/internal/quiz"
)

// document is the on-disk deck shape: a question list plus metadata.
type document struct {
	Questions []record `yaml:"questions" json:"questions"`
	Metadata  meta     `yaml:"metadata" json:"metadata"`
}

// record mirrors quiz.Question with serialization tags.
type record struct {
	ID         string   `yaml:"id" json:"id"`
	Type       string   `yaml:"type" json:"type"`
	Prompt     string   `yaml:"prompt" json:"prompt"`
	Options    []string `yaml:"options,omitempty" json:"options,omitempty"`
	Answer     string   `yaml:"answer" json:"answer"`
	Feedback   string   `yaml:"feedback" json:"feedback"`
	Difficulty int      `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Subject    string   `yaml:"subject,omitempty" json:"subject,omitempty"`
	Topic      string   `yaml:"topic,omitempty" json:"topic,omitempty"`
}

type meta struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Version     string `yaml:"version" json:"version"`
	Author      string `yaml:"author" json:"author"`
}

// toQuestion converts a raw record into the validated domain type.
func (r record) toQuestion() quiz.Question {
	return quiz.Question{
		ID:         r.ID,
		Type:       quiz.QuestionType(r.Type),
		Prompt:     r.Prompt,
		Options:    r.Options,
		Answer:     r.Answer,
		Feedback:   r.Feedback,
		Difficulty: r.Difficulty,
		Subject:    r.Subject,
		Topic:      r.Topic,
	}
}

// ParseYAML decodes a YAML deck document.
func ParseYAML(data []byte) (Deck, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Deck{}, fmt.Errorf("content: invalid YAML: %w", err)
	}
	return docToDeck(doc)
}

// ParseJSON decodes a JSON deck document.
func ParseJSON(data []byte) (Deck, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Deck{}, fmt.Errorf("content: invalid JSON: %w", err)
	}
	return docToDeck(doc)
}

// docToDeck validates every record and assembles the deck. Any invalid record
// rejects the whole document, so a deck is never partially usable.
func docToDeck(doc document) (Deck, error) {
	if len(doc.Questions) == 0 {
		return Deck{}, fmt.Errorf("content: deck contains no questions")
	}

	questions := make([]quiz.Question, 0, len(doc.Questions))
	seen := make(map[string]bool, len(doc.Questions))
	for i, r := range doc.Questions {
		q := r.toQuestion()
		if err := q.Validate(); err != nil {
			return Deck{}, fmt.Errorf("content: question %d: %w", i, err)
		}
		if seen[q.ID] {
			return Deck{}, fmt.Errorf("content: duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	return Deck{
		Questions: questions,
		Meta: quiz.Metadata{
			Title:       doc.Metadata.Title,
			Description: doc.Metadata.Description,
			Version:     doc.Metadata.Version,
			Author:      doc.Metadata.Author,
		},
	}, nil
}
