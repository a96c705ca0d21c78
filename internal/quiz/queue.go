package quiz

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// ContentQueue stores validated questions and serves them sequentially with
// wraparound. It guarantees that Next always returns a displayable question:
// invalid records are skipped (bounded to one full pass) and an empty or fully
// corrupt queue yields the built-in fallback question. That keeps the game
// playable with a partially corrupt deck, at the cost of potentially serving
// the fallback indefinitely.
type ContentQueue struct {
	logger    *log.Logger
	questions []Question
	meta      Metadata
	cursor    int
}

// NewContentQueue creates an empty queue.
func NewContentQueue(logger *log.Logger) *ContentQueue {
	return &ContentQueue{logger: logger}
}

// Load replaces the current content. Every record is validated; if any record
// fails, the load is rejected as a whole and the queue is left empty rather
// than partially populated. The cursor is reset on success.
func (c *ContentQueue) Load(questions []Question, meta Metadata) error {
	c.Clear()

	if len(questions) == 0 {
		return fmt.Errorf("queue: no questions to load")
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("queue: record %d invalid: %w", i, err)
		}
		if seen[q.ID] {
			return fmt.Errorf("queue: duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
	}

	c.questions = make([]Question, len(questions))
	copy(c.questions, questions)
	c.meta = meta
	c.cursor = 0
	return nil
}

// Next returns the question at the cursor and advances it, wrapping to the
// first record after the last. Records failing the lightweight displayability
// check are skipped; after one full fruitless pass the fallback question is
// returned instead.
func (c *ContentQueue) Next() Question {
	if len(c.questions) == 0 {
		return FallbackQuestion()
	}

	for attempts := 0; attempts < len(c.questions); attempts++ {
		q := c.questions[c.cursor]
		c.cursor = (c.cursor + 1) % len(c.questions)
		if q.Displayable() {
			return q
		}
		c.logger.Warn("queue: skipping undisplayable question", "id", q.ID)
	}

	c.logger.Warn("queue: no displayable questions, serving fallback")
	return FallbackQuestion()
}

// HasQuestions reports whether any records are loaded.
func (c *ContentQueue) HasQuestions() bool {
	return len(c.questions) > 0
}

// Count returns the number of loaded records.
func (c *ContentQueue) Count() int {
	return len(c.questions)
}

// ByIndex returns the record at index i, if it exists.
func (c *ContentQueue) ByIndex(i int) (Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

// ByType returns all records of the given type, in load order.
func (c *ContentQueue) ByType(t QuestionType) []Question {
	var out []Question
	for _, q := range c.questions {
		if q.Type == t {
			out = append(out, q)
		}
	}
	return out
}

// AvailableTypes returns the distinct question types present, sorted.
func (c *ContentQueue) AvailableTypes() []QuestionType {
	set := make(map[QuestionType]bool)
	for _, q := range c.questions {
		set[q.Type] = true
	}
	types := make([]QuestionType, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	return SortTypes(types)
}

// Metadata returns the metadata of the loaded set.
func (c *ContentQueue) Metadata() Metadata {
	return c.meta
}

// ResetCursor rewinds retrieval to the first record.
func (c *ContentQueue) ResetCursor() {
	c.cursor = 0
}

// Clear discards all content and metadata.
func (c *ContentQueue) Clear() {
	c.questions = nil
	c.meta = Metadata{}
	c.cursor = 0
}
