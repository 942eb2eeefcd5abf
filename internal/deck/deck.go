package deck

import (
	"fmt"

	"github.com/dsoni/quizdrill/internal/quiz"
)

// Deck is a named test: metadata plus its tagged questions.
type Deck struct {
	// ID identifies the deck in history records. Defaults to the deck
	// file's base name.
	ID          string
	Title       string
	Description string
	Author      string
	Questions   []quiz.Question
}

// Tags returns the deck's distinct tags in first-seen order.
func (d *Deck) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, q := range d.Questions {
		if !seen[q.Tag] {
			seen[q.Tag] = true
			tags = append(tags, q.Tag)
		}
	}
	return tags
}

// Validate checks the invariants the drill core relies on.
func (d *Deck) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("deck %s: title is required", d.ID)
	}
	if len(d.Questions) == 0 {
		return fmt.Errorf("deck %s: no questions", d.ID)
	}
	seen := make(map[int]bool, len(d.Questions))
	for i, q := range d.Questions {
		if q.Text == "" {
			return fmt.Errorf("deck %s: question %d: empty text", d.ID, i+1)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("deck %s: question %d: needs at least 2 options, has %d", d.ID, i+1, len(q.Options))
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
			return fmt.Errorf("deck %s: question %d: answer index %d out of range", d.ID, i+1, q.AnswerIndex)
		}
		if seen[q.ID] {
			return fmt.Errorf("deck %s: duplicate question id %d", d.ID, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}
