package quiz

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition reports a round method called outside its valid
// state, e.g. submitting twice or advancing before answering. This is an
// integration bug; silently accepting it would corrupt the score.
var ErrInvalidTransition = errors.New("invalid round transition")

// ErrInvalidOption reports a submitted option index outside the question's
// option list.
var ErrInvalidOption = errors.New("option index out of range")

// RoundResult is the immutable outcome of one completed round.
type RoundResult struct {
	// Number is 1-based and increases monotonically within a session.
	Number int
	Score  int
	Total  int
	// Wrong lists the questions answered incorrectly, in answer order.
	// A question appears at most once: rounds never repeat a question.
	Wrong []Question
}

type roundPhase int

const (
	phasePresenting roundPhase = iota
	phaseAnswered
	phaseComplete
)

// Round drives one pass through a selected question list:
// Presenting(i) → Answered(i) → Presenting(i+1) | complete.
type Round struct {
	number    int
	questions []Question
	index     int
	phase     roundPhase
	score     int
	wrong     []Question
	chosen    int
}

// NewRound starts a round over questions. An empty list yields a round that
// is already complete, so Submit and Advance reject rather than panic.
func NewRound(number int, questions []Question) *Round {
	r := &Round{
		number:    number,
		questions: questions,
		chosen:    -1,
	}
	if len(questions) == 0 {
		r.phase = phaseComplete
	}
	return r
}

// Number returns the 1-based round number.
func (r *Round) Number() int { return r.number }

// Size returns the number of questions in the round.
func (r *Round) Size() int { return len(r.questions) }

// Index returns the 0-based position of the current question.
func (r *Round) Index() int { return r.index }

// Score returns the running count of correct answers.
func (r *Round) Score() int { return r.score }

// Answered reports whether the current question has been answered but not
// yet advanced past.
func (r *Round) Answered() bool { return r.phase == phaseAnswered }

// Complete reports whether the last question has been advanced past.
func (r *Round) Complete() bool { return r.phase == phaseComplete }

// Chosen returns the option index submitted for the current question, or -1
// while presenting.
func (r *Round) Chosen() int { return r.chosen }

// Current returns the question being presented or answered. ok is false once
// the round is complete.
func (r *Round) Current() (Question, bool) {
	if r.phase == phaseComplete {
		return Question{}, false
	}
	return r.questions[r.index], true
}

// Submit records the answer for the current question and moves the round to
// the answered state. It returns whether the answer was correct. Callers
// notify the history collaborator with the outcome; the round itself
// performs no I/O.
func (r *Round) Submit(optionIndex int) (bool, error) {
	if r.phase != phasePresenting {
		return false, fmt.Errorf("submit answer for question %d: %w", r.index, ErrInvalidTransition)
	}
	q := r.questions[r.index]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return false, fmt.Errorf("question %d has %d options, got index %d: %w",
			q.ID, len(q.Options), optionIndex, ErrInvalidOption)
	}

	r.chosen = optionIndex
	r.phase = phaseAnswered
	correct := optionIndex == q.AnswerIndex
	if correct {
		r.score++
	} else {
		r.wrong = append(r.wrong, q)
	}
	return correct, nil
}

// Advance moves past an answered question. It returns the RoundResult when
// the round just completed, nil while questions remain.
func (r *Round) Advance() (*RoundResult, error) {
	if r.phase != phaseAnswered {
		return nil, fmt.Errorf("advance from question %d: %w", r.index, ErrInvalidTransition)
	}

	if r.index+1 < len(r.questions) {
		r.index++
		r.phase = phasePresenting
		r.chosen = -1
		return nil, nil
	}

	r.phase = phaseComplete
	r.chosen = -1
	return &RoundResult{
		Number: r.number,
		Score:  r.score,
		Total:  len(r.questions),
		Wrong:  r.wrong,
	}, nil
}
