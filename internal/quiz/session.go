package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// QuizSession is one user's attempt at a test, spanning the initial round
// and any wrong-answer repeat rounds. A session is a plain value owned by a
// single execution context; it is never shared across goroutines.
type QuizSession struct {
	// TestID names the test being drilled.
	TestID string

	// Results holds the completed rounds, oldest first.
	Results []RoundResult

	// Round is the in-progress round. Its number is always len(Results)+1.
	Round *Round

	// RecordID is the persisted session record backing the current round,
	// empty for anonymous sessions.
	RecordID string

	// scoreSaved guards the one-shot final score update for the current
	// record, so rerendering a completion view cannot double count.
	scoreSaved bool
}

// RoundScore is one row of a session summary.
type RoundScore struct {
	Round int
	Score int
	Total int
}

// Totals is the cross-round aggregate of a session.
type Totals struct {
	CorrectAll int
	TotalAll   int
	PerRound   []RoundScore
}

// Aggregate recomputes session totals from the completed rounds alone.
// There are no hidden running counters to drift; calling it at any time
// yields the same answer for the same results.
func Aggregate(sess *QuizSession) Totals {
	t := Totals{PerRound: make([]RoundScore, 0, len(sess.Results))}
	for _, r := range sess.Results {
		t.CorrectAll += r.Score
		t.TotalAll += r.Total
		t.PerRound = append(t.PerRound, RoundScore{Round: r.Number, Score: r.Score, Total: r.Total})
	}
	return t
}

// Coordinator owns the session lifecycle across rounds: starting sessions,
// recording answers through the history collaborator, persisting round
// scores, and rolling wrong answers into repeat rounds.
//
// An empty userID means anonymous: the coordinator then skips every
// persistence call and sessions exist only in memory.
type Coordinator struct {
	questions QuestionRepo
	history   HistoryRepo
	sessions  SessionStore
	userID    string
	rng       *rand.Rand
}

// NewCoordinator wires a coordinator. history and sessions may be nil for
// hosts without persistence; a nil rng falls back to a time-seeded one.
func NewCoordinator(questions QuestionRepo, history HistoryRepo, sessions SessionStore, userID string, rng *rand.Rand) *Coordinator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Coordinator{
		questions: questions,
		history:   history,
		sessions:  sessions,
		userID:    userID,
		rng:       rng,
	}
}

func (c *Coordinator) persisting() bool {
	return c.userID != "" && c.sessions != nil
}

// UserID returns the user this coordinator records history for, empty when
// anonymous.
func (c *Coordinator) UserID() string { return c.userID }

// StatsFor returns the user's answer stats for a test, or nil for anonymous
// users. Hosts pass the result to Selector.Select.
func (c *Coordinator) StatsFor(ctx context.Context, testID string) (map[int]AnswerStat, error) {
	if c.userID == "" || c.history == nil {
		return nil, nil
	}
	return c.history.StatsFor(ctx, c.userID, testID)
}

// StartSession begins round 1 over pre-selected questions (the caller runs
// the Selector first). For persisting users a session record is opened with
// score 0; repository failures propagate unmodified.
func (c *Coordinator) StartSession(ctx context.Context, testID string, questions []Question) (*QuizSession, error) {
	sess := &QuizSession{
		TestID: testID,
		Round:  NewRound(1, questions),
	}
	if c.persisting() {
		id, err := c.sessions.CreateSession(ctx, c.userID, testID, 0, len(questions))
		if err != nil {
			return nil, fmt.Errorf("create session record: %w", err)
		}
		sess.RecordID = id
	}
	return sess, nil
}

// SubmitAnswer submits an option for the session's current question and
// notifies the history collaborator of the outcome. It returns whether the
// answer was correct.
func (c *Coordinator) SubmitAnswer(ctx context.Context, sess *QuizSession, optionIndex int) (bool, error) {
	q, ok := sess.Round.Current()
	if !ok {
		return false, fmt.Errorf("submit on completed round: %w", ErrInvalidTransition)
	}
	correct, err := sess.Round.Submit(optionIndex)
	if err != nil {
		return false, err
	}
	if c.userID != "" && c.history != nil {
		if err := c.history.RecordAnswer(ctx, c.userID, sess.TestID, q.ID, correct, sess.RecordID); err != nil {
			return correct, fmt.Errorf("record answer: %w", err)
		}
	}
	return correct, nil
}

// Advance moves the session past an answered question. When that completes
// the round it finalizes the result via OnRoundComplete and returns it;
// otherwise it returns nil.
func (c *Coordinator) Advance(ctx context.Context, sess *QuizSession) (*RoundResult, error) {
	result, err := sess.Round.Advance()
	if err != nil || result == nil {
		return nil, err
	}
	if err := c.OnRoundComplete(ctx, sess, *result); err != nil {
		return result, err
	}
	return result, nil
}

// OnRoundComplete appends the result to the session history and, for
// persisting users, writes the final score to the current session record.
// The write happens exactly once per record even if the completion fires
// again.
func (c *Coordinator) OnRoundComplete(ctx context.Context, sess *QuizSession, result RoundResult) error {
	sess.Results = append(sess.Results, result)
	if c.persisting() && sess.RecordID != "" && !sess.scoreSaved {
		if err := c.sessions.UpdateSessionScore(ctx, sess.RecordID, result.Score, result.Total); err != nil {
			return fmt.Errorf("save session score: %w", err)
		}
		sess.scoreSaved = true
	}
	return nil
}

// RepeatWrong starts the next round over the questions missed in the last
// completed round, shuffled, backed by a fresh session record. It returns
// nil when the last round had no wrong answers: the quiz is truly finished.
func (c *Coordinator) RepeatWrong(ctx context.Context, sess *QuizSession) (*QuizSession, error) {
	if len(sess.Results) == 0 {
		return nil, nil
	}
	last := sess.Results[len(sess.Results)-1]
	if len(last.Wrong) == 0 {
		return nil, nil
	}

	next := make([]Question, len(last.Wrong))
	copy(next, last.Wrong)
	c.rng.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })

	sess.Round = NewRound(last.Number+1, next)
	sess.RecordID = ""
	sess.scoreSaved = false
	if c.persisting() {
		id, err := c.sessions.CreateSession(ctx, c.userID, sess.TestID, 0, len(next))
		if err != nil {
			return nil, fmt.Errorf("create repeat session record: %w", err)
		}
		sess.RecordID = id
	}
	return sess, nil
}

// StartFromWrongRefs builds a one-off practice session from wrong-answer
// references gathered across past sessions. Refs are deduplicated by
// (testID, questionID) with the first occurrence winning, grouped by test,
// resolved through the question repository, concatenated and shuffled. It
// returns nil when nothing resolves, creating no session.
func (c *Coordinator) StartFromWrongRefs(ctx context.Context, refs []WrongRef) (*QuizSession, error) {
	seen := make(map[WrongRef]bool, len(refs))
	byTest := make(map[string][]int)
	var testOrder []string
	for _, ref := range refs {
		if ref.TestID == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		if _, ok := byTest[ref.TestID]; !ok {
			testOrder = append(testOrder, ref.TestID)
		}
		byTest[ref.TestID] = append(byTest[ref.TestID], ref.QuestionID)
	}

	var pool []Question
	var testID string
	for _, tid := range testOrder {
		qs, err := c.questions.QuestionsByIDs(ctx, tid, byTest[tid])
		if err != nil {
			return nil, fmt.Errorf("resolve wrong answers for test %s: %w", tid, err)
		}
		pool = append(pool, qs...)
		if len(qs) > 0 {
			testID = tid
		}
	}
	if len(pool) == 0 {
		return nil, nil
	}

	c.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return c.StartSession(ctx, testID, pool)
}
