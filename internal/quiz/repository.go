package quiz

import "context"

// QuestionRepo resolves questions for a test. Implemented by the deck
// catalog; the core never loads questions itself.
type QuestionRepo interface {
	// QuestionsForTest returns every question in the test.
	QuestionsForTest(ctx context.Context, testID string) ([]Question, error)

	// QuestionsByIDs returns the test's questions matching ids. Unknown ids
	// are skipped, not errors.
	QuestionsByIDs(ctx context.Context, testID string, ids []int) ([]Question, error)

	// TagsForTest returns the distinct tags in the test, in first-seen order.
	TagsForTest(ctx context.Context, testID string) ([]string, error)
}

// HistoryRepo records and aggregates per-question answer outcomes.
type HistoryRepo interface {
	// StatsFor returns the user's per-question aggregates for a test, keyed
	// by question ID. Questions never answered have no entry.
	StatsFor(ctx context.Context, userID, testID string) (map[int]AnswerStat, error)

	// RecordAnswer appends one answer outcome.
	RecordAnswer(ctx context.Context, userID, testID string, questionID int, correct bool, sessionID string) error
}

// SessionStore persists scored session records.
type SessionStore interface {
	// CreateSession opens a new session record and returns its ID.
	CreateSession(ctx context.Context, userID, testID string, score, total int) (string, error)

	// UpdateSessionScore sets the final score of a session record.
	UpdateSessionScore(ctx context.Context, sessionID string, score, total int) error

	// WrongAnswersForSession returns the questions answered incorrectly in
	// a past session.
	WrongAnswersForSession(ctx context.Context, sessionID string) ([]WrongRef, error)
}
