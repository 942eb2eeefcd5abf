package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsoni/quizdrill/internal/quiz"
)

type sessionRepo struct {
	db *sql.DB
}

var _ quiz.SessionStore = (*sessionRepo)(nil)

func (r *sessionRepo) CreateSession(ctx context.Context, userID, testID string, score, total int) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, test_id, score, total)
		 VALUES (?, ?, ?, ?, ?)`,
		id, userID, testID, score, total)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (r *sessionRepo) UpdateSessionScore(ctx context.Context, sessionID string, score, total int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET score = ?, total = ? WHERE id = ?`,
		score, total, sessionID)
	if err != nil {
		return fmt.Errorf("update session score: %w", err)
	}
	return nil
}

func (r *sessionRepo) WrongAnswersForSession(ctx context.Context, sessionID string) ([]quiz.WrongRef, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT test_id, question_id
		 FROM answers
		 WHERE session_id = ? AND correct = 0
		 ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query wrong answers: %w", err)
	}
	defer rows.Close()
	return scanWrongRefs(rows)
}

// SessionRecord is a row from the sessions table, used by the history views.
type SessionRecord struct {
	ID        string
	TestID    string
	Score     int
	Total     int
	CreatedAt time.Time
}

// ListSessions returns the user's past sessions, most recent first.
func (s *Store) ListSessions(ctx context.Context, userID string) ([]SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, test_id, score, total, created_at
		 FROM sessions
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.TestID, &rec.Score, &rec.Total, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// TestAccuracy is the all-time answer accuracy for a single test.
type TestAccuracy struct {
	TestID  string
	Correct int
	Total   int
}

// AccuracyByTest aggregates answer history per test for the given user.
func (s *Store) AccuracyByTest(ctx context.Context, userID string) ([]TestAccuracy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT test_id, SUM(correct), COUNT(*)
		 FROM answers
		 WHERE user_id = ?
		 GROUP BY test_id
		 ORDER BY test_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer rows.Close()

	var out []TestAccuracy
	for rows.Next() {
		var a TestAccuracy
		if err := rows.Scan(&a.TestID, &a.Correct, &a.Total); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// WrongAnswers returns every question the user has ever missed, oldest
// first. Duplicates across sessions are kept; callers dedup as needed.
func (s *Store) WrongAnswers(ctx context.Context, userID string) ([]quiz.WrongRef, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT test_id, question_id
		 FROM answers
		 WHERE user_id = ? AND correct = 0
		 ORDER BY id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query wrong answers: %w", err)
	}
	defer rows.Close()
	return scanWrongRefs(rows)
}

func scanWrongRefs(rows *sql.Rows) ([]quiz.WrongRef, error) {
	var refs []quiz.WrongRef
	for rows.Next() {
		var ref quiz.WrongRef
		if err := rows.Scan(&ref.TestID, &ref.QuestionID); err != nil {
			return nil, fmt.Errorf("scan wrong ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
