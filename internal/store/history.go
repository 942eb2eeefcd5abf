package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsoni/quizdrill/internal/quiz"
)

type historyRepo struct {
	db *sql.DB
}

var _ quiz.HistoryRepo = (*historyRepo)(nil)

func (r *historyRepo) StatsFor(ctx context.Context, userID, testID string) (map[int]quiz.AnswerStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, SUM(correct), COUNT(*)
		 FROM answers
		 WHERE user_id = ? AND test_id = ?
		 GROUP BY question_id`,
		userID, testID)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]quiz.AnswerStat)
	for rows.Next() {
		var qid, correct, total int
		if err := rows.Scan(&qid, &correct, &total); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[qid] = quiz.AnswerStat{Correct: correct, Wrong: total - correct}
	}
	return stats, rows.Err()
}

func (r *historyRepo) RecordAnswer(ctx context.Context, userID, testID string, questionID int, correct bool, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (user_id, test_id, question_id, correct, session_id)
		 VALUES (?, ?, ?, ?, ?)`,
		userID, testID, questionID, boolToInt(correct), sessionID)
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
