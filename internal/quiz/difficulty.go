package quiz

// neutralScore is the prior for questions with no recorded answers, so
// untested questions rank level with average-difficulty ones.
const neutralScore = 0.5

// DifficultyScore returns the re-selection priority for q given the user's
// answer history, as the empirical error rate in [0, 1]. Higher means the
// user gets this question wrong more often.
func DifficultyScore(q Question, stats map[int]AnswerStat) float64 {
	st, ok := stats[q.ID]
	if !ok {
		return neutralScore
	}
	total := st.Correct + st.Wrong
	if total == 0 {
		return neutralScore
	}
	return float64(st.Wrong) / float64(total)
}
