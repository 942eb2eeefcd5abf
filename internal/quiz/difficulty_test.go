package quiz

import "testing"

func TestDifficultyScore_NoStats(t *testing.T) {
	q := Question{ID: 7}

	if got := DifficultyScore(q, nil); got != 0.5 {
		t.Errorf("score with nil stats = %v, want 0.5", got)
	}
	if got := DifficultyScore(q, map[int]AnswerStat{}); got != 0.5 {
		t.Errorf("score with missing stat = %v, want 0.5", got)
	}
}

func TestDifficultyScore_ZeroTotal(t *testing.T) {
	q := Question{ID: 7}
	stats := map[int]AnswerStat{7: {}}

	if got := DifficultyScore(q, stats); got != 0.5 {
		t.Errorf("score with zero answers = %v, want 0.5", got)
	}
}

func TestDifficultyScore_ErrorRate(t *testing.T) {
	q := Question{ID: 7}

	cases := []struct {
		correct, wrong int
		want           float64
	}{
		{correct: 3, wrong: 1, want: 0.25},
		{correct: 0, wrong: 4, want: 1.0},
		{correct: 5, wrong: 0, want: 0.0},
		{correct: 1, wrong: 1, want: 0.5},
	}
	for _, tc := range cases {
		stats := map[int]AnswerStat{7: {Correct: tc.correct, Wrong: tc.wrong}}
		if got := DifficultyScore(q, stats); got != tc.want {
			t.Errorf("score(%d correct, %d wrong) = %v, want %v", tc.correct, tc.wrong, got, tc.want)
		}
	}
}
