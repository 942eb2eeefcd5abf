package drill

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/quiz"
	"github.com/dsoni/quizdrill/internal/router"
	"github.com/dsoni/quizdrill/internal/ui/theme"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID:    "capitals",
		Title: "European Capitals",
		Questions: []quiz.Question{
			{ID: 1, Tag: "west", Text: "Capital of France?", Options: []string{"Paris", "Lyon", "Nice"}, AnswerIndex: 0, Explanation: "Paris has been the capital since 987."},
			{ID: 2, Tag: "east", Text: "Capital of Poland?", Options: []string{"Krakow", "Warsaw", "Gdansk"}, AnswerIndex: 1},
		},
	}
}

// testDrill starts an anonymous session over the test deck in a fixed
// question order.
func testDrill(t *testing.T) (*DrillScreen, *quiz.QuizSession) {
	t.Helper()
	coord := quiz.NewCoordinator(nil, nil, nil, "", rand.New(rand.NewSource(1)))
	d := testDeck()
	sess, err := coord.StartSession(context.Background(), d.ID, d.Questions)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	return New(coord, sess, d), sess
}

func TestDrillScreen_Title(t *testing.T) {
	s, _ := testDrill(t)
	if s.Title() != "European Capitals" {
		t.Errorf("Title = %q, want %q", s.Title(), "European Capitals")
	}
}

func TestDrillScreen_ShowsCurrentQuestion(t *testing.T) {
	s, _ := testDrill(t)
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty view")
	}
	if s.mc.Question != "Capital of France?" {
		t.Errorf("question = %q, want first deck question", s.mc.Question)
	}
}

func TestDrillScreen_CorrectAnswerShowsFeedback(t *testing.T) {
	s, sess := testDrill(t)

	updated, _ := s.Update(keyPress('1'))
	s = updated.(*DrillScreen)

	if !s.showFeedback {
		t.Fatal("expected feedback after answering")
	}
	if !s.lastCorrect {
		t.Error("option 1 is the right answer for question 1")
	}
	if sess.Round.Score() != 1 {
		t.Errorf("round score = %d, want 1", sess.Round.Score())
	}
}

func TestDrillScreen_FeedbackThenNextQuestion(t *testing.T) {
	s, _ := testDrill(t)

	updated, _ := s.Update(keyPress('1'))
	s = updated.(*DrillScreen)
	updated, _ = s.Update(specialKey(tea.KeyEnter))
	s = updated.(*DrillScreen)

	if s.showFeedback {
		t.Error("feedback should clear after continuing")
	}
	if s.mc.Question != "Capital of Poland?" {
		t.Errorf("question = %q, want second deck question", s.mc.Question)
	}
}

func TestDrillScreen_RoundCompleteShowsResults(t *testing.T) {
	s, _ := testDrill(t)

	// Answer both questions, advancing through feedback.
	updated, _ := s.Update(keyPress('1'))
	s = updated.(*DrillScreen)
	updated, _ = s.Update(specialKey(tea.KeyEnter))
	s = updated.(*DrillScreen)

	updated, _ = s.Update(keyPress('1')) // wrong: answer is option 2
	s = updated.(*DrillScreen)
	if s.lastCorrect {
		t.Fatal("option 1 is wrong for question 2")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command when the round completes")
	}
	msg := cmd()
	rep, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want ReplaceScreenMsg", msg)
	}
	res, ok := rep.Screen.(*resultsScreen)
	if !ok {
		t.Fatalf("got %T, want results screen", rep.Screen)
	}
	if res.result.Score != 1 || res.result.Total != 2 {
		t.Errorf("result = %d/%d, want 1/2", res.result.Score, res.result.Total)
	}
	if len(res.result.Wrong) != 1 {
		t.Errorf("wrong count = %d, want 1", len(res.result.Wrong))
	}
}

func TestDrillScreen_QuitConfirm(t *testing.T) {
	s, _ := testDrill(t)

	updated, _ := s.Update(specialKey(tea.KeyEscape))
	s = updated.(*DrillScreen)
	if !s.quitConfirm {
		t.Fatal("esc should open the quit confirmation")
	}

	updated, _ = s.Update(keyPress('n'))
	s = updated.(*DrillScreen)
	if s.quitConfirm {
		t.Error("n should cancel the quit confirmation")
	}

	updated, _ = s.Update(specialKey(tea.KeyEscape))
	s = updated.(*DrillScreen)
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("y should produce a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("y should pop back to the deck list")
	}
}

func TestDrillScreen_OutOfRangeNumberIgnored(t *testing.T) {
	s, _ := testDrill(t)

	updated, _ := s.Update(keyPress('9'))
	s = updated.(*DrillScreen)
	if s.showFeedback {
		t.Error("a number past the option count should not submit")
	}
}

func TestResultsScreen_RepeatWrongStartsNextRound(t *testing.T) {
	s, sess := testDrill(t)

	// Miss both questions.
	for i := 0; i < 2; i++ {
		updated, _ := s.Update(keyPress('3'))
		s = updated.(*DrillScreen)
		updated, cmd := s.Update(specialKey(tea.KeyEnter))
		if i == 0 {
			s = updated.(*DrillScreen)
		} else {
			res := cmd().(router.ReplaceScreenMsg).Screen.(*resultsScreen)

			// First menu item repeats the wrong answers.
			_, repeatCmd := res.Update(specialKey(tea.KeyEnter))
			if repeatCmd == nil {
				t.Fatal("expected a command from the repeat item")
			}
			msg := repeatCmd().(repeatStartedMsg)
			if msg.Err != nil {
				t.Fatalf("repeat wrong: %v", msg.Err)
			}
			if msg.Sess == nil {
				t.Fatal("expected a new round over the missed questions")
			}
			if msg.Sess.Round.Number() != 2 {
				t.Errorf("round number = %d, want 2", msg.Sess.Round.Number())
			}
			if msg.Sess.Round.Size() != 2 {
				t.Errorf("round size = %d, want 2", msg.Sess.Round.Size())
			}
		}
	}

	if len(sess.Results) != 1 {
		t.Errorf("recorded results = %d, want 1", len(sess.Results))
	}
}

func TestResultsScreen_ReviewShowsAnswerAndExplanation(t *testing.T) {
	s, sess := testDrill(t)
	d := testDeck()
	missed := d.Questions[0] // has an explanation
	result := quiz.RoundResult{Number: 1, Score: 1, Total: 2, Wrong: []quiz.Question{missed}}

	res := newResultsScreen(s.coord, sess, d, result)
	view := res.View(80, 24)

	if !strings.Contains(view, "Paris") {
		t.Error("review should show the correct answer for a missed question")
	}
	if !strings.Contains(view, missed.Explanation) {
		t.Error("review should show the missed question's explanation")
	}
}

func TestBandColors(t *testing.T) {
	if bandColor(85) != theme.Success {
		t.Error("scores of 80%+ should use the success color")
	}
	if bandColor(70) != theme.Accent {
		t.Error("scores of 60-79% should use the accent color")
	}
	if bandColor(30) != theme.Error {
		t.Error("scores under 60% should use the error color")
	}
}

func TestBandMessages(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{100, "Excellent work!"},
		{80, "Excellent work!"},
		{79, "Good job — a little more practice."},
		{60, "Good job — a little more practice."},
		{59, "Keep at it. Repeating the wrong answers helps."},
		{0, "Keep at it. Repeating the wrong answers helps."},
	}
	for _, tt := range tests {
		if got := bandMessage(tt.percent); got != tt.want {
			t.Errorf("bandMessage(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}
