package drill

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/quiz"
	"github.com/dsoni/quizdrill/internal/router"
	"github.com/dsoni/quizdrill/internal/ui/components"
	"github.com/dsoni/quizdrill/internal/ui/layout"
	"github.com/dsoni/quizdrill/internal/ui/theme"
)

// DrillScreen runs one round of a quiz session: present, answer, feedback,
// advance.
type DrillScreen struct {
	coord *quiz.Coordinator
	sess  *quiz.QuizSession
	deck  *deck.Deck

	mc           components.MultiChoice
	showFeedback bool
	lastCorrect  bool
	quitConfirm  bool
	errMsg       string
}

var _ router.Screen = (*DrillScreen)(nil)
var _ router.KeyHintProvider = (*DrillScreen)(nil)

// New creates a drill screen over an already-started session.
func New(coord *quiz.Coordinator, sess *quiz.QuizSession, d *deck.Deck) *DrillScreen {
	s := &DrillScreen{
		coord: coord,
		sess:  sess,
		deck:  d,
	}
	s.loadQuestion()
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	return nil
}

func (s *DrillScreen) Title() string {
	if s.sess.Round.Number() > 1 {
		return fmt.Sprintf("%s · Round %d", s.deck.Title, s.sess.Round.Number())
	}
	return s.deck.Title
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave drill"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Quit drill"},
	}
}

// loadQuestion rebuilds the choice component for the round's current
// question.
func (s *DrillScreen) loadQuestion() {
	q, ok := s.sess.Round.Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q.Text, q.Options, q.AnswerIndex)
}

func (s *DrillScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	// Error state: any key returns to the deck list.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if s.showFeedback {
		return s.advance()
	}

	switch key {
	case "esc":
		s.quitConfirm = true
		return s, nil
	case "enter":
		return s.submit(s.mc.Selected)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(s.mc.Options) {
			s.mc.Selected = idx
			return s.submit(idx)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	// MultiChoice marks itself submitted on enter; we handle enter above,
	// so only navigation reaches it.
	return s, cmd
}

// submit answers the current question and switches to feedback.
func (s *DrillScreen) submit(idx int) (router.Screen, tea.Cmd) {
	correct, err := s.coord.SubmitAnswer(context.Background(), s.sess, idx)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.mc.Submitted = true
	s.mc.ChosenIndex = idx
	s.lastCorrect = correct
	s.showFeedback = true
	return s, nil
}

// advance moves past the feedback: next question, or the results screen
// when the round is complete.
func (s *DrillScreen) advance() (router.Screen, tea.Cmd) {
	result, err := s.coord.Advance(context.Background(), s.sess)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if result != nil {
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: newResultsScreen(s.coord, s.sess, s.deck, *result),
			}
		}
	}
	s.showFeedback = false
	s.loadQuestion()
	return s, nil
}

func (s *DrillScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderCentered(width, height,
			theme.Incorrect.Render("Something went wrong: "+s.errMsg)+"\n\n"+
				theme.Hint.Render("Press any key to go back."))
	}
	if s.quitConfirm {
		return renderCentered(width, height,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Leave this drill?")+"\n\n"+
				theme.Hint.Render("Progress for this round will not be scored."))
	}

	round := s.sess.Round
	progressLabel := fmt.Sprintf("Question %d of %d", round.Index()+1, round.Size())
	if round.Complete() {
		progressLabel = fmt.Sprintf("Question %d of %d", round.Size(), round.Size())
	}
	header := fmt.Sprintf("Round %d · %s · Score %d", round.Number(), progressLabel, round.Score())
	if q, ok := round.Current(); ok && q.Tag != "" {
		header += " · " + q.Tag
	}

	barWidth := width / 2
	if barWidth < 20 {
		barWidth = 20
	}
	bar := components.NewProgressBar("", float64(round.Index())/float64(round.Size()), false, barWidth)

	body := lipgloss.NewStyle().Foreground(theme.TextDim).Render(header) + "\n" +
		bar.View() + "\n\n" +
		s.mc.View()

	if s.showFeedback {
		body += "\n" + s.renderFeedback()
	}

	return renderCentered(width, height, body)
}

func (s *DrillScreen) renderFeedback() string {
	var out string
	if s.lastCorrect {
		out = theme.Correct.Render("Correct!")
	} else {
		out = theme.Incorrect.Render("Not quite.")
	}
	if q, ok := s.sess.Round.Current(); ok && q.Explanation != "" {
		out += "\n" + theme.Hint.Render(q.Explanation)
	}
	return out
}

func renderCentered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
