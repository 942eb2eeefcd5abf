package drill

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/quiz"
	"github.com/dsoni/quizdrill/internal/router"
	"github.com/dsoni/quizdrill/internal/ui/components"
	"github.com/dsoni/quizdrill/internal/ui/layout"
	"github.com/dsoni/quizdrill/internal/ui/theme"
)

// repeatStartedMsg is sent when the repeat-wrong round is ready.
type repeatStartedMsg struct {
	Sess *quiz.QuizSession
	Err  error
}

// resultsScreen shows the finished round: score, cumulative totals, the
// questions that were missed, and what to do next.
type resultsScreen struct {
	coord  *quiz.Coordinator
	sess   *quiz.QuizSession
	deck   *deck.Deck
	result quiz.RoundResult
	menu   components.Menu
	errMsg string
}

var _ router.Screen = (*resultsScreen)(nil)
var _ router.KeyHintProvider = (*resultsScreen)(nil)

func newResultsScreen(coord *quiz.Coordinator, sess *quiz.QuizSession, d *deck.Deck, result quiz.RoundResult) *resultsScreen {
	s := &resultsScreen{
		coord:  coord,
		sess:   sess,
		deck:   d,
		result: result,
	}

	var items []components.MenuItem
	if len(result.Wrong) > 0 {
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("Repeat wrong answers (%d)", len(result.Wrong)),
			Action: func() tea.Cmd {
				return s.repeatWrong()
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "Back to decks",
		Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		},
	})
	s.menu = components.NewMenu(items)
	return s
}

func (s *resultsScreen) Init() tea.Cmd {
	return nil
}

func (s *resultsScreen) Title() string {
	return fmt.Sprintf("%s · Results", s.deck.Title)
}

func (s *resultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

// repeatWrong asks the coordinator for the next round over the missed
// questions.
func (s *resultsScreen) repeatWrong() tea.Cmd {
	return func() tea.Msg {
		next, err := s.coord.RepeatWrong(context.Background(), s.sess)
		return repeatStartedMsg{Sess: next, Err: err}
	}
}

func (s *resultsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case repeatStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Sess == nil {
			// Nothing left to repeat.
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: New(s.coord, msg.Sess, s.deck)}
		}

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *resultsScreen) View(width, height int) string {
	var b strings.Builder

	score, total := s.result.Score, s.result.Total
	percent := 0
	if total > 0 {
		percent = score * 100 / total
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("Round %d complete", s.result.Number)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("%d / %d correct (%d%%)", score, total, percent)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(bandColor(percent)).
		Render(bandMessage(percent)))
	b.WriteString("\n\n")

	// Cumulative totals once more than one round was played.
	totals := quiz.Aggregate(s.sess)
	if len(totals.PerRound) > 1 {
		var rows []string
		for _, r := range totals.PerRound {
			rows = append(rows, fmt.Sprintf("Round %d    %d / %d", r.Round, r.Score, r.Total))
		}
		rows = append(rows, fmt.Sprintf("Overall    %d / %d", totals.CorrectAll, totals.TotalAll))
		table := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(rows, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, table))
		b.WriteString("\n\n")
	}

	// Missed questions with the right answer and its explanation.
	if len(s.result.Wrong) > 0 {
		var review strings.Builder
		review.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Missed this round"))
		review.WriteString("\n")
		for _, q := range s.result.Wrong {
			answer := ""
			if q.AnswerIndex >= 0 && q.AnswerIndex < len(q.Options) {
				answer = q.Options[q.AnswerIndex]
			}
			review.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + q.Text))
			review.WriteString("\n")
			review.WriteString(theme.Correct.Render("    → " + answer))
			review.WriteString("\n")
			if q.Explanation != "" {
				review.WriteString(theme.Hint.Render("    " + q.Explanation))
				review.WriteString("\n")
			}
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, review.String()))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg)))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}

func bandMessage(percent int) string {
	switch {
	case percent >= 80:
		return "Excellent work!"
	case percent >= 60:
		return "Good job — a little more practice."
	default:
		return "Keep at it. Repeating the wrong answers helps."
	}
}

// bandColor returns the theme color for a score band.
func bandColor(percent int) color.Color {
	switch {
	case percent >= 80:
		return theme.Success
	case percent >= 60:
		return theme.Accent
	default:
		return theme.Error
	}
}
