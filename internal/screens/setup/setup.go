package setup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/quiz"
	"github.com/dsoni/quizdrill/internal/router"
	"github.com/dsoni/quizdrill/internal/screens/drill"
	"github.com/dsoni/quizdrill/internal/ui/components"
	"github.com/dsoni/quizdrill/internal/ui/layout"
	"github.com/dsoni/quizdrill/internal/ui/theme"
)

const maxDefaultCount = 25

// focus areas within the setup form.
const (
	focusCount = iota
	focusTags
)

// statsLoadedMsg carries the user's answer history for the deck.
type statsLoadedMsg struct {
	Stats map[int]quiz.AnswerStat
	Err   error
}

// sessionStartedMsg is sent once the coordinator opened the session.
type sessionStartedMsg struct {
	Sess *quiz.QuizSession
	Err  error
}

// SetupScreen configures a drill over one deck: how many questions and
// which tags.
type SetupScreen struct {
	deck  *deck.Deck
	coord *quiz.Coordinator

	count  components.TextInput
	tags   components.Checklist
	focus  int
	stats  map[int]quiz.AnswerStat
	errMsg string
}

var _ router.Screen = (*SetupScreen)(nil)
var _ router.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen for a deck.
func New(d *deck.Deck, coord *quiz.Coordinator) *SetupScreen {
	count := components.NewTextInput(fmt.Sprintf("%d", defaultCountFor(d)), true, 3)
	return &SetupScreen{
		deck:  d,
		coord: coord,
		count: count,
		tags:  components.NewChecklist(d.Tags()),
		focus: focusCount,
	}
}

func (s *SetupScreen) Init() tea.Cmd {
	return tea.Batch(
		s.count.Init(),
		s.loadStats(),
	)
}

func (s *SetupScreen) Title() string {
	return s.deck.Title
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Switch field"},
	}
	if s.focus == focusTags {
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Toggle tag"},
			layout.KeyHint{Key: "A", Description: "All/none"},
		)
	}
	hints = append(hints,
		layout.KeyHint{Key: "Enter", Description: "Start"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

// loadStats fetches answer history so the selector can rank by difficulty.
func (s *SetupScreen) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := s.coord.StatsFor(context.Background(), s.deck.ID)
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			// Fall back to unranked selection; the drill still works.
			s.stats = nil
			return s, nil
		}
		s.stats = msg.Stats
		return s, nil

	case sessionStartedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: drill.New(s.coord, msg.Sess, s.deck)}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			if s.focus == focusCount {
				s.focus = focusTags
				s.tags.Focused = true
				s.count.Model.Blur()
			} else {
				s.focus = focusCount
				s.tags.Focused = false
				return s, s.count.Model.Focus()
			}
			return s, nil
		case "enter":
			return s, s.start()
		}
	}

	var cmd tea.Cmd
	if s.focus == focusCount {
		s.count, cmd = s.count.Update(msg)
	} else {
		s.tags, cmd = s.tags.Update(msg)
	}
	return s, cmd
}

// start validates the form and asks the coordinator for a session over the
// balanced selection.
func (s *SetupScreen) start() tea.Cmd {
	count := defaultCountFor(s.deck)
	if v := s.count.Value(); v != "" {
		n, err := s.count.NumericValue()
		if err != nil || n < 1 {
			s.errMsg = "Enter a number of questions greater than zero."
			return nil
		}
		count = n
	}

	allowed := s.tags.CheckedItems()
	if len(allowed) == 0 {
		s.errMsg = "Check at least one tag."
		return nil
	}

	selected := quiz.NewSelector(nil).Select(s.deck.Questions, allowed, count, s.stats)
	if len(selected) == 0 {
		s.errMsg = "No questions match the checked tags."
		return nil
	}

	s.errMsg = ""
	return func() tea.Msg {
		sess, err := s.coord.StartSession(context.Background(), s.deck.ID, selected)
		return sessionStartedMsg{Sess: sess, Err: err}
	}
}

// defaultCountFor proposes a question count: the whole deck, capped.
func defaultCountFor(d *deck.Deck) int {
	if len(d.Questions) < maxDefaultCount {
		return len(d.Questions)
	}
	return maxDefaultCount
}

// eligible counts the deck questions whose tag is currently checked.
func (s *SetupScreen) eligible() int {
	allowed := s.tags.CheckedItems()
	n := 0
	for _, q := range s.deck.Questions {
		if allowed[q.Tag] {
			n++
		}
	}
	return n
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(s.deck.Title))
	b.WriteString("\n")
	if s.deck.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(s.deck.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := func(text string, focused bool) string {
		st := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		if focused {
			st = st.Foreground(theme.Primary)
		}
		return st.Render(text)
	}

	var form strings.Builder
	form.WriteString(label("Questions", s.focus == focusCount))
	form.WriteString("\n")
	form.WriteString(s.count.View())
	form.WriteString("\n\n")
	form.WriteString(label("Tags", s.focus == focusTags))
	form.WriteString("\n")
	form.WriteString(s.tags.View())
	form.WriteString("\n")

	eligible := s.eligible()
	form.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d questions match the checked tags", eligible)))
	form.WriteString("\n")

	if count, err := s.count.NumericValue(); err == nil && count > eligible && eligible > 0 {
		form.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(fmt.Sprintf("Only %d available — the drill will use all of them.", eligible)))
		form.WriteString("\n")
	}

	if s.errMsg != "" {
		form.WriteString("\n")
		form.WriteString(theme.Incorrect.Render(s.errMsg))
		form.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, form.String()))

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
