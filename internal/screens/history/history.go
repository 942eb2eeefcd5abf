package history

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
	"github.com/dsoni/quizdrill/internal/store"
	"github.com/dsoni/quizdrill/internal/ui/layout"
	"github.com/dsoni/quizdrill/internal/ui/theme"
)

// historyLoadedMsg carries the user's past sessions.
type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// retryReadyMsg is sent when a wrong-answer practice session was built.
type retryReadyMsg struct {
	Sess *quiz.QuizSession
	Err  error
}

// HistoryScreen lists past sessions and lets the user re-drill the
// questions they missed.
type HistoryScreen struct {
	st      *store.Store
	coord   *quiz.Coordinator
	catalog *deck.Catalog

	sessions []store.SessionRecord
	selected int
	loaded   bool
	hint     string
	errMsg   string
}

var _ router.Screen = (*HistoryScreen)(nil)
var _ router.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen.
func New(st *store.Store, coord *quiz.Coordinator, catalog *deck.Catalog) *HistoryScreen {
	return &HistoryScreen{
		st:      st,
		coord:   coord,
		catalog: catalog,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		sessions, err := s.st.ListSessions(context.Background(), s.coord.UserID())
		return historyLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Redo missed"},
		{Key: "W", Description: "Redo all missed"},
		{Key: "Esc", Description: "Back"},
	}
}

// retrySession builds a practice drill from one session's wrong answers.
func (s *HistoryScreen) retrySession(rec store.SessionRecord) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		refs, err := s.st.Sessions().WrongAnswersForSession(ctx, rec.ID)
		if err != nil {
			return retryReadyMsg{Err: err}
		}
		sess, err := s.coord.StartFromWrongRefs(ctx, refs)
		return retryReadyMsg{Sess: sess, Err: err}
	}
}

// retryAll builds a practice drill from every wrong answer on record.
func (s *HistoryScreen) retryAll() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		refs, err := s.st.WrongAnswers(ctx, s.coord.UserID())
		if err != nil {
			return retryReadyMsg{Err: err}
		}
		sess, err := s.coord.StartFromWrongRefs(ctx, refs)
		return retryReadyMsg{Sess: sess, Err: err}
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case retryReadyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Sess == nil {
			s.hint = "Nothing to redo — no missed questions remain in loaded decks."
			return s, nil
		}
		d, ok := s.catalog.Get(msg.Sess.TestID)
		if !ok {
			s.hint = "The deck for those questions is no longer loaded."
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: drill.New(s.coord, msg.Sess, d)}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= 0 && s.selected < len(s.sessions) {
				s.hint = ""
				return s, s.retrySession(s.sessions[s.selected])
			}
		case "w", "W":
			s.hint = ""
			return s, s.retryAll()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg))
	}
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading history..."))
	}
	if len(s.sessions) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No sessions yet. Finish a drill and come back."))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Past sessions"))
	b.WriteString("\n\n")

	var rows strings.Builder
	for i, rec := range s.sessions {
		title := rec.TestID
		if d, ok := s.catalog.Get(rec.TestID); ok {
			title = d.Title
		}
		percent := 0
		if rec.Total > 0 {
			percent = rec.Score * 100 / rec.Total
		}
		line := fmt.Sprintf("%s  %-28s  %2d / %-2d  %3d%%",
			rec.CreatedAt.Format("2006-01-02 15:04"), title, rec.Score, rec.Total, percent)

		if i == s.selected {
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ " + line))
		} else {
			rows.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + line))
		}
		rows.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, rows.String()))

	if s.hint != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(s.hint)))
	}

	return lipgloss.PlaceVertical(height, lipgloss.Center, b.String())
}
