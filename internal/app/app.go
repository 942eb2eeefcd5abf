package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/quiz"
	"github.com/dsoni/quizdrill/internal/router"
	"github.com/dsoni/quizdrill/internal/screens/catalog"
	"github.com/dsoni/quizdrill/internal/store"
	"github.com/dsoni/quizdrill/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Catalog *deck.Catalog
	Store   *store.Store
	// User is the history user ID; empty runs the app anonymously with
	// no persistence.
	User string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	user   string
	width  int
	height int
}

// newAppModel wires the coordinator and opens on the catalog screen.
func newAppModel(opts Options) AppModel {
	var history quiz.HistoryRepo
	var sessions quiz.SessionStore
	if opts.Store != nil {
		history = opts.Store.History()
		sessions = opts.Store.Sessions()
	}
	coord := quiz.NewCoordinator(opts.Catalog, history, sessions, opts.User, nil)

	catalogScreen := catalog.New(opts.Catalog, coord, opts.Store)
	return AppModel{
		router: router.New(catalogScreen),
		user:   opts.User,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.user, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(router.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
