package catalog

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsoni/quizdrill/internal/deck"
	"github.com/dsoni/quizdrill/internal/quiz"
	"github.com/dsoni/quizdrill/internal/router"
	"github.com/dsoni/quizdrill/internal/screens/history"
	"github.com/dsoni/quizdrill/internal/screens/setup"
	"github.com/dsoni/quizdrill/internal/store"
	"github.com/dsoni/quizdrill/internal/ui/components"
	"github.com/dsoni/quizdrill/internal/ui/theme"
)

// CatalogScreen is the entry screen: the list of loaded decks plus
// navigation into history.
type CatalogScreen struct {
	catalog *deck.Catalog
	coord   *quiz.Coordinator
	st      *store.Store
	menu    components.Menu
}

var _ router.Screen = (*CatalogScreen)(nil)

// New creates the catalog screen over the loaded decks.
func New(catalog *deck.Catalog, coord *quiz.Coordinator, st *store.Store) *CatalogScreen {
	s := &CatalogScreen{
		catalog: catalog,
		coord:   coord,
		st:      st,
	}

	var items []components.MenuItem
	for _, d := range catalog.Decks() {
		d := d
		items = append(items, components.MenuItem{
			Label:  d.Title,
			Detail: fmt.Sprintf("%d questions · %d tags", len(d.Questions), len(d.Tags())),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: setup.New(d, coord)}
				}
			},
		})
	}
	if len(items) == 0 {
		items = append(items, components.MenuItem{
			Label:    "No decks found",
			Disabled: true,
		})
	}

	items = append(items, components.MenuItem{
		Label: "History",
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(st, coord, catalog)}
			}
		},
		Disabled: coord.UserID() == "" || st == nil,
	})
	items = append(items, components.MenuItem{
		Label: "Quit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	s.menu = components.NewMenu(items)
	return s
}

func (s *CatalogScreen) Init() tea.Cmd {
	return nil
}

func (s *CatalogScreen) Title() string {
	return "Decks"
}

func (s *CatalogScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CatalogScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Pick a deck"))
	b.WriteString("\n\n")

	if s.catalog.Len() == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Drop deck YAML files into the decks directory and restart."))
		b.WriteString("\n\n")
	}

	menu := s.menu.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	content := b.String()
	return lipgloss.PlaceVertical(height, lipgloss.Center, content)
}
