package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dsoni/quizdrill/internal/ui/theme"
)

// Checklist is a multi-select list with checkbox toggles.
type Checklist struct {
	Items    []string
	Checked  []bool
	Selected int
	Focused  bool
}

// NewChecklist creates a checklist with every item checked.
func NewChecklist(items []string) Checklist {
	checked := make([]bool, len(items))
	for i := range checked {
		checked[i] = true
	}
	return Checklist{
		Items:   items,
		Checked: checked,
	}
}

// Update handles keyboard navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	if !c.Focused {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Items)-1 {
			c.Selected++
		}
	case " ", "space":
		if c.Selected >= 0 && c.Selected < len(c.Checked) {
			c.Checked[c.Selected] = !c.Checked[c.Selected]
		}
	case "a":
		all := c.AllChecked()
		for i := range c.Checked {
			c.Checked[i] = !all
		}
	}

	return c, nil
}

// View renders the checklist.
func (c Checklist) View() string {
	var s string
	for i, item := range c.Items {
		box := "[ ]"
		if c.Checked[i] {
			box = "[x]"
		}
		prefix := "  "
		if c.Focused && i == c.Selected {
			prefix = "▸ "
		}

		line := prefix + box + " " + item
		if c.Focused && i == c.Selected {
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		} else if c.Checked[i] {
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		}
	}
	return s
}

// CheckedItems returns the set of checked items.
func (c Checklist) CheckedItems() map[string]bool {
	out := make(map[string]bool)
	for i, item := range c.Items {
		if c.Checked[i] {
			out[item] = true
		}
	}
	return out
}

// AllChecked reports whether every item is checked.
func (c Checklist) AllChecked() bool {
	for _, ch := range c.Checked {
		if !ch {
			return false
		}
	}
	return true
}

// CheckedCount returns the number of checked items.
func (c Checklist) CheckedCount() int {
	n := 0
	for _, ch := range c.Checked {
		if ch {
			n++
		}
	}
	return n
}
