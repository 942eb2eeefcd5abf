package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

// stubScreen is a minimal Screen for router tests.
type stubScreen struct {
	name     string
	initRan  bool
	lastMsg  tea.Msg
	updCount int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.lastMsg = msg
	s.updCount++
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }

func (s *stubScreen) Title() string { return s.name }

func TestPushPopStack(t *testing.T) {
	first := &stubScreen{name: "first"}
	r := New(first)

	if r.Depth() != 1 {
		t.Fatalf("initial depth = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Fatal("active screen should be the initial screen")
	}

	second := &stubScreen{name: "second"}
	r.Update(PushScreenMsg{Screen: second})

	if r.Depth() != 2 {
		t.Fatalf("depth after push = %d, want 2", r.Depth())
	}
	if !second.initRan {
		t.Error("pushed screen Init was not called")
	}
	if r.Active() != second {
		t.Error("active screen should be the pushed screen")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Fatalf("depth after pop = %d, want 1", r.Depth())
	}
	if r.Active() != first {
		t.Error("active screen should be the initial screen after pop")
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	r := New(&stubScreen{name: "only"})

	r.Update(PopScreenMsg{})
	r.Update(PopScreenMsg{})

	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}
	if r.Active() == nil {
		t.Fatal("active screen should not be nil")
	}
}

func TestReplaceSwapsTopScreen(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}
	r := New(first)
	r.Update(PushScreenMsg{Screen: second})

	replacement := &stubScreen{name: "replacement"}
	r.Update(ReplaceScreenMsg{Screen: replacement})

	if r.Depth() != 2 {
		t.Fatalf("depth after replace = %d, want 2", r.Depth())
	}
	if !replacement.initRan {
		t.Error("replacement Init was not called")
	}
	if r.Active() != replacement {
		t.Error("active screen should be the replacement")
	}

	r.Update(PopScreenMsg{})
	if r.Active() != first {
		t.Error("pop after replace should land on the first screen")
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	first := &stubScreen{name: "first"}
	second := &stubScreen{name: "second"}
	r := New(first)
	r.Update(PushScreenMsg{Screen: second})

	type customMsg struct{}
	r.Update(customMsg{})

	if second.updCount != 1 {
		t.Errorf("active screen updates = %d, want 1", second.updCount)
	}
	if first.updCount != 0 {
		t.Errorf("inactive screen updates = %d, want 0", first.updCount)
	}
	if _, ok := second.lastMsg.(customMsg); !ok {
		t.Errorf("active screen got %T, want customMsg", second.lastMsg)
	}
}
