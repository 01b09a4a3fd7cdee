package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/nethesap/nethesap/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	seen    []tea.Msg
}

type pingMsg struct{}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPush(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	tyt := &stubScreen{title: "tyt"}
	r.Push(tyt)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "tyt" {
		t.Errorf("expected active 'tyt', got %q", r.Active().Title())
	}
	if !tyt.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "tyt"})

	if !r.Pop() {
		t.Fatal("expected pop to succeed above root")
	}
	if !r.AtRoot() {
		t.Errorf("expected router at root, depth %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
}

func TestPopNoopAtRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	if r.Pop() {
		t.Error("expected pop at root to report false")
	}
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at root, got %d", r.Depth())
	}
}

func TestReplaceScreenMsgKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "tyt"})

	ayt := &stubScreen{title: "ayt"}
	r.Update(ReplaceScreenMsg{Screen: ayt})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "ayt" {
		t.Errorf("expected active 'ayt', got %q", r.Active().Title())
	}
	if !ayt.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestNavigationMessages(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: &stubScreen{title: "tyt"}})
	if r.View(80, 24) != "tyt" {
		t.Errorf("expected 'tyt' view, got %q", r.View(80, 24))
	}

	r.Update(PopScreenMsg{})
	if r.View(80, 24) != "home" {
		t.Errorf("expected 'home' view, got %q", r.View(80, 24))
	}
	if len(home.seen) != 0 {
		t.Errorf("navigation messages should not reach screens, got %d", len(home.seen))
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	tyt := &stubScreen{title: "tyt"}
	r.Push(tyt)

	r.Update(pingMsg{})

	if len(tyt.seen) != 1 {
		t.Errorf("expected active screen to see 1 message, got %d", len(tyt.seen))
	}
	if len(home.seen) != 0 {
		t.Errorf("expected covered screen to see nothing, got %d", len(home.seen))
	}
}
