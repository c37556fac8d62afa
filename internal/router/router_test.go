package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/screen"
)

// page records its lifecycle into a shared journal.
type page struct {
	title   string
	journal *[]string
}

func (p *page) Init() tea.Cmd {
	*p.journal = append(*p.journal, "init "+p.title)
	return nil
}

func (p *page) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		*p.journal = append(*p.journal, p.title+" got "+k.String())
	}
	return p, nil
}

func (p *page) View(int, int) string { return p.title }
func (p *page) Title() string        { return p.title }

func (p *page) Leave() tea.Cmd {
	*p.journal = append(*p.journal, "leave "+p.title)
	return nil
}

// plain does not implement screen.Leaver.
type plain struct{ title string }

func (s *plain) Init() tea.Cmd                           { return nil }
func (s *plain) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plain) View(int, int) string                    { return s.title }
func (s *plain) Title() string                           { return s.title }

func stack(titles ...string) (*Router, *[]string) {
	var journal []string
	r := New(&page{title: titles[0], journal: &journal})
	for _, t := range titles[1:] {
		r.Push(&page{title: t, journal: &journal})
	}
	journal = nil
	return r, &journal
}

func check(t *testing.T, got *[]string, want ...string) {
	t.Helper()
	if !slices.Equal(*got, want) {
		t.Errorf("journal = %q, want %q", *got, want)
	}
	*got = nil
}

func TestPushInitsAndStacks(t *testing.T) {
	r, journal := stack("Home")
	r.Update(PushScreenMsg{Screen: &page{title: "Interview", journal: journal}})

	check(t, journal, "init Interview")
	if got := r.Trail(); !slices.Equal(got, []string{"Home", "Interview"}) {
		t.Errorf("trail = %v", got)
	}
	if r.View(80, 24) != "Interview" {
		t.Errorf("view = %q", r.View(80, 24))
	}
}

func TestPopLeavesTopOnly(t *testing.T) {
	r, journal := stack("Home", "Interview", "Dashboard")
	r.Update(PopScreenMsg{})

	check(t, journal, "leave Dashboard")
	if r.Active().Title() != "Interview" {
		t.Errorf("active = %q", r.Active().Title())
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r, journal := stack("Home")
	if cmd := r.Pop(); cmd != nil {
		t.Error("expected nil command")
	}
	check(t, journal)
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	r, journal := stack("Welcome")
	r.Update(ReplaceScreenMsg{Screen: &page{title: "Home", journal: journal}})

	check(t, journal, "leave Welcome", "init Home")
	if r.Depth() != 1 || r.Active().Title() != "Home" {
		t.Errorf("trail = %v", r.Trail())
	}
}

func TestPopToRoot(t *testing.T) {
	r, journal := stack("Home", "Interview", "Dashboard", "Chatbot")
	r.Update(PopToRootMsg{})

	check(t, journal, "leave Chatbot", "leave Dashboard", "leave Interview")
	if got := r.Trail(); !slices.Equal(got, []string{"Home"}) {
		t.Errorf("trail = %v", got)
	}
}

func TestUnwind(t *testing.T) {
	r, journal := stack("Home", "Interview")
	r.Unwind()

	check(t, journal, "leave Interview", "leave Home")
	if r.Active() != nil || r.View(80, 24) != "" {
		t.Error("expected an empty router")
	}
	if cmd := r.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("empty router should ignore input")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r, journal := stack("Home", "Interview")
	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	check(t, journal, "Interview got enter")
}

func TestScreensWithoutLeaver(t *testing.T) {
	r := New(&plain{title: "Home"})
	r.Push(&plain{title: "History"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("expected nil command")
	}
	if r.Active().Title() != "Home" {
		t.Errorf("active = %q", r.Active().Title())
	}
}
