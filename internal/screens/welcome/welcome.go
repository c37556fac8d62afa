// Package welcome is the splash screen. It shows the banner and a short
// preflight list (LLM provider, microphone, speech backend) before
// handing over to the home screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

const (
	frame      = 120 * time.Millisecond
	checkEvery = 3 // frames between preflight lines
)

// Check is one preflight line. Detail explains a failure or names what
// was found.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

type frameMsg struct{}

// WelcomeScreen reveals the banner and checks frame by frame. Any key
// moves on to the home screen.
type WelcomeScreen struct {
	next   func() screen.Screen
	checks []Check
	frames int
	done   bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen, checks ...Check) *WelcomeScreen {
	return &WelcomeScreen{next: next, checks: checks}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(frame, func(time.Time) tea.Msg { return frameMsg{} })
}

// revealed is how many checks are visible.
func (w *WelcomeScreen) revealed() int {
	return min(w.frames/checkEvery, len(w.checks))
}

// settled reports whether every check is shown and animation can stop.
func (w *WelcomeScreen) settled() bool {
	return w.revealed() == len(w.checks) && w.frames >= checkEvery
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.settled() {
			return w, nil
		}
		w.frames++
		return w, tick()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		home := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{
		components.Banner(width),
		theme.Body.Bold(true).Render("Practice your next interview out loud."),
		"",
	}

	n := w.revealed()
	for _, c := range w.checks[:n] {
		parts = append(parts, renderCheck(c))
	}
	if w.settled() {
		parts = append(parts, "", theme.Hint.Render(w.prompt()))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (w *WelcomeScreen) prompt() string {
	for _, c := range w.checks {
		if !c.OK {
			return "some features are limited · press any key to continue"
		}
	}
	return "press any key to continue"
}

func renderCheck(c Check) string {
	mark := theme.Correct.Render("✓")
	if !c.OK {
		mark = theme.Incorrect.Render("✗")
	}
	line := mark + " " + theme.Body.Render(padRight(c.Name, 12))
	if c.Detail != "" {
		line += theme.Hint.Render(c.Detail)
	}
	return line
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
