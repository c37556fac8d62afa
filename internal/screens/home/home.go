package home

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/screens/history"
	"github.com/abhisek/mockinterview/internal/screens/placeholder"
	"github.com/abhisek/mockinterview/internal/store"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

const noLLMReason = "No LLM API key is configured.\nSet GROQ_API_KEY (or another provider key) and restart."

// Deps are the screen factories and state the home menu links to. A nil
// factory shows a placeholder instead.
type Deps struct {
	StartInterview func() screen.Screen
	ViewResults    func() screen.Screen
	Chat           func() screen.Screen
	EventRepo      store.EventRepo

	// LLMReady is false when no provider key is configured.
	LLMReady bool
	// Provider is a short "provider · model" label.
	Provider string
}

// Stats are totals over past interviews.
type Stats struct {
	Completed    int
	Abandoned    int
	AverageScore float64
}

// entry is a menu line. A disabled entry opens a placeholder explaining
// why instead of its screen.
type entry struct {
	label    string
	disabled bool
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	entries []entry
	stats   Stats
	mic     MicVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps, stats: loadStats(context.Background(), deps.EventRepo)}

	switch {
	case !deps.LLMReady:
		h.mic = MicMuted
	case h.stats.Completed > 0 && h.stats.AverageScore >= 7:
		h.mic = MicProudly
	default:
		h.mic = MicReady
	}

	h.add("START INTERVIEW", !deps.LLMReady || deps.StartInterview == nil,
		func() screen.Screen { return deps.StartInterview() },
		func() screen.Screen { return placeholder.New("Interview", noLLMReason) })
	h.add("VIEW RESULTS", deps.ViewResults == nil,
		func() screen.Screen { return deps.ViewResults() },
		func() screen.Screen { return placeholder.New("Results", "Results are not available.") })
	h.add("CHATBOT", !deps.LLMReady || deps.Chat == nil,
		func() screen.Screen { return deps.Chat() },
		func() screen.Screen { return placeholder.New("Chatbot", noLLMReason) })
	h.add("HISTORY", deps.EventRepo == nil,
		func() screen.Screen { return history.New(deps.EventRepo) },
		func() screen.Screen { return placeholder.New("History", "The event log is not available.") })

	h.entries = append(h.entries, entry{label: "EXIT"})
	h.menu.Items = append(h.menu.Items, components.MenuItem{
		Label:    "EXIT",
		Shortcut: strconv.Itoa(len(h.entries)),
		Action:   func() tea.Cmd { return tea.Quit },
	})
	return h
}

// add appends a menu entry that pushes open, or fallback when disabled.
// Shortcuts number the entries from 1.
func (h *HomeScreen) add(label string, disabled bool, open, fallback func() screen.Screen) {
	h.entries = append(h.entries, entry{label: label, disabled: disabled})
	target := open
	if disabled {
		target = fallback
	}
	h.menu.Items = append(h.menu.Items, components.MenuItem{
		Label:    label,
		Shortcut: strconv.Itoa(len(h.entries)),
		Action:   func() tea.Cmd { return push(target()) },
	})
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

// loadStats summarizes the terminal event of every past session.
func loadStats(ctx context.Context, repo store.EventRepo) Stats {
	var st Stats
	if repo == nil {
		return st
	}
	events, err := repo.QuerySessionEvents(ctx, store.QueryOpts{})
	if err != nil {
		return st
	}
	var sum float64
	for _, e := range events {
		switch e.Action {
		case store.ActionComplete:
			st.Completed++
			sum += e.AverageScore
		case store.ActionAbandon:
			st.Abandoned++
		}
	}
	if st.Completed > 0 {
		st.AverageScore = sum / float64(st.Completed)
	}
	return st
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes the app header and footer; the frame adds two more rows.
	full := height + 8
	compact := full < 30 || width < 100
	cw := contentWidth(width)

	sections := []string{center(components.Banner(cw), cw)}
	if !compact {
		sections = append(sections, center(RenderMic(h.mic), cw))
	}
	switch {
	case !h.deps.LLMReady:
		sections = append(sections, line(theme.Accent, cw, "⚠ Set an LLM API key to start an interview (see mockinterview config init)"))
	case h.deps.Provider != "":
		sections = append(sections, line(theme.TextDim, cw, h.deps.Provider))
	}
	sections = append(sections,
		renderStats(h.stats, cw, compact),
		renderMenu(h.entries, h.menu.Selected, cw, full >= 34),
	)
	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
