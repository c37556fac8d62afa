package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/screens/summary"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// Store reads saved results.
type Store interface {
	dashboard.Loader
	Candidates(ctx context.Context) ([]string, error)
}

// Options configures the lookup screen. Advisor, Location and Chat are
// passed on to the dashboard.
type Options struct {
	Store    Store
	Advisor  *dashboard.Advisor
	Location string
	Chat     func() screen.Screen
}

type candidatesMsg struct {
	IDs []string
	Err error
}

type reportMsg struct {
	Report *dashboard.Report
	Err    error
}

// LookupScreen asks for a candidate ID and opens its saved dashboard.
type LookupScreen struct {
	opts       Options
	input      components.TextInput
	candidates []string
	loading    bool
	errMsg     string
}

var _ screen.Screen = (*LookupScreen)(nil)
var _ screen.KeyHintProvider = (*LookupScreen)(nil)

// New creates a new LookupScreen.
func New(opts Options) *LookupScreen {
	return &LookupScreen{
		opts:  opts,
		input: components.NewTextInput("cand-xxxxxx", 64),
	}
}

func (s *LookupScreen) Init() tea.Cmd {
	st := s.opts.Store
	return tea.Batch(s.input.Init(), func() tea.Msg {
		ids, err := st.Candidates(context.Background())
		return candidatesMsg{IDs: ids, Err: err}
	})
}

func (s *LookupScreen) Title() string {
	return "View Results"
}

func (s *LookupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open dashboard"},
		{Key: "Tab", Description: "Complete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LookupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case candidatesMsg:
		if msg.Err == nil {
			s.candidates = msg.IDs
			s.input.SetSuggestions(msg.IDs)
		}
		return s, nil

	case reportMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			return s, nil
		}
		s.errMsg = ""
		dash := summary.New(summary.Options{
			Report:   msg.Report,
			Advisor:  s.opts.Advisor,
			Location: s.opts.Location,
			Chat:     s.opts.Chat,
		})
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: dash} }

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			if s.loading {
				return s, nil
			}
			s.loading = true
			id := s.input.Value()
			st := s.opts.Store
			return s, func() tea.Msg {
				rep, err := dashboard.Load(context.Background(), st, id)
				return reportMsg{Report: rep, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// errorText shows the sentinel messages as they are and wraps the rest.
func errorText(err error) string {
	switch {
	case errors.Is(err, dashboard.ErrNoCandidate), errors.Is(err, dashboard.ErrNoData):
		return err.Error()
	}
	return fmt.Sprintf("Could not load results: %v", err)
}

func (s *LookupScreen) View(width, height int) string {
	cw := min(max(width-8, 20), 60)
	s.input.SetWidth(cw - 6)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Enter your candidate ID"))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Render(s.input.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(theme.Subtitle.Width(width).Render("Loading results..."))
	case s.errMsg != "":
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render(s.errMsg))
	case len(s.candidates) > 0:
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("%d saved candidates. Press Tab to complete an ID.", len(s.candidates))))
	default:
		b.WriteString(theme.Subtitle.Width(width).Render("No saved results yet."))
	}
	return b.String()
}
