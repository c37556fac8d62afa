package summary

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

const advicePollInterval = 250 * time.Millisecond

// adviceTickMsg polls the advisor for a finished result.
type adviceTickMsg time.Time

// Options configures the dashboard screen.
type Options struct {
	Report *dashboard.Report

	// Advisor produces personalised feedback. Nil skips the section.
	Advisor *dashboard.Advisor

	// Location for job search links. Empty means dashboard.DefaultLocation.
	Location string

	// Chat opens the career chatbot. Nil hides the shortcut.
	Chat func() screen.Screen

	// OnRestart runs after the screen pops when the candidate starts a new
	// interview. Nil hides the button.
	OnRestart tea.Cmd
}

// SummaryScreen renders the interview performance dashboard.
type SummaryScreen struct {
	opts    Options
	advice  *dashboard.Advice
	waiting bool

	vp      viewport.Model
	spin    spinner.Model
	restart components.Action
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a dashboard screen for a finished report.
func New(opts Options) *SummaryScreen {
	if opts.Location == "" {
		opts.Location = dashboard.DefaultLocation
	}
	s := &SummaryScreen{
		opts: opts,
		vp:   viewport.New(),
		spin: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Hint)),
	}
	s.restart = components.Action{Key: "enter", Label: "Start New Interview"}
	if opts.OnRestart != nil {
		s.restart.Run = s.restartCmd
	}
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.opts.Advisor == nil || s.opts.Report == nil {
		return nil
	}
	s.opts.Advisor.RequestAdvice(context.Background(), s.opts.Report)
	s.waiting = true
	return tea.Batch(pollAdvice(), s.spin.Tick)
}

func (s *SummaryScreen) Title() string {
	return "Dashboard"
}

func (s *SummaryScreen) Status() layout.Status {
	if s.opts.Report == nil {
		return layout.Status{}
	}
	return layout.Status{CandidateID: s.opts.Report.CandidateID, Stage: "Results"}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.opts.Chat != nil {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Career chatbot"})
	}
	if s.opts.OnRestart != nil {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start new interview"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Advice returns the personalised advice once it has arrived.
func (s *SummaryScreen) Advice() *dashboard.Advice {
	return s.advice
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceTickMsg:
		if !s.waiting {
			return s, nil
		}
		if adv, ok := s.opts.Advisor.ConsumeAdvice(); ok {
			s.advice = adv
			s.waiting = false
			return s, nil
		}
		return s, pollAdvice()

	case spinner.TickMsg:
		if !s.waiting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "c", "C":
			if s.opts.Chat != nil {
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: s.opts.Chat()} }
			}
			return s, nil
		}
		if cmd, ok := s.restart.Handle(msg); ok {
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) restartCmd() tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		s.opts.OnRestart,
	)
}

func (s *SummaryScreen) View(width, height int) string {
	if s.opts.Report == nil {
		return ""
	}
	s.vp.SetWidth(width)
	s.vp.SetHeight(height)
	s.vp.SetContent(s.render(width))
	return s.vp.View()
}

func pollAdvice() tea.Cmd {
	return tea.Tick(advicePollInterval, func(t time.Time) tea.Msg {
		return adviceTickMsg(t)
	})
}
