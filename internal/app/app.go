package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	"github.com/abhisek/mockinterview/internal/screens/chat"
	"github.com/abhisek/mockinterview/internal/screens/home"
	"github.com/abhisek/mockinterview/internal/screens/lookup"
	"github.com/abhisek/mockinterview/internal/screens/placeholder"
	sessscreen "github.com/abhisek/mockinterview/internal/screens/session"
	"github.com/abhisek/mockinterview/internal/screens/welcome"
	"github.com/abhisek/mockinterview/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Services *Services
	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen { return newHome(opts.Services) }
	var first screen.Screen
	if opts.SkipWelcome {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory, opts.Services.Preflight()...)
	}
	return AppModel{
		router: router.New(first),
	}
}

func newHome(s *Services) screen.Screen {
	var chatFactory func() screen.Screen
	if s.Chat != nil {
		chatFactory = func() screen.Screen { return chat.New(s.Chat) }
	}

	return home.New(home.Deps{
		StartInterview: func() screen.Screen {
			m, err := s.NewMachine()
			if err != nil {
				return placeholder.New("Interview", err.Error())
			}
			return sessscreen.New(sessscreen.Options{
				Machine:   m,
				RecordMax: s.Config.Interview.RecordMax,
				Advisor:   s.Advisor,
				Location:  s.Config.Interview.JobLocation,
				Chat:      chatFactory,
				Logger:    s.Log.Named("tui"),
			})
		},
		ViewResults: func() screen.Screen {
			return lookup.New(lookup.Options{
				Store:    s.Results,
				Advisor:  s.Advisor,
				Location: s.Config.Interview.JobLocation,
				Chat:     chatFactory,
			})
		},
		Chat:      chatFactory,
		EventRepo: s.Events,
		LLMReady:  s.LLMReady(),
		Provider:  s.ProviderLabel(),
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Sequence(m.router.Unwind(), tea.Quit)
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
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

	active := m.router.Active()
	f := layout.Frame{Hints: m.footerHints(active)}
	if active != nil {
		f.Title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			f.Status = sp.Status()
		}
	}
	frame := f.Render(m.width, m.height, m.router.View)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	log := opts.Services.Log
	log.Info("starting TUI", zap.Bool("llm_ready", opts.Services.LLMReady()))

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
