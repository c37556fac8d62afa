package session

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	sess "github.com/abhisek/mockinterview/internal/session"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/ui/layout"
	"github.com/abhisek/mockinterview/internal/ui/theme"
)

// DefaultRecordMax is the recording limit when Options.RecordMax is unset.
const DefaultRecordMax = 20 * time.Second

// Options configures the interview screen.
type Options struct {
	Machine *sess.Machine

	// RecordMax stops a recording automatically and submits it.
	RecordMax time.Duration

	// Advisor, Location and Chat are passed to the dashboard.
	Advisor  *dashboard.Advisor
	Location string
	Chat     func() screen.Screen

	Logger *zap.Logger
}

// SessionScreen implements screen.Screen for the interview chat.
type SessionScreen struct {
	opts  Options
	log   components.ChatLog
	input components.TextInput
	spin  spinner.Model

	snap      sess.Session
	busy      bool
	busyLabel string

	recStarted  time.Time
	recGen      int
	confirmQuit bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.EscHandler = (*SessionScreen)(nil)
var _ screen.Leaver = (*SessionScreen)(nil)

// New creates a new SessionScreen driving opts.Machine.
func New(opts Options) *SessionScreen {
	if opts.RecordMax <= 0 {
		opts.RecordMax = DefaultRecordMax
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &SessionScreen{
		opts:  opts,
		log:   components.NewChatLog("Interviewer", "You"),
		input: components.NewTextInput("Type here and press Enter...", 4000),
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Hint)),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	s.snap = s.opts.Machine.Session()
	s.log.Append(components.SpeakerBot, s.opts.Machine.Intro()...)
	return s.input.Init()
}

func (s *SessionScreen) Title() string {
	return "Interview"
}

func (s *SessionScreen) HandlesEsc() bool {
	return true
}

func (s *SessionScreen) Status() layout.Status {
	return layout.Status{
		CandidateID: s.snap.CandidateID,
		Stage:       s.snap.Stage.Label(),
		Recording:   s.snap.RecordingActive,
	}
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End interview"},
			{Key: "N", Description: "Keep going"},
		}
	}
	var hints []layout.KeyHint
	switch {
	case s.snap.RecordingActive:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Stop & submit"})
	case isRound(s.snap.Stage):
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Start recording"})
	case s.snap.Stage == sess.StageDashboard:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+D", Description: "Dashboard"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Send"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+N", Description: "New interview"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case recordTickMsg:
		if s.snap.RecordingActive {
			return s, recordTick()
		}
		return s, nil

	case recordLimitMsg:
		if msg.Gen != s.recGen || !s.snap.RecordingActive || s.busy {
			return s, nil
		}
		s.opts.Logger.Info("recording limit reached", zap.Duration("limit", s.opts.RecordMax))
		return s, s.stop(true)

	case restartMsg:
		return s, s.reset()

	case spinner.TickMsg:
		if !s.busy {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		s.log, cmd = s.log.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.quit()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "pgup", "pgdown":
		var cmd tea.Cmd
		s.log, cmd = s.log.Update(msg)
		return s, cmd
	}

	if s.busy {
		return s, nil
	}

	switch key {
	case "esc":
		if s.snap.Stage == sess.StageStart || s.snap.Stage == sess.StageDashboard {
			return s, s.quit()
		}
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s, s.submit()
	case "ctrl+r":
		return s, s.start()
	case "ctrl+s":
		return s, s.stop(false)
	case "ctrl+n":
		return s, s.reset()
	case "ctrl+d":
		if s.snap.Stage == sess.StageDashboard {
			return s, s.pushDashboard()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// run applies one machine event off the UI goroutine.
func (s *SessionScreen) run(o op, label string, auto bool, fn func(ctx context.Context) sess.Reply) tea.Cmd {
	s.busy = true
	s.busyLabel = label
	s.input.Disabled = true
	return tea.Batch(
		func() tea.Msg {
			return replyMsg{Op: o, Reply: fn(context.Background()), Auto: auto}
		},
		s.spin.Tick,
	)
}

func (s *SessionScreen) submit() tea.Cmd {
	text := s.input.Take()
	if strings.TrimSpace(text) != "" {
		s.log.Append(components.SpeakerUser, text)
	}
	m := s.opts.Machine
	return s.run(opSubmit, submitLabel(s.snap.Stage), false, func(ctx context.Context) sess.Reply {
		return m.Submit(ctx, text)
	})
}

func (s *SessionScreen) start() tea.Cmd {
	m := s.opts.Machine
	return s.run(opStart, "Starting microphone...", false, m.StartRecording)
}

func (s *SessionScreen) stop(auto bool) tea.Cmd {
	m := s.opts.Machine
	return s.run(opStop, "Transcribing and scoring your answer...", auto, m.StopRecording)
}

func (s *SessionScreen) reset() tea.Cmd {
	m := s.opts.Machine
	return s.run(opReset, "Starting a new interview...", false, func(context.Context) sess.Reply {
		return m.Reset()
	})
}

func (s *SessionScreen) quit() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// Leave abandons an unfinished interview once the screen is closed,
// including on Ctrl+C.
func (s *SessionScreen) Leave() tea.Cmd {
	m := s.opts.Machine
	return func() tea.Msg {
		if st := m.Session().Stage; st != sess.StageStart && st != sess.StageDashboard {
			m.Reset()
		}
		return nil
	}
}

func (s *SessionScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.busyLabel = ""
	s.input.Disabled = false
	s.snap = s.opts.Machine.Session()

	if msg.Op == opReset {
		s.log.Clear()
		s.recGen++
	}
	if msg.Auto {
		s.log.Append(components.SpeakerSystem, "Recording limit reached, submitting your answer.")
	}
	s.log.Append(components.SpeakerBot, msg.Reply.Messages...)

	if msg.Op == opStart && s.snap.RecordingActive {
		s.recStarted = time.Now()
		s.recGen++
		return s, tea.Batch(recordTick(), recordLimit(s.recGen, s.opts.RecordMax))
	}

	if msg.Reply.Changed && s.snap.Stage == sess.StageDashboard {
		return s, s.pushDashboard()
	}
	return s, nil
}

func (s *SessionScreen) pushDashboard() tea.Cmd {
	dash := s.newSummaryScreenAdapter()
	return func() tea.Msg { return router.PushScreenMsg{Screen: dash} }
}

func isRound(st sess.Stage) bool {
	_, ok := st.Round()
	return ok
}

func submitLabel(st sess.Stage) string {
	switch st {
	case sess.StageStart, sess.StageConfirmDomain:
		return "Identifying the job domain..."
	case sess.StageStartHR, sess.StageTechPrompt:
		return "Preparing questions..."
	case sess.StageResultWait:
		return "Saving results..."
	}
	return "Working..."
}

// recordTick returns a 1-second tick command.
func recordTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return recordTickMsg(t)
	})
}

func recordLimit(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return recordLimitMsg{Gen: gen}
	})
}
