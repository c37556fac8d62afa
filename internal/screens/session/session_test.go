package session

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/afero"

	"github.com/abhisek/mockinterview/internal/evaluate"
	"github.com/abhisek/mockinterview/internal/results"
	"github.com/abhisek/mockinterview/internal/router"
	"github.com/abhisek/mockinterview/internal/screen"
	sess "github.com/abhisek/mockinterview/internal/session"
	"github.com/abhisek/mockinterview/internal/transcribe"
	"github.com/abhisek/mockinterview/internal/ui/components"
	"github.com/abhisek/mockinterview/internal/voice"

	"go.uber.org/zap/zaptest"
)

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, string) string { return "Backend Developer" }

type stubQuestions struct{}

func (stubQuestions) HR(context.Context) ([]string, error) {
	return []string{"Tell me about yourself."}, nil
}

func (stubQuestions) Technical(context.Context, string) ([]string, error) {
	return []string{"What is an index?"}, nil
}

type stubEvaluator struct{}

func (stubEvaluator) HR(context.Context, string, string) evaluate.Evaluation {
	return evaluate.Evaluation{Score: 8, Feedback: "Clear.", Confidence: "High", Outcome: evaluate.OutcomeParsed}
}

func (stubEvaluator) Technical(context.Context, string, string, string) evaluate.Evaluation {
	return evaluate.Evaluation{Score: 6, Feedback: "Shallow.", Outcome: evaluate.OutcomeParsed}
}

type stubCapture struct {
	recording bool
}

func (c *stubCapture) Start(context.Context) bool {
	if c.recording {
		return false
	}
	c.recording = true
	return true
}

func (c *stubCapture) Stop() (*voice.Recording, bool) {
	if !c.recording {
		return nil, false
	}
	c.recording = false
	return &voice.Recording{PCM: make([]byte, 32000), SampleRate: 16000, Channels: 1}, true
}

func (c *stubCapture) IsRecording() bool { return c.recording }

func newScreen(t *testing.T) *SessionScreen {
	t.Helper()
	stt := transcribe.NewMock()
	stt.Fallback = &transcribe.Result{Text: "I like building APIs.", Language: "en"}

	m := sess.NewMachine(sess.Deps{
		Classifier:  stubClassifier{},
		Questions:   stubQuestions{},
		Evaluator:   stubEvaluator{},
		Capture:     &stubCapture{},
		Transcriber: stt,
		Results:     results.OpenPair(afero.NewMemMapFs(), "/data"),
		Logger:      zaptest.NewLogger(t),
		NewID:       func() string { return "cand-abc123" },
	})
	s := New(Options{Machine: m, Logger: zaptest.NewLogger(t)})
	s.Init()
	return s
}

// exec runs cmd like the runtime would for one level of batching and
// feeds machine replies back into the screen. It returns the follow-up
// command of the last reply.
func exec(t *testing.T, s *SessionScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		batch = tea.BatchMsg{func() tea.Msg { return msg }}
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if r, ok := c().(replyMsg); ok {
			_, next := s.Update(r)
			return next
		}
	}
	t.Fatalf("no reply in %T", msg)
	return nil
}

func typeAndSend(t *testing.T, s *SessionScreen, text string) tea.Cmd {
	t.Helper()
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return exec(t, s, cmd)
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func lastBot(s *SessionScreen) string {
	lines := s.log.Lines()
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Speaker == components.SpeakerBot {
			return lines[i].Text
		}
	}
	return ""
}

func toHRRound(t *testing.T, s *SessionScreen) {
	t.Helper()
	typeAndSend(t, s, "We need a Go backend engineer.")
	typeAndSend(t, s, "yes")
	typeAndSend(t, s, "yes")
	if s.snap.Stage != sess.StageHRRound {
		t.Fatalf("stage = %s, want %s", s.snap.Stage, sess.StageHRRound)
	}
}

func TestSessionScreen_Intro(t *testing.T) {
	s := newScreen(t)
	if s.Title() != "Interview" {
		t.Errorf("Title = %q", s.Title())
	}
	lines := s.log.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 intro lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1].Text, "cand-abc123") {
		t.Errorf("intro should show the candidate ID, got %q", lines[1].Text)
	}
	if st := s.Status(); st.CandidateID != "cand-abc123" || st.Stage != "Job description" {
		t.Errorf("Status = %+v", st)
	}
}

func TestSessionScreen_ClassifyAndConfirm(t *testing.T) {
	s := newScreen(t)

	typeAndSend(t, s, "We need a Go backend engineer.")
	if got := lastBot(s); got != "Predicted domain: Backend Developer. Is this correct? (yes/recheck)" {
		t.Errorf("reply = %q", got)
	}
	if s.snap.Stage != sess.StageConfirmDomain {
		t.Errorf("stage = %s", s.snap.Stage)
	}
	if s.busy {
		t.Error("screen should be idle after the reply")
	}
}

func TestSessionScreen_BusyIgnoresKeys(t *testing.T) {
	s := newScreen(t)
	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil || !s.busy {
		t.Fatal("expected the screen to be busy after enter")
	}
	if _, again := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); again != nil {
		t.Error("enter while busy should be ignored")
	}
	exec(t, s, cmd)
	if s.busy {
		t.Error("reply should clear busy")
	}
}

func TestSessionScreen_RecordAndStop(t *testing.T) {
	s := newScreen(t)
	toHRRound(t, s)

	_, cmd := s.Update(ctrl('r'))
	next := exec(t, s, cmd)
	if !s.snap.RecordingActive || !s.Status().Recording {
		t.Fatal("expected an active recording")
	}
	if next == nil {
		t.Error("expected timer commands after recording starts")
	}
	gen := s.recGen

	_, cmd = s.Update(ctrl('s'))
	exec(t, s, cmd)
	if s.snap.RecordingActive {
		t.Error("recording should be stopped")
	}
	if s.snap.Stage != sess.StageTechPrompt {
		t.Errorf("stage = %s, want %s", s.snap.Stage, sess.StageTechPrompt)
	}

	// A stale limit from the finished recording is ignored.
	if _, cmd := s.Update(recordLimitMsg{Gen: gen}); cmd != nil {
		t.Error("stale recording limit should be ignored")
	}
}

func TestSessionScreen_RecordLimitAutoStops(t *testing.T) {
	s := newScreen(t)
	toHRRound(t, s)

	_, cmd := s.Update(ctrl('r'))
	exec(t, s, cmd)

	_, cmd = s.Update(recordLimitMsg{Gen: s.recGen})
	exec(t, s, cmd)

	if s.snap.RecordingActive {
		t.Error("limit should stop the recording")
	}
	var sawNotice bool
	for _, l := range s.log.Lines() {
		if l.Speaker == components.SpeakerSystem && strings.Contains(l.Text, "Recording limit reached") {
			sawNotice = true
		}
	}
	if !sawNotice {
		t.Error("expected an auto-stop notice")
	}
	if len(s.snap.HRAnswers) != 1 {
		t.Errorf("expected 1 HR answer, got %d", len(s.snap.HRAnswers))
	}
}

func TestSessionScreen_DashboardPushed(t *testing.T) {
	s := newScreen(t)
	toHRRound(t, s)

	_, cmd := s.Update(ctrl('r'))
	exec(t, s, cmd)
	_, cmd = s.Update(ctrl('s'))
	exec(t, s, cmd)

	typeAndSend(t, s, "yes")
	_, cmd = s.Update(ctrl('r'))
	exec(t, s, cmd)
	_, cmd = s.Update(ctrl('s'))
	exec(t, s, cmd)
	if s.snap.Stage != sess.StageResultWait {
		t.Fatalf("stage = %s, want %s", s.snap.Stage, sess.StageResultWait)
	}

	typeAndSend(t, s, "cand-abc123")
	next := typeAndSend(t, s, "show result")
	if s.snap.Stage != sess.StageDashboard {
		t.Fatalf("stage = %s, want %s", s.snap.Stage, sess.StageDashboard)
	}
	if next == nil {
		t.Fatal("expected the dashboard to be pushed")
	}
	push, ok := next().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", next())
	}
	if push.Screen.Title() != "Dashboard" {
		t.Errorf("pushed %q", push.Screen.Title())
	}
}

func TestSessionScreen_QuitConfirm(t *testing.T) {
	s := newScreen(t)
	toHRRound(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.confirmQuit {
		t.Fatal("esc mid-interview should ask for confirmation")
	}
	if !strings.Contains(s.View(100, 30), "End the interview early?") {
		t.Error("expected the confirmation dialog")
	}
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.confirmQuit {
		t.Error("'n' should cancel")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
	if got := s.opts.Machine.Session().Stage; got != sess.StageHRRound {
		t.Errorf("the interview should survive until the screen leaves, stage = %s", got)
	}

	r := router.New(&stubRoot{})
	r.Push(s)
	if cmd := r.Pop(); cmd != nil {
		cmd()
	}
	if got := s.opts.Machine.Session().Stage; got != sess.StageStart {
		t.Errorf("leaving should abandon the interview, stage = %s", got)
	}
}

func TestSessionScreen_EscAtStartPops(t *testing.T) {
	s := newScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestSessionScreen_NewInterview(t *testing.T) {
	s := newScreen(t)
	toHRRound(t, s)

	_, cmd := s.Update(ctrl('n'))
	exec(t, s, cmd)

	if s.snap.Stage != sess.StageStart {
		t.Errorf("stage = %s, want start", s.snap.Stage)
	}
	lines := s.log.Lines()
	if len(lines) != 2 || !strings.HasPrefix(lines[0].Text, "New interview started.") {
		t.Errorf("log after reset = %+v", lines)
	}
}

func TestSessionScreen_RestartMsg(t *testing.T) {
	s := newScreen(t)
	typeAndSend(t, s, "We need a Go backend engineer.")

	_, cmd := s.Update(restartMsg{})
	exec(t, s, cmd)
	if s.snap.Stage != sess.StageStart {
		t.Errorf("stage = %s, want start", s.snap.Stage)
	}
}

func TestSessionScreen_KeyHints(t *testing.T) {
	s := newScreen(t)
	if hints := s.KeyHints(); hints[0].Key != "Enter" {
		t.Errorf("first hint at start = %q, want Enter", hints[0].Key)
	}
	toHRRound(t, s)
	if hints := s.KeyHints(); hints[0].Key != "Ctrl+R" {
		t.Errorf("first hint in a round = %q, want Ctrl+R", hints[0].Key)
	}
}

type stubRoot struct{}

func (r *stubRoot) Init() tea.Cmd                           { return nil }
func (r *stubRoot) Update(tea.Msg) (screen.Screen, tea.Cmd) { return r, nil }
func (r *stubRoot) View(int, int) string                    { return "" }
func (r *stubRoot) Title() string                           { return "Home" }
