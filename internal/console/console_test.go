package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/abhisek/mockinterview/internal/chatbot"
	"github.com/abhisek/mockinterview/internal/evaluate"
	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/results"
	"github.com/abhisek/mockinterview/internal/session"
	"github.com/abhisek/mockinterview/internal/store"
	"github.com/abhisek/mockinterview/internal/transcribe"
	"github.com/abhisek/mockinterview/internal/voice"
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
	return evaluate.Evaluation{Score: 8, Feedback: "Clear.", Outcome: evaluate.OutcomeParsed}
}

func (stubEvaluator) Technical(context.Context, string, string, string) evaluate.Evaluation {
	return evaluate.Evaluation{Score: 6, Feedback: "Shallow.", Outcome: evaluate.OutcomeParsed}
}

type stubCapture struct{ on bool }

func (c *stubCapture) Start(context.Context) bool {
	c.on = true
	return true
}

func (c *stubCapture) IsRecording() bool { return c.on }

func (c *stubCapture) Stop() (*voice.Recording, bool) {
	if !c.on {
		return nil, false
	}
	c.on = false
	return &voice.Recording{PCM: make([]byte, 32000), SampleRate: 16000, Channels: 1}, true
}

type recorder struct {
	sessions []store.SessionEventData
}

func (r *recorder) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	r.sessions = append(r.sessions, d)
	return nil
}

func (r *recorder) AppendAnswerEvent(context.Context, store.AnswerEventData) error { return nil }

func newInterview(t *testing.T, input string) (*Interview, *bytes.Buffer, *recorder, *results.Pair) {
	t.Helper()
	stt := transcribe.NewMock()
	stt.Fallback = &transcribe.Result{Text: "I build APIs.", Language: "en"}
	pair := results.OpenPair(afero.NewMemMapFs(), "/data")
	rec := &recorder{}

	m := session.NewMachine(session.Deps{
		Classifier:  stubClassifier{},
		Questions:   stubQuestions{},
		Evaluator:   stubEvaluator{},
		Capture:     &stubCapture{},
		Transcriber: stt,
		Results:     pair,
		Events:      rec,
		Logger:      zaptest.NewLogger(t),
		NewID:       func() string { return "cand-abc123" },
	})
	out := &bytes.Buffer{}
	return &Interview{
		Machine: m,
		In:      NewLines(strings.NewReader(input)),
		Out:     out,
		Logger:  zaptest.NewLogger(t),
	}, out, rec, pair
}

func TestInterview_FullRun(t *testing.T) {
	script := strings.Join([]string{
		"We need a Go backend engineer.",
		"yes",
		"yes",
		"/record",
		"",
		"yes",
		"/record",
		"",
		"cand-abc123",
		"show result",
		"/quit",
	}, "\n") + "\n"

	iv, out, rec, pair := newInterview(t, script)
	require.NoError(t, iv.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Interviewer: Predicted domain: Backend Developer. Is this correct? (yes/recheck)")
	assert.Contains(t, text, "Interviewer: HR Question 1: Tell me about yourself.")
	assert.Contains(t, text, "Interviewer: Technical Question 1: What is an index?")
	assert.Contains(t, text, "Interviewer: Interview complete!")
	assert.Contains(t, text, "Interview Performance Dashboard")
	assert.Contains(t, text, "Candidate ID: cand-abc123 | Domain: Backend Developer")
	assert.Equal(t, session.StageDashboard, iv.Machine.Session().Stage)

	hr, tech, err := pair.Load(context.Background(), "cand-abc123")
	require.NoError(t, err)
	assert.Len(t, hr, 1)
	assert.Len(t, tech, 1)

	require.NotEmpty(t, rec.sessions)
	assert.Equal(t, store.ActionComplete, rec.sessions[len(rec.sessions)-1].Action)
}

func TestInterview_EOFMidRoundAbandons(t *testing.T) {
	iv, out, rec, _ := newInterview(t, "We need a Go backend engineer.\nyes\nyes\n")
	require.NoError(t, iv.Run(context.Background()))

	assert.Contains(t, out.String(), "Goodbye.")
	require.NotEmpty(t, rec.sessions)
	assert.Equal(t, store.ActionAbandon, rec.sessions[len(rec.sessions)-1].Action)
}

func TestInterview_Help(t *testing.T) {
	iv, out, _, _ := newInterview(t, "/help\n")
	require.NoError(t, iv.Run(context.Background()))
	assert.Contains(t, out.String(), "/record")
	assert.Contains(t, out.String(), "Please paste a job description to begin.")
}

type failingReader struct{}

func (failingReader) ReadLine(string) (string, error) { return "", errors.New("tty gone") }

func TestInterview_ReadError(t *testing.T) {
	iv, _, _, _ := newInterview(t, "")
	iv.In = failingReader{}
	err := iv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestChat(t *testing.T) {
	provider := llm.NewMockProvider(llm.TextResponse("Study SQL joins."))
	bot := chatbot.New(provider, chatbot.DefaultConfig(), zaptest.NewLogger(t))

	out := &bytes.Buffer{}
	err := Chat(context.Background(), bot, NewLines(strings.NewReader("\nWhat should I study?\n/reset\n")), out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Assistant: Study SQL joins.")
	assert.Contains(t, out.String(), "Conversation cleared.")
	assert.Equal(t, 1, provider.CallCount())
	assert.Empty(t, bot.History())
}
