// Package session drives one interview through its stages. Every event
// (text, start recording, stop recording) maps to one transition call.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/evaluate"
	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/logger"
	"github.com/abhisek/mockinterview/internal/results"
	"github.com/abhisek/mockinterview/internal/store"
	"github.com/abhisek/mockinterview/internal/transcribe"
	"github.com/abhisek/mockinterview/internal/voice"
)

// Classifier maps a job description to a domain label. Failures are
// returned as labels that classify.IsInvalid recognizes.
type Classifier interface {
	Classify(ctx context.Context, jd string) string
}

// QuestionGenerator produces the question lists of both rounds.
type QuestionGenerator interface {
	HR(ctx context.Context) ([]string, error)
	Technical(ctx context.Context, domain string) ([]string, error)
}

// AnswerEvaluator scores answers and never fails.
type AnswerEvaluator interface {
	HR(ctx context.Context, question, answer string) evaluate.Evaluation
	Technical(ctx context.Context, domain, question, answer string) evaluate.Evaluation
}

// Capture is the microphone buffer.
type Capture interface {
	Start(ctx context.Context) bool
	Stop() (*voice.Recording, bool)
	IsRecording() bool
}

// ResultSaver persists both rounds of a candidate.
type ResultSaver interface {
	Save(ctx context.Context, candidateID string, hr, tech []results.Entry) error
}

// EventRecorder receives session and answer events.
type EventRecorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Deps are the collaborators of a Machine. Events, Logger, Now and NewID
// are optional.
type Deps struct {
	Classifier  Classifier
	Questions   QuestionGenerator
	Evaluator   AnswerEvaluator
	Capture     Capture
	Transcriber transcribe.Transcriber
	Results     ResultSaver
	Events      EventRecorder
	Logger      *zap.Logger
	Now         func() time.Time
	NewID       func() string
}

// Reply is the outcome of one event.
type Reply struct {
	Messages []string
	Stage    Stage
	// Changed is set when the event moved the session to another stage.
	Changed bool
	// Err carries a collaborator failure that was already turned into a
	// message. It is informational.
	Err error
}

// Machine owns one Session and applies events to it. Methods are safe for
// concurrent use; transitions are serialized.
type Machine struct {
	deps Deps
	log  *zap.Logger

	mu   sync.Mutex
	sess *Session
}

// NewCandidateID returns an identifier of the form "cand-" plus six hex
// characters.
func NewCandidateID() string {
	return "cand-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
}

// NewMachine creates a Machine with a fresh session.
func NewMachine(deps Deps) *Machine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = NewCandidateID
	}
	m := &Machine{deps: deps, log: deps.Logger}
	m.sess = m.newSession()
	return m
}

func (m *Machine) newSession() *Session {
	return NewSession(uuid.NewString(), m.deps.NewID(), m.deps.Now())
}

// Session returns a copy of the current state.
func (m *Machine) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.clone()
}

// Intro returns the opening bot messages.
func (m *Machine) Intro() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return []string{
		"Welcome to the AI mock interview!",
		fmt.Sprintf("Your candidate ID is %s. Keep it, you will need it to view your results.", m.sess.CandidateID),
		msgPasteJD,
	}
}

// Reset discards the session and starts over with a new candidate ID.
func (m *Machine) Reset() Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset(context.Background())
}

func (m *Machine) reset(ctx context.Context) Reply {
	old := m.sess
	if old.RecordingActive && m.deps.Capture != nil {
		m.deps.Capture.Stop()
	}
	if old.Stage.Order() >= StageStartHR.Order() && old.Stage != StageDashboard {
		m.recordSession(ctx, old, store.ActionAbandon)
	}

	m.sess = m.newSession()
	m.logger().Info("session reset")

	return Reply{
		Messages: []string{
			fmt.Sprintf("New interview started. Your candidate ID is %s.", m.sess.CandidateID),
			msgPasteJD,
		},
		Stage:   StageStart,
		Changed: old.Stage != StageStart,
	}
}

// Submit routes a text utterance to the handler of the current stage.
func (m *Machine) Submit(ctx context.Context, text string) Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx = llm.WithCandidate(ctx, m.sess.CandidateID)

	before := m.sess.Stage
	var r Reply
	switch before {
	case StageStart:
		r = m.onJobDescription(ctx, text)
	case StageConfirmDomain:
		r = m.onConfirmDomain(ctx, text)
	case StageStartHR:
		r = m.onStartHR(ctx, text)
	case StageHRRound, StageTechRound:
		r = Reply{Messages: []string{msgUseRecording}}
	case StageTechPrompt:
		r = m.onStartTech(ctx, text)
	case StageResultWait:
		r = m.onResultWait(ctx, text)
	case StageDashboard:
		if normalize(text) == "start new interview" {
			return m.reset(ctx)
		}
		r = Reply{Messages: []string{msgFinished}}
	}
	return m.finish(before, r)
}

func (m *Machine) finish(before Stage, r Reply) Reply {
	r.Stage = m.sess.Stage
	r.Changed = r.Stage != before
	if r.Changed {
		m.logger().Debug("stage changed", zap.String("from", string(before)))
	}
	if err := m.sess.Check(); err != nil {
		m.logger().Error("session invariant broken", zap.Error(err))
	}
	return r
}

func (m *Machine) logger() *zap.Logger {
	return logger.WithFields(m.log, logger.SessionFields(m.sess.CandidateID, string(m.sess.Stage))...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
