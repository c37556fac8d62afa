package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/chatbot"
	"github.com/abhisek/mockinterview/internal/classify"
	"github.com/abhisek/mockinterview/internal/config"
	"github.com/abhisek/mockinterview/internal/dashboard"
	"github.com/abhisek/mockinterview/internal/evaluate"
	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/questions"
	"github.com/abhisek/mockinterview/internal/results"
	"github.com/abhisek/mockinterview/internal/screens/welcome"
	"github.com/abhisek/mockinterview/internal/session"
	"github.com/abhisek/mockinterview/internal/store"
	"github.com/abhisek/mockinterview/internal/transcribe"
	"github.com/abhisek/mockinterview/internal/voice"
)

// Services holds the long-lived collaborators shared by every front end.
// Provider and Transcriber are nil when their backends are not configured;
// the matching errors say why.
type Services struct {
	Config  *config.Config
	Log     *zap.Logger
	Fs      afero.Fs
	Events  store.EventRepo
	Results *results.Pair

	Provider    llm.Provider
	ProviderErr error

	Transcriber   transcribe.Transcriber
	TranscribeErr error

	Advisor *dashboard.Advisor
	Chat    *chatbot.Chat

	// Now is used for recording file names. Default: time.Now.
	Now func() time.Time
}

// NewServices builds the collaborators described by cfg. A missing LLM or
// speech backend is not an error; the caller decides how to degrade.
func NewServices(ctx context.Context, cfg *config.Config, fs afero.Fs, events store.EventRepo, log *zap.Logger) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Services{
		Config:  cfg,
		Log:     log,
		Fs:      fs,
		Events:  events,
		Results: results.OpenPair(fs, cfg.ResultsPath()),
		Now:     time.Now,
	}

	if err := cfg.LLM.Validate(); err != nil {
		s.ProviderErr = err
	} else if p, err := llm.NewProvider(ctx, cfg.LLM, events, log); err != nil {
		s.ProviderErr = err
	} else {
		s.Provider = p
		s.Advisor = dashboard.NewAdvisor(p, dashboard.DefaultAdvisorConfig())
		s.Chat = chatbot.New(p, chatbot.DefaultConfig(), log.Named("chatbot"))
	}
	if s.ProviderErr != nil {
		log.Warn("LLM provider unavailable", zap.Error(s.ProviderErr))
	}

	t, err := transcribe.New(cfg.Transcribe, log.Named("transcribe"))
	if err != nil {
		s.TranscribeErr = err
		log.Warn("transcription unavailable", zap.Error(err))
	} else {
		s.Transcriber = t
	}
	return s
}

// LLMReady reports whether interviews and the chatbot can run.
func (s *Services) LLMReady() bool {
	return s.Provider != nil
}

// ProviderLabel is a short "provider · model" line for the UI.
func (s *Services) ProviderLabel() string {
	if s.Provider == nil {
		return ""
	}
	return fmt.Sprintf("%s · %s", s.Config.LLM.Provider, s.Provider.ModelID())
}

// Preflight reports which backends are usable, for the splash screen.
func (s *Services) Preflight() []welcome.Check {
	llmCheck := welcome.Check{Name: "LLM", OK: s.Provider != nil, Detail: s.ProviderLabel()}
	if s.ProviderErr != nil {
		llmCheck.Detail = s.ProviderErr.Error()
	}

	mic := welcome.Check{Name: "Microphone", OK: true, Detail: "ffmpeg"}
	if f := s.Config.Voice.FFmpeg.InputFormat; f != "" {
		mic.Detail += " · " + f
	}
	if err := voice.NewFFmpegSource(s.Config.Voice.FFmpeg).Available(); err != nil {
		mic = welcome.Check{Name: "Microphone", Detail: err.Error()}
	}

	speech := welcome.Check{Name: "Speech", OK: s.Transcriber != nil, Detail: s.Config.Transcribe.Backend}
	if s.TranscribeErr != nil {
		speech.Detail = s.TranscribeErr.Error()
	}
	return []welcome.Check{llmCheck, mic, speech}
}

// NewCapture opens a microphone buffer. When voice.save-recordings is on,
// every stopped recording is also written as a WAV file.
func (s *Services) NewCapture() session.Capture {
	v := s.Config.Voice
	buf := voice.NewBuffer(voice.NewFFmpegSource(v.FFmpeg), v.Buffer, s.Log.Named("voice"))
	if !v.SaveRecordings {
		return buf
	}
	return &savingCapture{
		Capture: buf,
		fs:      s.Fs,
		dir:     s.recordingsDir(),
		now:     s.Now,
		log:     s.Log.Named("voice"),
	}
}

func (s *Services) recordingsDir() string {
	dir := s.Config.Voice.RecordingsDir
	if dir == "" {
		dir = "recordings"
	}
	return dir
}

// NewMachine returns a fresh interview state machine.
func (s *Services) NewMachine() (*session.Machine, error) {
	if s.Provider == nil {
		return nil, fmt.Errorf("no LLM provider: %w", s.ProviderErr)
	}
	qcfg := questions.DefaultConfig()
	qcfg.HRCount = s.Config.Interview.HRQuestions
	qcfg.TechCount = s.Config.Interview.TechQuestions

	tr := s.Transcriber
	if tr == nil {
		tr = unavailableTranscriber{err: s.TranscribeErr}
	}
	return session.NewMachine(session.Deps{
		Classifier:  classify.New(s.Provider),
		Questions:   questions.New(s.Provider, qcfg),
		Evaluator:   evaluate.New(s.Provider, evaluate.DefaultConfig()),
		Capture:     s.NewCapture(),
		Transcriber: tr,
		Results:     s.Results,
		Events:      s.Events,
		Logger:      s.Log.Named("session"),
	}), nil
}

// savingCapture writes a WAV copy of each recording it hands out.
type savingCapture struct {
	session.Capture
	fs  afero.Fs
	dir string
	now func() time.Time
	log *zap.Logger
}

func (c *savingCapture) Stop() (*voice.Recording, bool) {
	rec, ok := c.Capture.Stop()
	if !ok || rec == nil || rec.Empty() {
		return rec, ok
	}
	path, err := voice.SaveWAV(c.fs, c.dir, rec, c.now())
	if err != nil {
		c.log.Warn("save recording failed", zap.Error(err))
	} else {
		c.log.Debug("recording saved", zap.String("path", path))
	}
	return rec, ok
}

// unavailableTranscriber stands in when no speech backend is configured so
// that recordings fail with a readable reason instead of a nil call.
type unavailableTranscriber struct {
	err error
}

func (u unavailableTranscriber) Transcribe(context.Context, *voice.Recording) (*transcribe.Result, error) {
	if u.err != nil {
		return nil, fmt.Errorf("transcription unavailable: %w", u.err)
	}
	return nil, fmt.Errorf("transcription unavailable")
}
