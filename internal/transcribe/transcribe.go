// Package transcribe turns recorded answers into text.
package transcribe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/voice"
)

// Backend names accepted by Config.Backend.
const (
	BackendWhisper  = "whisper"
	BackendGroq     = "groq"
	BackendDeepgram = "deepgram"
	BackendMock     = "mock"
)

// ErrEmptyRecording is returned when there is no audio to transcribe.
var ErrEmptyRecording = errors.New("empty recording")

// Segment is a timed span of recognized speech.
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result is the outcome of a transcription. Text may be empty when the
// backend heard nothing.
type Result struct {
	Text     string
	Language string
	Segments []Segment
}

// Transcriber converts a recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error)
}

// Config selects and configures the speech-to-text backend.
type Config struct {
	// Backend is one of "whisper", "groq", "deepgram", "mock". Default: "whisper".
	Backend  string         `mapstructure:"backend" yaml:"backend"`
	Language string         `mapstructure:"language" yaml:"language"` // Optional hint, e.g. "en".
	Timeout  time.Duration  `mapstructure:"timeout" yaml:"timeout"`   // Default: 60s
	Whisper  WhisperConfig  `mapstructure:"whisper" yaml:"whisper"`
	Groq     WhisperConfig  `mapstructure:"groq" yaml:"groq"`
	Deepgram DeepgramConfig `mapstructure:"deepgram" yaml:"deepgram"`
}

// DefaultConfig returns the default transcription settings.
func DefaultConfig() Config {
	return Config{
		Backend: BackendWhisper,
		Timeout: 60 * time.Second,
		Whisper: WhisperConfig{Model: defaultWhisperModel},
		Groq:    WhisperConfig{Model: defaultGroqModel, BaseURL: defaultGroqBaseURL},
		Deepgram: DeepgramConfig{
			Model:       defaultDeepgramModel,
			SmartFormat: true,
		},
	}
}

// Validate checks that the selected backend is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendWhisper:
		if c.Whisper.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY or transcribe.whisper.api-key is required for the whisper backend")
		}
	case BackendGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY or transcribe.groq.api-key is required for the groq backend")
		}
	case BackendDeepgram:
		if c.Deepgram.APIKey == "" {
			return fmt.Errorf("DEEPGRAM_API_KEY or transcribe.deepgram.api-key is required for the deepgram backend")
		}
	case BackendMock:
	default:
		return fmt.Errorf("unknown transcription backend: %q", c.Backend)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("transcribe.timeout must not be negative")
	}
	return nil
}

// New builds the configured transcriber, wrapped with a timeout and logging.
func New(cfg Config, log *zap.Logger) (Transcriber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	var t Transcriber
	switch cfg.Backend {
	case BackendWhisper:
		w := cfg.Whisper
		if w.Language == "" {
			w.Language = cfg.Language
		}
		t = NewWhisper(w)
	case BackendGroq:
		g := cfg.Groq
		if g.BaseURL == "" {
			g.BaseURL = defaultGroqBaseURL
		}
		if g.Model == "" {
			g.Model = defaultGroqModel
		}
		if g.Language == "" {
			g.Language = cfg.Language
		}
		t = NewWhisper(g)
	case BackendDeepgram:
		d := cfg.Deepgram
		if d.Language == "" {
			d.Language = cfg.Language
		}
		t = NewDeepgram(d)
	case BackendMock:
		t = &Mock{}
	}

	return WithLogging(WithTimeout(t, cfg.Timeout), cfg.Backend, log), nil
}

type timeoutTranscriber struct {
	inner   Transcriber
	timeout time.Duration
}

// WithTimeout bounds every Transcribe call. A non-positive d disables it.
func WithTimeout(t Transcriber, d time.Duration) Transcriber {
	if d <= 0 {
		return t
	}
	return &timeoutTranscriber{inner: t, timeout: d}
}

func (t *timeoutTranscriber) Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Transcribe(ctx, rec)
}

type loggingTranscriber struct {
	inner   Transcriber
	backend string
	log     *zap.Logger
}

// WithLogging logs the latency and outcome of every transcription.
func WithLogging(t Transcriber, backend string, log *zap.Logger) Transcriber {
	return &loggingTranscriber{inner: t, backend: backend, log: log.With(zap.String("stt_backend", backend))}
}

func (t *loggingTranscriber) Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error) {
	start := time.Now()
	res, err := t.inner.Transcribe(ctx, rec)
	latency := time.Since(start)

	if err != nil {
		t.log.Warn("transcription failed", zap.Duration("latency", latency), zap.Error(err))
		return nil, err
	}
	t.log.Debug("transcription",
		zap.Duration("latency", latency),
		zap.Duration("audio", rec.Duration()),
		zap.String("language", res.Language),
		zap.Int("chars", len(res.Text)))
	return res, nil
}

func joinText(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
