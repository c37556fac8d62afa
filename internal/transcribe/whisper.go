package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/mockinterview/internal/voice"
)

const (
	defaultWhisperModel = openai.Whisper1
	defaultGroqModel    = "whisper-large-v3"
	defaultGroqBaseURL  = "https://api.groq.com/openai/v1"
)

// WhisperConfig configures an OpenAI-compatible transcription endpoint.
// Groq serves the same API.
type WhisperConfig struct {
	APIKey     string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" yaml:"api-key-file"`
	Model      string `mapstructure:"model" yaml:"model"`
	BaseURL    string `mapstructure:"base-url" yaml:"base-url"`
	Language   string `mapstructure:"language" yaml:"language"`
}

// Whisper transcribes via the audio transcription endpoint.
type Whisper struct {
	client *openai.Client
	cfg    WhisperConfig
}

// NewWhisper creates a Whisper transcriber.
func NewWhisper(cfg WhisperConfig) *Whisper {
	if cfg.Model == "" {
		cfg.Model = defaultWhisperModel
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Whisper{client: openai.NewClientWithConfig(clientCfg), cfg: cfg}
}

func (w *Whisper) Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error) {
	if rec.Empty() {
		return nil, ErrEmptyRecording
	}

	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.cfg.Model,
		FilePath: "answer.wav",
		Reader:   bytes.NewReader(rec.WAV()),
		Language: w.cfg.Language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, mapWhisperError(err)
	}

	res := &Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
	}
	for _, s := range resp.Segments {
		res.Segments = append(res.Segments, Segment{
			Start: secondsToDuration(s.Start),
			End:   secondsToDuration(s.End),
			Text:  strings.TrimSpace(s.Text),
		})
	}
	return res, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func mapWhisperError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("transcription unauthorized: %s", apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("transcription rate limited: %s", apiErr.Message)
		}
		return fmt.Errorf("transcription api error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	return fmt.Errorf("transcription request: %w", err)
}
