package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/abhisek/mockinterview/internal/voice"
)

const (
	defaultDeepgramBaseURL = "https://api.deepgram.com/v1"
	defaultDeepgramModel   = "nova-2"
	deepgramChunkSize      = 8192
)

// DeepgramConfig configures the Deepgram live transcription websocket.
type DeepgramConfig struct {
	APIKey      string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile  string `mapstructure:"api-key-file" yaml:"api-key-file"`
	BaseURL     string `mapstructure:"base-url" yaml:"base-url"`
	Model       string `mapstructure:"model" yaml:"model"`
	Language    string `mapstructure:"language" yaml:"language"`
	SmartFormat bool   `mapstructure:"smart-format" yaml:"smart-format"`
}

// Deepgram streams a finished recording over the live websocket and
// collects the final transcripts.
type Deepgram struct {
	cfg    DeepgramConfig
	dialer *websocket.Dialer
}

// NewDeepgram creates a Deepgram transcriber.
func NewDeepgram(cfg DeepgramConfig) *Deepgram {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeepgramBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultDeepgramModel
	}
	return &Deepgram{cfg: cfg, dialer: websocket.DefaultDialer}
}

func (d *Deepgram) Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error) {
	if rec.Empty() {
		return nil, ErrEmptyRecording
	}
	if strings.TrimSpace(d.cfg.APIKey) == "" {
		return nil, errors.New("DEEPGRAM_API_KEY is not configured")
	}

	wsURL, err := buildListenURL(d.cfg, rec.SampleRate, rec.Channels)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Authorization", "Token "+d.cfg.APIKey)

	conn, _, err := d.dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Deepgram websocket: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	var wg sync.WaitGroup
	var writeErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		writeErr = sendAudio(conn, rec.PCM)
	}()

	parts, language, readErr := readFinals(conn)
	_ = conn.Close()
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if readErr != nil {
		return nil, readErr
	}
	if writeErr != nil {
		return nil, writeErr
	}

	if language == "" {
		language = d.cfg.Language
	}
	return &Result{Text: joinText(parts), Language: language}, nil
}

func sendAudio(conn *websocket.Conn, pcm []byte) error {
	for off := 0; off < len(pcm); off += deepgramChunkSize {
		end := min(off+deepgramChunkSize, len(pcm))
		if err := conn.WriteMessage(websocket.BinaryMessage, pcm[off:end]); err != nil {
			return fmt.Errorf("failed to send audio: %w", err)
		}
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"CloseStream"}`)); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// readFinals reads until the server closes the connection.
func readFinals(conn *websocket.Conn) ([]string, string, error) {
	var parts []string
	var language string

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				return parts, language, nil
			}
			return nil, "", fmt.Errorf("failed to read provider event: %w", err)
		}

		var resp deepgramResponse
		if err := json.Unmarshal(payload, &resp); err != nil {
			continue
		}

		if strings.EqualFold(resp.Type, "Error") {
			message := strings.TrimSpace(resp.Message)
			if message == "" {
				message = "deepgram returned an unknown error"
			}
			return nil, "", errors.New(message)
		}

		if !resp.IsFinal && !resp.SpeechFinal {
			continue
		}
		if text := extractTranscript(resp); text != "" {
			parts = append(parts, text)
		}
		if l := resp.Channel.DetectedLanguage; l != "" {
			language = l
		}
	}
}

type deepgramResponse struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	IsFinal     bool   `json:"is_final"`
	SpeechFinal bool   `json:"speech_final"`

	Channel struct {
		DetectedLanguage string `json:"detected_language"`
		Alternatives     []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
	} `json:"channel"`
}

func extractTranscript(resp deepgramResponse) string {
	if len(resp.Channel.Alternatives) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Channel.Alternatives[0].Transcript)
}

func buildListenURL(cfg DeepgramConfig, sampleRate, channels int) (string, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultDeepgramBaseURL
	}

	if strings.HasPrefix(base, "https://") {
		base = "wss://" + strings.TrimPrefix(base, "https://")
	} else if strings.HasPrefix(base, "http://") {
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	base = strings.TrimRight(base, "/")

	listenURL, err := url.Parse(base + "/listen")
	if err != nil {
		return "", fmt.Errorf("invalid Deepgram API base URL: %w", err)
	}

	if sampleRate <= 0 {
		sampleRate = 16000
	}
	if channels <= 0 {
		channels = 1
	}
	query := listenURL.Query()
	query.Set("model", cfg.Model)
	query.Set("encoding", "linear16")
	query.Set("sample_rate", strconv.Itoa(sampleRate))
	query.Set("channels", strconv.Itoa(channels))
	query.Set("interim_results", "false")
	query.Set("smart_format", strconv.FormatBool(cfg.SmartFormat))
	if cfg.Language != "" {
		query.Set("language", cfg.Language)
	}
	listenURL.RawQuery = query.Encode()
	return listenURL.String(), nil
}
