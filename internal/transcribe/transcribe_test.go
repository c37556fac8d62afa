package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/mockinterview/internal/voice"
)

func sampleRecording() *voice.Recording {
	return &voice.Recording{PCM: make([]byte, 3200), SampleRate: 16000, Channels: 1}
}

func TestWhisper_Transcribe(t *testing.T) {
	var gotModel, gotFile, gotFormat, gotLang string
	var gotWAV []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer gsk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		gotFormat = r.FormValue("response_format")
		gotLang = r.FormValue("language")
		f, hdr, err := r.FormFile("file")
		if err == nil {
			gotFile = hdr.Filename
			gotWAV, _ = io.ReadAll(f)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"task":"transcribe","language":"english","duration":0.1,
			"text":" I enjoy solving problems. ",
			"segments":[{"id":0,"start":0.0,"end":1.5,"text":" I enjoy solving problems."}]}`)
	}))
	defer srv.Close()

	w := NewWhisper(WhisperConfig{
		APIKey:   "gsk-test",
		Model:    defaultGroqModel,
		BaseURL:  srv.URL + "/openai/v1",
		Language: "en",
	})

	rec := sampleRecording()
	res, err := w.Transcribe(context.Background(), rec)
	require.NoError(t, err)

	assert.Equal(t, "I enjoy solving problems.", res.Text)
	assert.Equal(t, "english", res.Language)
	require.Len(t, res.Segments, 1)
	assert.Equal(t, 1500*time.Millisecond, res.Segments[0].End)

	assert.Equal(t, "whisper-large-v3", gotModel)
	assert.Equal(t, "verbose_json", gotFormat)
	assert.Equal(t, "en", gotLang)
	assert.Equal(t, "answer.wav", gotFile)
	assert.Equal(t, rec.WAV(), gotWAV)
}

func TestWhisper_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	w := NewWhisper(WhisperConfig{APIKey: "nope", BaseURL: srv.URL + "/v1"})
	_, err := w.Transcribe(context.Background(), sampleRecording())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestWhisper_EmptyRecording(t *testing.T) {
	w := NewWhisper(WhisperConfig{APIKey: "k"})
	_, err := w.Transcribe(context.Background(), &voice.Recording{SampleRate: 16000})
	assert.ErrorIs(t, err, ErrEmptyRecording)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"whisper without key", func(c *Config) {}, "OPENAI_API_KEY"},
		{"whisper with key", func(c *Config) { c.Whisper.APIKey = "k" }, ""},
		{"groq without key", func(c *Config) { c.Backend = BackendGroq }, "GROQ_API_KEY"},
		{"deepgram without key", func(c *Config) { c.Backend = BackendDeepgram }, "DEEPGRAM_API_KEY"},
		{"mock", func(c *Config) { c.Backend = BackendMock }, ""},
		{"unknown", func(c *Config) { c.Backend = "vosk" }, "unknown transcription backend"},
		{"negative timeout", func(c *Config) { c.Backend = BackendMock; c.Timeout = -time.Second }, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendMock

	tr, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	res, err := tr.Transcribe(context.Background(), sampleRecording())
	require.NoError(t, err)
	assert.Empty(t, res.Text)
}

type slowTranscriber struct{}

func (slowTranscriber) Transcribe(ctx context.Context, rec *voice.Recording) (*Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	tr := WithTimeout(slowTranscriber{}, 20*time.Millisecond)
	_, err := tr.Transcribe(context.Background(), sampleRecording())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	inner := NewMock()
	assert.Same(t, inner, WithTimeout(inner, 0))
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMock("hello there")
	mock.Push(nil, errors.New("boom"))

	tr := WithLogging(mock, BackendMock, zap.New(core))

	res, err := tr.Transcribe(context.Background(), sampleRecording())
	require.NoError(t, err)
	assert.Equal(t, "hello there", res.Text)

	_, err = tr.Transcribe(context.Background(), sampleRecording())
	require.Error(t, err)

	require.Equal(t, 2, logs.Len())
	entries := logs.All()
	assert.Equal(t, "transcription", entries[0].Message)
	assert.Equal(t, "transcription failed", entries[1].Message)
	assert.Equal(t, "mock", entries[1].ContextMap()["stt_backend"])
}

func TestMock_Queue(t *testing.T) {
	m := NewMock("one")
	m.Fallback = &Result{Text: "fallback"}

	r1, _ := m.Transcribe(context.Background(), sampleRecording())
	r2, _ := m.Transcribe(context.Background(), sampleRecording())
	assert.Equal(t, "one", r1.Text)
	assert.Equal(t, "fallback", r2.Text)
	assert.Equal(t, 2, m.Calls())
}

func TestJoinText(t *testing.T) {
	got := joinText([]string{" a ", "", "  ", "b"})
	assert.Equal(t, "a b", got)
	assert.True(t, strings.HasPrefix(joinText([]string{"x"}), "x"))
}
