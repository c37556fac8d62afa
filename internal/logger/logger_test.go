package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStringFields(t *testing.T) {
	fields := StringFields(
		StringField{Key: "  candidate_id  ", Value: "  cand-a1b2c3  "},
		StringField{Key: "ignored", Value: "   "},
		StringField{Key: "   ", Value: "empty key"},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != "candidate_id" || fields[0].String != "cand-a1b2c3" {
		t.Fatalf("unexpected field: %+v", fields[0])
	}
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	WithFields(zap.New(core), SessionFields("cand-a1b2c3", "hr_round")...).Info("answer scored")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx[FieldCandidate] != "cand-a1b2c3" || ctx[FieldStage] != "hr_round" {
		t.Fatalf("unexpected context: %v", ctx)
	}

	// A nil logger falls back to a no-op logger.
	WithFields(nil, zap.String("k", "v")).Info("dropped")
}

func TestCommonFields(t *testing.T) {
	fields := CommonFields("  groq  ", "")
	if len(fields) != 1 || fields[0].Key != FieldProvider || fields[0].String != "groq" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short  ", 10, "short"},
		{"Feedback: clear answer", 8, "Feedback..."},
		{"anything", 0, ""},
		{"héllo wörld", 5, "héllo..."},
	}
	for _, tt := range tests {
		if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
			t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mockinterview.log")

	log, err := New(Options{JSON: true, Debug: true, File: path})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug("recording started", zap.String(FieldStage, "tech_round"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"recording started"`) {
		t.Fatalf("expected JSON log line, got %q", data)
	}
	if !strings.Contains(string(data), `"stage":"tech_round"`) {
		t.Fatalf("expected stage field, got %q", data)
	}
}
