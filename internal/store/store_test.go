package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "events.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file database above.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestNextSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := nextSequence(ctx, s.db)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestFailedInsertKeepsSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo().(*eventRepo)

	if err := repo.insertEvent(ctx, "no_such_table", []string{"x"}, 1); err == nil {
		t.Fatal("expected an error for a missing table")
	}
	seq, err := nextSequence(ctx, s.db)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("seq = %d, want 1 after a rolled back insert", seq)
	}
}

func TestLLMEvents_AppendQueryGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"domain-classify", "hr-questions", "hr-evaluate"} {
		errMsg := ""
		if i == 2 {
			errMsg = "rate limited"
		}
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "groq",
			Model:        "llama-3.3-70b-versatile",
			Purpose:      purpose,
			InputTokens:  100 * (i + 1),
			OutputTokens: 10 * (i + 1),
			LatencyMs:    int64(200 * (i + 1)),
			Success:      i != 2,
			ErrorMessage: errMsg,
			RequestBody:  "[system]\nprompt",
			ResponseBody: "Backend Engineer",
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Purpose != "hr-evaluate" {
		t.Errorf("expected newest first, got %q", events[0].Purpose)
	}
	if events[0].Success {
		t.Error("expected failed event to round-trip success=false")
	}

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Purpose != "hr-questions" || got.ResponseBody != "Backend Engineer" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("unexpected timestamp %v", got.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: events[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Fatalf("expected 1 event after sequence %d, got %d", events[1].Sequence, len(after))
	}

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "hr-questions"})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	for _, e := range byPurpose {
		if e.Purpose != "hr-questions" {
			t.Errorf("unexpected purpose %q", e.Purpose)
		}
	}
	if len(byPurpose) == 0 {
		t.Error("expected hr-questions events")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := []LLMRequestEventData{
		{Model: "llama-3.3-70b-versatile", Purpose: "tech-evaluate", InputTokens: 100, OutputTokens: 20, LatencyMs: 100},
		{Model: "llama-3.3-70b-versatile", Purpose: "tech-evaluate", InputTokens: 300, OutputTokens: 40, LatencyMs: 300},
		{Model: "gpt-4o-mini", Purpose: "chatbot", InputTokens: 50, OutputTokens: 50, LatencyMs: 500},
	}
	for _, d := range data {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	top := byPurpose[0]
	if top.Purpose != "tech-evaluate" || top.Calls != 2 || top.InputTokens != 400 || top.OutputTokens != 60 || top.AvgLatencyMs != 200 {
		t.Fatalf("unexpected aggregate: %+v", top)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "llama-3.3-70b-versatile" || byModel[0].Calls != 2 {
		t.Fatalf("unexpected model usage: %+v", byModel)
	}
}

func TestSessionAndAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s-1", CandidateID: "cand-1a2b3c", Action: ActionStart, Stage: "start",
	}); err != nil {
		t.Fatalf("append start: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s-1", CandidateID: "cand-1a2b3c", Round: "hr",
			QuestionIndex: i, Question: fmt.Sprintf("Q%d", i+1), Transcript: "answer",
			Language: "en", Score: 6 + i, Outcome: "parsed", RecordMs: 4200,
		}); err != nil {
			t.Fatalf("append answer %d: %v", i, err)
		}
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s-1", CandidateID: "cand-1a2b3c", Action: ActionComplete, Stage: "show_dashboard",
		Domain: "Backend Engineer", QuestionsAnswered: 2, AverageScore: 6.5, DurationSecs: 300,
	}); err != nil {
		t.Fatalf("append complete: %v", err)
	}

	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 session events, got %d", len(sessions))
	}
	if sessions[0].Action != ActionComplete || sessions[0].AverageScore != 6.5 {
		t.Fatalf("unexpected newest session event: %+v", sessions[0])
	}

	answers, err := repo.QueryAnswerEvents(ctx, "s-1")
	if err != nil {
		t.Fatalf("query answers: %v", err)
	}
	if len(answers) != 2 || answers[0].Question != "Q1" || answers[1].Score != 7 {
		t.Fatalf("unexpected answers: %+v", answers)
	}
	if answers[0].Sequence <= sessions[1].Sequence {
		t.Error("expected answers to be sequenced after the start event")
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	sessions, err = repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query after reset: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no events after reset, got %d", len(sessions))
	}
}
