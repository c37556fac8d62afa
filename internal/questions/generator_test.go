package questions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mockinterview/internal/llm"
)

func TestGenerator_HR(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse(
		"1. Tell me about yourself.\n2) Why do you want this job?\n\n3. What motivates you?\n" +
			"4. How do you handle pressure?\n5. Where do you see yourself in 5 years?\n6. Extra?"))
	gen := New(mock, DefaultConfig())

	qs, err := gen.HR(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d: %v", len(qs), qs)
	}
	if qs[0] != "Tell me about yourself." || qs[1] != "Why do you want this job?" {
		t.Errorf("prefixes not stripped: %v", qs)
	}

	req := mock.Calls[0]
	if req.System != hrSystemPrompt {
		t.Errorf("unexpected system prompt: %q", req.System)
	}
	if req.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", req.Temperature)
	}
	if !strings.HasPrefix(req.Messages[0].Content, "Generate 5 simple and short HR interview questions.") {
		t.Errorf("unexpected prompt: %q", req.Messages[0].Content)
	}
}

func TestGenerator_HRFewerThanRequested(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Tell me about yourself.\nWhat are your strengths?"))
	qs, err := New(mock, DefaultConfig()).HR(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("expected 2 questions, got %d", len(qs))
	}
}

func TestGenerator_HRErrors(t *testing.T) {
	t.Run("backend error", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
		if _, err := New(mock, DefaultConfig()).HR(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})
	t.Run("empty output", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.TextResponse("   \n  "))
		_, err := New(mock, DefaultConfig()).HR(context.Background())
		if !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("expected ErrNoQuestions, got %v", err)
		}
	})
}

func TestGenerator_Technical(t *testing.T) {
	var b strings.Builder
	b.WriteString("Here are your questions:\n")
	for i := 1; i <= 12; i++ {
		b.WriteString(strings.Repeat(" ", i%2))
		b.WriteString(string(rune('0'+i/10)) + string(rune('0'+i%10)))
		b.WriteString(". What is concept ")
		b.WriteString(string(rune('A' + i - 1)))
		b.WriteString("?\n")
	}
	mock := llm.NewMockProvider(llm.TextResponse(b.String()))
	gen := New(mock, DefaultConfig())

	qs, err := gen.Technical(context.Background(), "Backend Developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(qs))
	}
	if qs[0] != "What is concept A?" {
		t.Errorf("unexpected first question: %q", qs[0])
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Generate 10 unique") || !strings.Contains(prompt, "'Backend Developer'") {
		t.Errorf("unexpected prompt: %q", prompt)
	}
	if mock.Calls[0].System != techSystemPrompt {
		t.Errorf("unexpected system prompt")
	}
}

func TestGenerator_TechnicalNoNumberedLines(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("What is a goroutine?\nWhat is a channel?"))
	_, err := New(mock, DefaultConfig()).Technical(context.Background(), "Go Developer")
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	g := New(llm.NewMockProvider(), Config{HRCount: -1})
	if g.config.HRCount != 5 || g.config.TechCount != 10 || g.config.MaxTokens != 1024 {
		t.Errorf("defaults not applied: %+v", g.config)
	}
}
