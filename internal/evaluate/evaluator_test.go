package evaluate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"text/template"

	"github.com/abhisek/mockinterview/internal/llm"
)

func TestEvaluator_HR(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse(
		"Score: 8\nFeedback: Good structure, add an example.\nConfidence Level: medium"))
	ev := New(mock, DefaultConfig())

	got := ev.HR(context.Background(), "Tell me about yourself.", "I am a Go developer.")
	want := Evaluation{8, "Good structure, add an example.", "Medium", OutcomeParsed}
	if got != want {
		t.Errorf("HR() = %+v, want %+v", got, want)
	}

	req := mock.Calls[0]
	if req.System != "You are an expert HR evaluator." {
		t.Errorf("unexpected system prompt: %q", req.System)
	}
	msg := req.Messages[0].Content
	for _, s := range []string{
		"Question: Tell me about yourself.\n",
		"Answer: I am a Go developer.\n",
		"Confidence Level: <Low, Medium, High>",
		"Don't include anything else.",
	} {
		if !strings.Contains(msg, s) {
			t.Errorf("prompt missing %q:\n%s", s, msg)
		}
	}
}

func TestEvaluator_HRBackendError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("rate limited")})
	got := New(mock, DefaultConfig()).HR(context.Background(), "q", "a")
	want := Evaluation{0, "Error during evaluation.", "Low", OutcomeFailed}
	if got != want {
		t.Errorf("HR() = %+v, want %+v", got, want)
	}
}

func TestEvaluator_Technical(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Score: 9/10\nFeedback: Precise."))
	ev := New(mock, DefaultConfig())

	got := ev.Technical(context.Background(), "Backend Developer", "What is REST?", "An architectural style.")
	if got.Score != 9 || got.Feedback != "Precise." || got.Outcome != OutcomeParsed {
		t.Errorf("Technical() = %+v", got)
	}
	if got.Confidence != "" {
		t.Errorf("technical evaluation should carry no confidence, got %q", got.Confidence)
	}

	msg := mock.Calls[0].Messages[0].Content
	if !strings.Contains(msg, "Domain: Backend Developer\n") ||
		!strings.Contains(msg, "Candidate's Answer: An architectural style.\n") {
		t.Errorf("unexpected prompt:\n%s", msg)
	}
	if mock.Calls[0].System != "You are a technical interview evaluator." {
		t.Errorf("unexpected system prompt")
	}
}

func TestEvaluator_TechnicalBackendError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("timeout")})
	got := New(mock, DefaultConfig()).Technical(context.Background(), "d", "q", "a")
	if got.Score != 0 || got.Outcome != OutcomeFailed {
		t.Errorf("Technical() = %+v", got)
	}
	if got.Feedback != "Error evaluating technical answer: timeout" {
		t.Errorf("unexpected feedback: %q", got.Feedback)
	}
}

func TestEvaluator_AnswerWithTemplateSyntax(t *testing.T) {
	mock := llm.NewMockProvider(llm.TextResponse("Score: 5/10\nFeedback: ok"))
	New(mock, DefaultConfig()).Technical(context.Background(), "Go", "q", "use {{.Domain}} <b>")

	if !strings.Contains(mock.Calls[0].Messages[0].Content, "use {{.Domain}} <b>") {
		t.Error("answer text should be inserted verbatim")
	}
}

func TestEvaluator_PromptRenderFailure(t *testing.T) {
	broken := template.Must(template.New("broken").Option("missingkey=error").Parse("{{.Rubric}}"))
	mock := llm.NewMockProvider(llm.TextResponse("Score: 9/10\nFeedback: unused"))
	ev := New(mock, DefaultConfig())
	ev.hrPrompt = broken
	ev.techPrompt = broken

	hr := ev.HR(context.Background(), "q", "a")
	if want := (Evaluation{0, "Error during evaluation.", "Low", OutcomeFailed}); hr != want {
		t.Errorf("HR() = %+v, want %+v", hr, want)
	}

	tech := ev.Technical(context.Background(), "d", "q", "a")
	if tech.Score != 0 || tech.Outcome != OutcomeFailed {
		t.Errorf("Technical() = %+v", tech)
	}
	if !strings.HasPrefix(tech.Feedback, "Error evaluating technical answer: render broken prompt:") {
		t.Errorf("unexpected feedback: %q", tech.Feedback)
	}
	if len(mock.Calls) != 0 {
		t.Errorf("backend called %d times after a render failure", len(mock.Calls))
	}
}
