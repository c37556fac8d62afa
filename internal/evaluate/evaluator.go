package evaluate

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/abhisek/mockinterview/internal/llm"
)

// Config holds evaluator settings.
type Config struct {
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 256}
}

// Evaluator scores answers. It never returns an error; backend failures
// become a zero score with an explanatory feedback line.
type Evaluator struct {
	provider   llm.Provider
	cfg        Config
	hrPrompt   *template.Template
	techPrompt *template.Template
}

// New creates an Evaluator.
func New(provider llm.Provider, cfg Config) *Evaluator {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Evaluator{
		provider:   provider,
		cfg:        cfg,
		hrPrompt:   hrUserTemplate,
		techPrompt: techUserTemplate,
	}
}

// HR scores an answer to an HR question.
func (e *Evaluator) HR(ctx context.Context, question, answer string) Evaluation {
	ctx = llm.WithPurpose(ctx, "hr-evaluate")

	msg, err := render(e.hrPrompt, map[string]string{"Question": question, "Answer": answer})
	if err != nil {
		return failedHR()
	}
	resp, err := e.provider.Generate(ctx, llm.Request{
		System:    hrSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: msg}},
		MaxTokens: e.cfg.MaxTokens,
	})
	if err != nil {
		return failedHR()
	}
	return ParseHR(resp.Text())
}

// Technical scores an answer to a technical question in domain.
func (e *Evaluator) Technical(ctx context.Context, domain, question, answer string) Evaluation {
	ctx = llm.WithPurpose(ctx, "tech-evaluate")

	msg, err := render(e.techPrompt, map[string]string{
		"Domain":   domain,
		"Question": question,
		"Answer":   answer,
	})
	if err != nil {
		return failedTechnical(err)
	}
	resp, err := e.provider.Generate(ctx, llm.Request{
		System:    techSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: msg}},
		MaxTokens: e.cfg.MaxTokens,
	})
	if err != nil {
		return failedTechnical(err)
	}
	return ParseTechnical(resp.Text())
}

func failedHR() Evaluation {
	return Evaluation{
		Score:      0,
		Feedback:   errorFeedbackHR,
		Confidence: ConfidenceLow,
		Outcome:    OutcomeFailed,
	}
}

func failedTechnical(err error) Evaluation {
	return Evaluation{
		Score:    0,
		Feedback: fmt.Sprintf("Error evaluating technical answer: %v", err),
		Outcome:  OutcomeFailed,
	}
}

const (
	hrSystemPrompt   = "You are an expert HR evaluator."
	techSystemPrompt = "You are a technical interview evaluator."
)

var hrUserTemplate = template.Must(template.New("hr").Parse(`You are an HR evaluator assistant.
Evaluate the following answer to the HR question.

Question: {{.Question}}
Answer: {{.Answer}}

Return the result in this format strictly:
Score: <score out of 10>
Feedback: <feedback on structure, clarity, and content>
Confidence Level: <Low, Medium, High> based on the tone of the answer.
Don't include anything else.`))

var techUserTemplate = template.Must(template.New("tech").Parse(`You are evaluating a technical interview answer.

Domain: {{.Domain}}
Question: {{.Question}}
Candidate's Answer: {{.Answer}}

Evaluate this answer out of 10 based on:
1. Correctness
2. Keyword relevance

Return strictly the score (out of 10) and 1-2 lines of feedback. Example:
Score: 7/10
Feedback: Correct concept but lacks depth.`))

func render(t *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return buf.String(), nil
}
