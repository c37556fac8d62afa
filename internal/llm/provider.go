package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates one completion per call. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Generate returns plain text, or validated JSON when req.Schema is set.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Role says who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Request is a single completion call. Most callers send one user message;
// the chatbot replays its whole conversation.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the call to structured output. Each backend uses
	// its native JSON mode and the result is checked against Definition.
	Schema *Schema

	MaxTokens int
	// Temperature of 0 keeps the backend's default.
	Temperature float64
}

// Schema is a named JSON Schema document. Name doubles as the OpenAI
// schema name and the compiled-schema cache key, so keep it kebab-case
// ("answer-evaluation").
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response carries the completion. Content is JSON for structured calls
// and the raw completion text otherwise.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is what the backend reports serving, which may be more
	// specific than the configured alias.
	Model string
	// StopReason is "end", "max_tokens", or "error" when a filter cut the
	// output short.
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text is the trimmed completion; it is empty for a nil Response.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}
