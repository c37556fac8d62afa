package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
	"gpt-4.1":     "gpt-4.1",
}

// jsonMode is how a chat-completions endpoint is asked for structured
// output.
type jsonMode int

const (
	// jsonSchemaMode sends the schema as response_format json_schema.
	jsonSchemaMode jsonMode = iota
	// jsonObjectMode asks for json_object and puts the schema in the
	// system prompt. Used by endpoints whose models lack schema support.
	jsonObjectMode
)

// OpenAIProvider talks to any OpenAI-style chat completions endpoint.
// Groq and OpenRouter are built on it.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
	mode   jsonMode
}

// compatOptions describes one OpenAI-compatible endpoint.
type compatOptions struct {
	name    string
	apiKey  string
	baseURL string
	model   string
	models  map[string]string
	mode    jsonMode
	header  http.Header
}

// NewOpenAIProvider creates a provider for api.openai.com, or for any
// compatible gateway when BaseURL is set.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	return newCompatProvider(compatOptions{
		name:    ProviderOpenAI,
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		models:  openaiModels,
		mode:    jsonSchemaMode,
	})
}

func newCompatProvider(o compatOptions) (*OpenAIProvider, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("%s API key is required", o.name)
	}
	model := resolveModel(o.model, o.models)
	if model == "" {
		return nil, fmt.Errorf("%s model is required", o.name)
	}

	cc := openai.DefaultConfig(o.apiKey)
	if o.baseURL != "" {
		cc.BaseURL = strings.TrimRight(o.baseURL, "/")
	}
	if len(o.header) > 0 {
		cc.HTTPClient = &http.Client{Transport: headerTransport{base: http.DefaultTransport, header: o.header}}
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cc),
		name:   o.name,
		model:  model,
		mode:   o.mode,
	}, nil
}

func (p *OpenAIProvider) ModelID() string { return p.model }

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chat, err := p.chatRequest(req)
	if err != nil {
		return nil, err
	}

	out, err := p.client.CreateChatCompletion(ctx, chat)
	if err != nil {
		return nil, p.mapError(err)
	}
	if len(out.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("%s returned no choices", p.name)}
	}

	choice := out.Choices[0]
	content := json.RawMessage(choice.Message.Content)
	if choice.FinishReason == openai.FinishReasonLength && strings.TrimSpace(choice.Message.Content) == "" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if content, err = checkStructured(req.Schema, content); err != nil {
		return nil, err
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
			TotalTokens:  out.Usage.TotalTokens,
		},
		Model:      out.Model,
		StopReason: openAIStopReason(choice.FinishReason),
	}, nil
}

func (p *OpenAIProvider) chatRequest(req Request) (openai.ChatCompletionRequest, error) {
	system := req.System
	chat := openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Schema != nil {
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return chat, fmt.Errorf("encode schema %q: %w", req.Schema.Name, err)
		}
		switch p.mode {
		case jsonObjectMode:
			chat.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
			system = strings.TrimSpace(system + "\n\nReply with one JSON object that matches this JSON Schema:\n" + string(def))
		default:
			chat.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:        req.Schema.Name,
					Description: req.Schema.Description,
					Schema:      json.RawMessage(def),
				},
			}
		}
	}

	if system != "" {
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		chat.Messages = append(chat.Messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return chat, nil
}

func openAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonLength:
		return "max_tokens"
	case openai.FinishReasonContentFilter:
		return "error"
	}
	return "end"
}

func (p *OpenAIProvider) mapError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, _ := apiErr.Code.(string); code == "context_length_exceeded" {
			return &ErrMaxTokensExceeded{}
		}
		return statusError(p.name, apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return statusError(p.name, reqErr.HTTPStatusCode, nil, err)
	}
	return &ErrProviderUnavailable{Err: err}
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base   http.RoundTripper
	header http.Header
}

func (t headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	for k, v := range t.header {
		r.Header[k] = v
	}
	return t.base.RoundTrip(r)
}
