package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnthropicServer(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "sk-ant-test", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	return p
}

func anthropicReply(w http.ResponseWriter, stop string, blocks ...string) {
	content := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		content = append(content, map[string]any{"type": "text", "text": b})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	})
}

func anthropicFailure(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": kind, "message": msg},
	})
}

func TestAnthropicProvider_Text(t *testing.T) {
	var body map[string]any
	p := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		anthropicReply(w, "end_turn", "Score: 7/10\n", "Feedback: Correct concept but lacks depth.")
	})
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System: "You are a technical interview evaluator.",
		Messages: []Message{
			{Role: RoleUser, Content: "Tell me about yourself."},
			{Role: RoleAssistant, Content: "Please answer."},
			{Role: RoleUser, Content: "I build APIs."},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Score: 7/10\nFeedback: Correct concept but lacks depth.", resp.Text())
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.EqualValues(t, anthropicFallbackMaxTokens, body["max_tokens"])
	msgs, _ := body["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
}

func TestAnthropicProvider_StructuredStripsFence(t *testing.T) {
	p := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicReply(w, "end_turn", "```json\n{\"feedback\":\"Good.\",\"score\":9}\n```")
	})
	req := ask("Evaluate.")
	req.Schema = evaluationSchema()

	resp, err := p.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"feedback":"Good.","score":9}`, string(resp.Content))
}

func TestAnthropicProvider_EmptyTruncated(t *testing.T) {
	p := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicReply(w, "max_tokens")
	})
	_, err := p.Generate(context.Background(), ask("hi"))
	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("rate limit with retry-after", func(t *testing.T) {
		p := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "7")
			anthropicFailure(w, http.StatusTooManyRequests, "rate_limit_error", "slow down")
		})
		_, err := p.Generate(context.Background(), ask("hi"))
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
	})

	t.Run("bad key", func(t *testing.T) {
		p := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
			anthropicFailure(w, http.StatusUnauthorized, "authentication_error", "invalid x-api-key")
		})
		_, err := p.Generate(context.Background(), ask("hi"))
		assert.True(t, IsAuth(err))
	})

	t.Run("server error", func(t *testing.T) {
		p := newAnthropicServer(t, func(w http.ResponseWriter, r *http.Request) {
			anthropicFailure(w, http.StatusInternalServerError, "api_error", "boom")
		})
		_, err := p.Generate(context.Background(), ask("hi"))
		var un *ErrProviderUnavailable
		assert.ErrorAs(t, err, &un)
	})
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-opus-4", resolveModel("claude-opus-4", anthropicModels))
	assert.Equal(t, "", resolveModel("", anthropicModels))
}
