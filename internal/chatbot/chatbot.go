// Package chatbot is a study and career assistant with multi-turn memory.
package chatbot

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/llm"
)

const systemPrompt = "You are an AI interview assistant designed to help users with study-related topics, job preparation, job search guidance, and interview improvement strategies. " +
	"You can assist with questions about technical concepts, soft skills, resume building, mock interviews, domain-specific topics, and job roles. " +
	"Only answer questions that are related to education, career development, job search, interview preparation, or learning strategies. " +
	"If the user asks something unrelated (e.g., entertainment, personal issues, unrelated opinions), politely respond that your scope is limited to study and career-related support."

// Config controls the chatbot.
type Config struct {
	MaxTokens int
	// MaxTurns caps how many past messages are sent with each question.
	// Zero keeps the whole conversation.
	MaxTurns int
}

// DefaultConfig returns the default chatbot settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 1024, MaxTurns: 40}
}

// Chat holds one conversation. It is safe for concurrent use.
type Chat struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger

	mu      sync.Mutex
	history []llm.Message
}

// New creates an empty conversation.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Chat {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Chat{provider: provider, cfg: cfg, log: log}
}

// Ask sends text with the conversation so far and returns the reply. Blank
// input is ignored and returns "". Backend failures are returned as an
// "Error: ..." reply and kept in the history like any other reply.
func (c *Chat) Ask(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, llm.Message{Role: llm.RoleUser, Content: text})

	ctx = llm.WithPurpose(ctx, "chatbot")
	resp, err := c.provider.Generate(ctx, llm.Request{
		System:    systemPrompt,
		Messages:  c.window(),
		MaxTokens: c.cfg.MaxTokens,
	})

	var reply string
	if err != nil {
		c.log.Warn("chatbot request failed", zap.Error(err))
		reply = fmt.Sprintf("Error: %v", err)
	} else {
		reply = resp.Text()
	}

	c.history = append(c.history, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply
}

// window returns the tail of the history that fits MaxTurns, always
// starting at a user message.
func (c *Chat) window() []llm.Message {
	h := c.history
	if c.cfg.MaxTurns > 0 && len(h) > c.cfg.MaxTurns {
		h = h[len(h)-c.cfg.MaxTurns:]
		for len(h) > 0 && h[0].Role != llm.RoleUser {
			h = h[1:]
		}
	}
	return append([]llm.Message(nil), h...)
}

// History returns a copy of the conversation without the system prompt.
func (c *Chat) History() []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.Message(nil), c.history...)
}

// Reset clears the conversation.
func (c *Chat) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}
