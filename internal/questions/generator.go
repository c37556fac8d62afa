// Package questions generates HR and technical interview questions.
package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/mockinterview/internal/llm"
)

// ErrNoQuestions is returned when the model output yields no questions.
var ErrNoQuestions = errors.New("no questions generated")

// Config controls question generation.
type Config struct {
	// HRCount is the number of HR questions per interview. Default: 5.
	HRCount int
	// TechCount is the number of technical questions. Default: 10.
	TechCount int
	// MaxTokens is the token budget for one generation call.
	MaxTokens int
	// HRTemperature controls randomness of the HR list.
	HRTemperature float64
}

// DefaultConfig returns the standard interview shape.
func DefaultConfig() Config {
	return Config{
		HRCount:       5,
		TechCount:     10,
		MaxTokens:     1024,
		HRTemperature: 0.7,
	}
}

// Generator produces question lists using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator. Non-positive counts fall back to the defaults.
func New(provider llm.Provider, cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.HRCount <= 0 {
		cfg.HRCount = def.HRCount
	}
	if cfg.TechCount <= 0 {
		cfg.TechCount = def.TechCount
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return &Generator{provider: provider, config: cfg}
}

// HR returns up to HRCount screening questions.
func (g *Generator) HR(ctx context.Context) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "hr-questions")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: hrSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildHRPrompt(g.config.HRCount)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.HRTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate HR questions: %w", err)
	}

	qs := ParseHR(resp.Text(), g.config.HRCount)
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

// Technical returns up to TechCount questions for domain.
func (g *Generator) Technical(ctx context.Context, domain string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "tech-questions")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: techSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTechPrompt(domain, g.config.TechCount)},
		},
		MaxTokens: g.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate technical questions: %w", err)
	}

	qs := ParseTechnical(resp.Text(), g.config.TechCount)
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}
