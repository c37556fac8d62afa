package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "openai", "anthropic", "gemini", "openrouter", "mock"
	Provider string `mapstructure:"provider" yaml:"provider"`

	Groq       GroqConfig       `mapstructure:"groq" yaml:"groq"`
	OpenAI     OpenAIConfig     `mapstructure:"openai" yaml:"openai"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic" yaml:"anthropic"`
	Gemini     GeminiConfig     `mapstructure:"gemini" yaml:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter" yaml:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry" yaml:"retry"`

	// Timeout bounds a single Generate call including retries. Default: 30s.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// GroqConfig holds Groq configuration. Groq serves an OpenAI-compatible API.
type GroqConfig struct {
	APIKey     string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" yaml:"api-key-file"`
	Model      string `mapstructure:"model" yaml:"model"`       // Default: "llama-3.3-70b"
	BaseURL    string `mapstructure:"base-url" yaml:"base-url"` // Default: "https://api.groq.com/openai/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey     string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" yaml:"api-key-file"`
	Model      string `mapstructure:"model" yaml:"model"` // Default: "claude-haiku"
	BaseURL    string `mapstructure:"base-url" yaml:"base-url"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" yaml:"api-key-file"`
	Model      string `mapstructure:"model" yaml:"model"`       // Default: "gpt-4o-mini"
	BaseURL    string `mapstructure:"base-url" yaml:"base-url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" yaml:"api-key-file"`
	Model      string `mapstructure:"model" yaml:"model"`       // Default: "gemini-flash"
	BaseURL    string `mapstructure:"base-url" yaml:"base-url"` // Optional. Proxy or regional endpoint.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey     string `mapstructure:"api-key" yaml:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file" yaml:"api-key-file"`
	Model      string `mapstructure:"model" yaml:"model"`       // Default: "meta-llama/llama-3.3-70b-instruct"
	BaseURL    string `mapstructure:"base-url" yaml:"base-url"` // Default: "https://openrouter.ai/api/v1"

	// Referer and Title are sent as HTTP-Referer and X-Title so usage is
	// attributed on openrouter.ai. Both optional.
	Referer string `mapstructure:"referer" yaml:"referer"`
	Title   string `mapstructure:"title" yaml:"title"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max-attempts" yaml:"max-attempts"`
	InitialWait time.Duration `mapstructure:"initial-wait" yaml:"initial-wait"`
	MaxWait     time.Duration `mapstructure:"max-wait" yaml:"max-wait"`
	Multiplier  float64       `mapstructure:"multiplier" yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGroq,
		Groq: GroqConfig{
			Model: "llama-3.3-70b",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "meta-llama/llama-3.3-70b-instruct",
			Title: "mockinterview",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// DiscoverConfig probes standard API key env vars in priority order
// (Groq → OpenAI → Anthropic → Gemini → OpenRouter) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = ProviderGroq
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// HasKey reports whether the selected provider has an API key configured.
func (c Config) HasKey() bool {
	switch c.Provider {
	case ProviderGroq:
		return c.Groq.APIKey != ""
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderAnthropic:
		return c.Anthropic.APIKey != ""
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey != ""
	case ProviderMock:
		return true
	}
	return false
}

// Model returns the configured model name of the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderGroq:
		return c.Groq.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY or llm.groq.api-key is required for the groq provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY or llm.openai.api-key is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY or llm.anthropic.api-key is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY or llm.gemini.api-key is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY or llm.openrouter.api-key is required for the openrouter provider")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("llm.timeout must not be negative")
	}
	return nil
}
