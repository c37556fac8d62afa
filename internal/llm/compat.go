package llm

import "net/http"

const (
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

var groqModels = map[string]string{
	"llama-3.3-70b": "llama-3.3-70b-versatile",
	"llama-3.1-8b":  "llama-3.1-8b-instant",
	"llama3-70b":    "llama3-70b-8192",
}

// NewGroqProvider targets Groq's OpenAI-compatible endpoint. Structured
// requests use json_object mode since most Groq models reject
// json_schema.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	return newCompatProvider(compatOptions{
		name:    ProviderGroq,
		apiKey:  cfg.APIKey,
		baseURL: orDefault(cfg.BaseURL, defaultGroqBaseURL),
		model:   cfg.Model,
		models:  groqModels,
		mode:    jsonObjectMode,
	})
}

// NewOpenRouterProvider targets OpenRouter. Model IDs are passed through
// unchanged ("vendor/model").
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	h := http.Header{}
	if cfg.Referer != "" {
		h.Set("HTTP-Referer", cfg.Referer)
	}
	if cfg.Title != "" {
		h.Set("X-Title", cfg.Title)
	}
	return newCompatProvider(compatOptions{
		name:    ProviderOpenRouter,
		apiKey:  cfg.APIKey,
		baseURL: orDefault(cfg.BaseURL, defaultOpenRouterBaseURL),
		model:   cfg.Model,
		mode:    jsonObjectMode,
		header:  h,
	})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
