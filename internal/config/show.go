package config

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mockinterview/internal/secrets"
)

// Redacted returns a copy with every API key masked.
func (c Config) Redacted() Config {
	for _, k := range []*string{
		&c.LLM.Groq.APIKey,
		&c.LLM.OpenAI.APIKey,
		&c.LLM.Anthropic.APIKey,
		&c.LLM.Gemini.APIKey,
		&c.LLM.OpenRouter.APIKey,
		&c.Transcribe.Whisper.APIKey,
		&c.Transcribe.Groq.APIKey,
		&c.Transcribe.Deepgram.APIKey,
	} {
		*k = secrets.Mask(*k)
	}
	return c
}

// WriteYAML writes c as YAML with secrets masked.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Redacted()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

const starterHeader = `# mockinterview configuration.
# API keys are usually taken from GROQ_API_KEY, OPENAI_API_KEY,
# ANTHROPIC_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY and DEEPGRAM_API_KEY
# (or a .env file). Any key below can also be set as MOCKINTERVIEW_<PATH>,
# e.g. MOCKINTERVIEW_LLM_PROVIDER=openai.
`

// WriteStarter writes a starter config file at path. It refuses to replace
// an existing file unless force is set.
func WriteStarter(fs afero.Fs, path string, force bool) error {
	if !force {
		if ok, _ := afero.Exists(fs, path); ok {
			return fmt.Errorf("%s already exists", path)
		}
	}

	cfg := Default()
	cfg.LLM.Provider = "groq"

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode starter config: %w", err)
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return afero.WriteFile(fs, path, append([]byte(starterHeader), body...), 0o600)
}
