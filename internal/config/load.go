package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/secrets"
	"github.com/abhisek/mockinterview/internal/store"
	"github.com/abhisek/mockinterview/internal/transcribe"
)

// EnvPrefix prefixes every configuration environment variable, e.g.
// MOCKINTERVIEW_LLM_PROVIDER.
const EnvPrefix = "MOCKINTERVIEW"

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. When empty, SearchPaths are tried.
	File string
	// EnvFile is loaded into the process environment first. Default: ".env".
	EnvFile string
	// Flags are bound over everything else. Recognized names are the keys of
	// flagKeys.
	Flags *pflag.FlagSet
}

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"provider": "llm.provider",
	"stt":      "transcribe.backend",
	"db":       "storage.db",
	"data-dir": "storage.data-dir",
	"debug":    "log.debug",
	"json":     "log.json",
	"log-file": "log.file",
}

// SearchPaths returns the implicit config file locations in order.
func SearchPaths() []string {
	paths := []string{App + ".yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, App, "config.yaml"))
	}
	return paths
}

// Load builds the effective configuration. Precedence from lowest to
// highest: defaults, config file, environment, flags.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := yaml.Marshal(Default())
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}

	file, err := configFile(opts.File)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyProviderEnv(&cfg)
	if err := resolveSecrets(&cfg); err != nil {
		return nil, err
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = discoverProvider(cfg.LLM)
	}
	if err := resolveStorage(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// applyProviderEnv fills empty keys from the vendors' standard variables.
func applyProviderEnv(cfg *Config) {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&cfg.LLM.Groq.APIKey, "GROQ_API_KEY")
	fill(&cfg.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&cfg.LLM.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&cfg.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	fill(&cfg.LLM.OpenRouter.APIKey, "OPENROUTER_API_KEY")

	fill(&cfg.Transcribe.Whisper.APIKey, "OPENAI_API_KEY")
	fill(&cfg.Transcribe.Groq.APIKey, "GROQ_API_KEY")
	fill(&cfg.Transcribe.Deepgram.APIKey, "DEEPGRAM_API_KEY")
}

func resolveSecrets(cfg *Config) error {
	keys := []struct {
		name string
		key  *string
		file string
	}{
		{"llm.groq.api-key", &cfg.LLM.Groq.APIKey, cfg.LLM.Groq.APIKeyFile},
		{"llm.openai.api-key", &cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.APIKeyFile},
		{"llm.anthropic.api-key", &cfg.LLM.Anthropic.APIKey, cfg.LLM.Anthropic.APIKeyFile},
		{"llm.gemini.api-key", &cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.APIKeyFile},
		{"llm.openrouter.api-key", &cfg.LLM.OpenRouter.APIKey, cfg.LLM.OpenRouter.APIKeyFile},
		{"transcribe.whisper.api-key", &cfg.Transcribe.Whisper.APIKey, cfg.Transcribe.Whisper.APIKeyFile},
		{"transcribe.groq.api-key", &cfg.Transcribe.Groq.APIKey, cfg.Transcribe.Groq.APIKeyFile},
		{"transcribe.deepgram.api-key", &cfg.Transcribe.Deepgram.APIKey, cfg.Transcribe.Deepgram.APIKeyFile},
	}
	for _, k := range keys {
		v, err := secrets.LoadOptional(secrets.Source{Name: k.name, Value: *k.key, File: k.file})
		if err != nil {
			return err
		}
		*k.key = v
	}
	return nil
}

// discoverProvider picks the first provider with a key, in the order of
// llm.DiscoverConfig, falling back to the default provider.
func discoverProvider(c llm.Config) string {
	for _, p := range []string{
		llm.ProviderGroq, llm.ProviderOpenAI, llm.ProviderAnthropic,
		llm.ProviderGemini, llm.ProviderOpenRouter,
	} {
		c.Provider = p
		if c.HasKey() {
			return p
		}
	}
	return llm.DefaultConfig().Provider
}

func resolveStorage(cfg *Config) error {
	if cfg.Storage.DataDir == "" {
		dir, err := store.DefaultDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.Storage.DataDir = dir
	}
	if cfg.Transcribe.Backend == "" {
		cfg.Transcribe.Backend = transcribe.BackendWhisper
	}
	return nil
}
