package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/app"
	"github.com/abhisek/mockinterview/internal/config"
	"github.com/abhisek/mockinterview/internal/logger"
	"github.com/abhisek/mockinterview/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   config.App,
	Short: "Voice mock interview coach",
	Long:  "mockinterview runs a spoken mock interview: an HR round and a technical round scored by an LLM, followed by a performance dashboard.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the root command. Cancelling ctx interrupts long-running
// commands such as record.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./mockinterview.yaml, then the user config dir)")
	pf.String("provider", "", "LLM provider: groq, openai, anthropic, gemini, openrouter")
	pf.String("stt", "", "Speech-to-text backend: whisper, groq, deepgram, mock")
	pf.String("db", "", "Path to the SQLite event log")
	pf.String("data-dir", "", "Directory for results, logs and the event log")
	pf.BoolP("debug", "d", false, "Verbose/debug logging")
	pf.BoolP("json", "j", false, "JSON log format")
	pf.String("log-file", "", "Log file (the TUI logs to <data-dir>/mockinterview.log by default)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// env is everything a command needs after startup.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	svc   *app.Services
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	_ = e.log.Sync()
}

// setup loads config, opens the logger and event log and builds services.
// toFile sends logs to the configured log file instead of stderr.
func setup(cmd *cobra.Command, toFile bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOpts := logger.Options{JSON: cfg.Log.JSON, Debug: cfg.Log.Debug, File: cfg.Log.File}
	if toFile {
		logOpts.File = cfg.LogPath()
		if err := store.EnsureDir(logOpts.File); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log, store: st}
	e.svc = app.NewServices(cmd.Context(), cfg, afero.NewOsFs(), st.EventRepo(), log)
	return e, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	path := cfg.DBPath()
	if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// requireLLM fails with a configuration hint when no provider is usable.
func requireLLM(e *env) error {
	if e.svc.LLMReady() {
		return nil
	}
	fmt.Fprintln(os.Stderr, "Run `mockinterview config init` and set an API key.")
	return fmt.Errorf("LLM provider not configured: %w", e.svc.ProviderErr)
}
