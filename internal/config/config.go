// Package config loads the application configuration from defaults, a YAML
// file, .env and the environment, and command line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/abhisek/mockinterview/internal/llm"
	"github.com/abhisek/mockinterview/internal/transcribe"
	"github.com/abhisek/mockinterview/internal/voice"
)

// App is the application and file name stem.
const App = "mockinterview"

// Config is the complete application configuration.
type Config struct {
	LLM        llm.Config        `mapstructure:"llm" yaml:"llm"`
	Transcribe transcribe.Config `mapstructure:"transcribe" yaml:"transcribe"`
	Voice      VoiceConfig       `mapstructure:"voice" yaml:"voice"`
	Interview  InterviewConfig   `mapstructure:"interview" yaml:"interview"`
	Storage    StorageConfig     `mapstructure:"storage" yaml:"storage"`
	Log        LogConfig         `mapstructure:"log" yaml:"log"`
}

// VoiceConfig configures microphone capture.
type VoiceConfig struct {
	FFmpeg voice.FFmpegConfig `mapstructure:"ffmpeg" yaml:"ffmpeg"`
	Buffer voice.BufferConfig `mapstructure:"buffer" yaml:"buffer"`
	// SaveRecordings keeps a WAV copy of every answer under RecordingsDir.
	SaveRecordings bool   `mapstructure:"save-recordings" yaml:"save-recordings"`
	RecordingsDir  string `mapstructure:"recordings-dir" yaml:"recordings-dir"`
}

// InterviewConfig shapes the interview.
type InterviewConfig struct {
	HRQuestions   int `mapstructure:"hr-questions" yaml:"hr-questions"`
	TechQuestions int `mapstructure:"tech-questions" yaml:"tech-questions"`
	// RecordMax caps a single answer. Default: 20s.
	RecordMax   time.Duration `mapstructure:"record-max" yaml:"record-max"`
	JobLocation string        `mapstructure:"job-location" yaml:"job-location"`
}

// StorageConfig locates persistent files. Empty paths resolve under DataDir.
type StorageConfig struct {
	DataDir    string `mapstructure:"data-dir" yaml:"data-dir"`
	DB         string `mapstructure:"db" yaml:"db"`
	ResultsDir string `mapstructure:"results-dir" yaml:"results-dir"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json" yaml:"json"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Default returns the built-in configuration. The LLM provider is left
// empty so that Load can discover one from the environment.
func Default() Config {
	c := Config{
		LLM:        llm.DefaultConfig(),
		Transcribe: transcribe.DefaultConfig(),
		Voice: VoiceConfig{
			FFmpeg: voice.FFmpegConfig{
				Command:     "ffmpeg",
				InputFormat: "pulse",
				InputDevice: "default",
				SampleRate:  16000,
				Channels:    1,
			},
			Buffer: voice.BufferConfig{
				StopTimeout: 1500 * time.Millisecond,
				FrameSize:   4096,
			},
			RecordingsDir: "recordings",
		},
		Interview: InterviewConfig{
			HRQuestions:   5,
			TechQuestions: 10,
			RecordMax:     20 * time.Second,
			JobLocation:   "India",
		},
	}
	c.LLM.Provider = ""
	return c
}

// DBPath returns the sqlite event log path.
func (c Config) DBPath() string {
	if c.Storage.DB != "" {
		return c.Storage.DB
	}
	return filepath.Join(c.Storage.DataDir, "events.db")
}

// ResultsPath returns the directory holding the JSON result files.
func (c Config) ResultsPath() string {
	if c.Storage.ResultsDir != "" {
		return c.Storage.ResultsDir
	}
	return c.Storage.DataDir
}

// LogPath returns the file the TUI logs to.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Storage.DataDir, App+".log")
}

// Validate reports every problem that would stop an interview from
// running.
func (c Config) Validate() error {
	var errs []error
	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Transcribe.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Interview.HRQuestions <= 0 {
		errs = append(errs, fmt.Errorf("interview.hr-questions must be positive, got %d", c.Interview.HRQuestions))
	}
	if c.Interview.TechQuestions <= 0 {
		errs = append(errs, fmt.Errorf("interview.tech-questions must be positive, got %d", c.Interview.TechQuestions))
	}
	if c.Interview.RecordMax <= 0 {
		errs = append(errs, fmt.Errorf("interview.record-max must be positive, got %s", c.Interview.RecordMax))
	}
	if c.Voice.FFmpeg.SampleRate <= 0 || c.Voice.FFmpeg.Channels <= 0 {
		errs = append(errs, errors.New("voice.ffmpeg sample-rate and channels must be positive"))
	}
	return errors.Join(errs...)
}
