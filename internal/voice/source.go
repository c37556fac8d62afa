package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// Stream is an open audio input producing raw PCM until stopped.
type Stream interface {
	io.Reader
	// Stop ends the capture. Reads return io.EOF or a closed-pipe error
	// once the buffered audio is drained.
	Stop() error
}

// Source opens audio streams.
type Source interface {
	Open(ctx context.Context) (Stream, error)
	// Format reports the sample rate and channel count of opened streams.
	Format() (sampleRate, channels int)
}

// FFmpegConfig configures the ffmpeg microphone source.
type FFmpegConfig struct {
	Command     string `mapstructure:"command" yaml:"command"`           // Default: "ffmpeg"
	InputFormat string `mapstructure:"input-format" yaml:"input-format"` // Default: "pulse"
	InputDevice string `mapstructure:"input-device" yaml:"input-device"` // Default: "default"
	SampleRate  int    `mapstructure:"sample-rate" yaml:"sample-rate"`   // Default: 16000
	Channels    int    `mapstructure:"channels" yaml:"channels"`         // Default: 1
}

const (
	startupWindow = 250 * time.Millisecond
	killGrace     = 1200 * time.Millisecond
)

// FFmpegSource captures microphone PCM by running ffmpeg and reading s16le
// from its stdout.
type FFmpegSource struct {
	cfg FFmpegConfig
}

// NewFFmpegSource fills defaults into cfg.
func NewFFmpegSource(cfg FFmpegConfig) *FFmpegSource {
	if cfg.Command == "" {
		cfg.Command = "ffmpeg"
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Channels <= 0 {
		cfg.Channels = 1
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = "pulse"
	}
	if cfg.InputDevice == "" {
		cfg.InputDevice = "default"
	}
	return &FFmpegSource{cfg: cfg}
}

// Available reports whether the ffmpeg binary can be found.
func (s *FFmpegSource) Available() error {
	if _, err := exec.LookPath(s.cfg.Command); err != nil {
		return fmt.Errorf("%s not found: %w", s.cfg.Command, err)
	}
	return nil
}

func (s *FFmpegSource) Format() (int, int) {
	return s.cfg.SampleRate, s.cfg.Channels
}

func (s *FFmpegSource) args() []string {
	return []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "warning",
		"-f", s.cfg.InputFormat,
		"-i", s.cfg.InputDevice,
		"-ac", strconv.Itoa(s.cfg.Channels),
		"-ar", strconv.Itoa(s.cfg.SampleRate),
		"-f", "s16le",
		"-",
	}
}

func (s *FFmpegSource) Open(ctx context.Context) (Stream, error) {
	cmd := exec.CommandContext(ctx, s.cfg.Command, s.args()...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		close(waitErr)
	}()

	// A missing device makes ffmpeg exit almost immediately.
	select {
	case err := <-waitErr:
		if err != nil {
			return nil, fmt.Errorf("ffmpeg exited before capture started: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return nil, errors.New("ffmpeg exited before capture started")
	case <-time.After(startupWindow):
	}

	return &ffmpegStream{
		stdout:  stdout,
		stderr:  &stderr,
		process: cmd.Process,
		waitErr: waitErr,
	}, nil
}

type ffmpegStream struct {
	stdout io.ReadCloser
	stderr *bytes.Buffer

	process *os.Process
	waitErr <-chan error

	stopOnce sync.Once
	stopErr  error
}

func (s *ffmpegStream) Read(p []byte) (int, error) {
	return s.stdout.Read(p)
}

// Stop interrupts ffmpeg so it flushes its output, killing it if it does not
// exit within the grace period.
func (s *ffmpegStream) Stop() error {
	s.stopOnce.Do(func() {
		if s.process != nil {
			_ = s.process.Signal(os.Interrupt)
		}

		select {
		case err, ok := <-s.waitErr:
			if ok {
				s.stopErr = normalizeExitErr(err)
			}
		case <-time.After(killGrace):
			if s.process != nil {
				_ = s.process.Kill()
			}
			if err, ok := <-s.waitErr; ok {
				s.stopErr = normalizeExitErr(err)
			}
		}

		if s.stopErr != nil && s.stderr.Len() > 0 {
			s.stopErr = fmt.Errorf("%w: %s", s.stopErr, bytes.TrimSpace(s.stderr.Bytes()))
		}
	})

	return s.stopErr
}

// normalizeExitErr ignores the non-zero exit status ffmpeg reports when it
// is interrupted.
func normalizeExitErr(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}
