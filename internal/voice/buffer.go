package voice

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrStartFailed is returned when the audio source cannot be opened.
	ErrStartFailed = errors.New("could not start recording")
	// ErrNoData is returned when a capture ends without any audio.
	ErrNoData = errors.New("no audio recorded")
)

// BufferConfig tunes a Buffer.
type BufferConfig struct {
	// StopTimeout bounds how long Stop waits for the reader goroutine.
	// Default: 1.5s.
	StopTimeout time.Duration `mapstructure:"stop-timeout" yaml:"stop-timeout"`
	// FrameSize is the read size of the capture loop. Default: 4096.
	FrameSize int `mapstructure:"frame-size" yaml:"frame-size"`
}

// capture is one start/stop cycle. frames is written only by the reader
// goroutine and read only after done is closed.
type capture struct {
	stream  Stream
	frames  [][]byte
	readErr error
	done    chan struct{}
	started time.Time
}

// Buffer records microphone audio between Start and Stop. Every capture
// gets fresh state, so a late frame from an abandoned capture can never
// reach the next one.
type Buffer struct {
	src Source
	cfg BufferConfig
	log *zap.Logger
	now func() time.Time

	mu     sync.Mutex
	active *capture
}

// NewBuffer creates a Buffer reading from src.
func NewBuffer(src Source, cfg BufferConfig, log *zap.Logger) *Buffer {
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = 1500 * time.Millisecond
	}
	if cfg.FrameSize < 256 {
		cfg.FrameSize = 4096
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Buffer{src: src, cfg: cfg, log: log, now: time.Now}
}

// Start opens the source and begins buffering. It returns false when a
// capture is already active or the source could not be opened.
func (b *Buffer) Start(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		return false
	}

	stream, err := b.src.Open(ctx)
	if err != nil {
		b.log.Warn("audio source open failed", zap.Error(err))
		return false
	}

	c := &capture{
		stream:  stream,
		done:    make(chan struct{}),
		started: b.now(),
	}
	go b.pump(c)
	b.active = c

	b.log.Debug("recording started")
	return true
}

func (b *Buffer) pump(c *capture) {
	defer close(c.done)

	buf := make([]byte, b.cfg.FrameSize)
	for {
		n, err := c.stream.Read(buf)
		if n > 0 {
			frame := make([]byte, n)
			copy(frame, buf[:n])
			c.frames = append(c.frames, frame)
		}
		if err != nil {
			if !isStreamEnd(err) {
				c.readErr = err
			}
			return
		}
	}
}

func isStreamEnd(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}

// Stop ends the active capture and returns its audio. It returns false when
// nothing was recording, when the reader did not finish in time, or when
// the capture produced no samples.
func (b *Buffer) Stop() (*Recording, bool) {
	b.mu.Lock()
	c := b.active
	b.active = nil
	b.mu.Unlock()

	if c == nil {
		return nil, false
	}

	go func() {
		if err := c.stream.Stop(); err != nil {
			b.log.Warn("audio source stop failed", zap.Error(err))
		}
	}()

	select {
	case <-c.done:
	case <-time.After(b.cfg.StopTimeout):
		b.log.Warn("recording reader did not finish, discarding capture",
			zap.Duration("timeout", b.cfg.StopTimeout))
		return nil, false
	}

	if c.readErr != nil {
		b.log.Warn("audio read error", zap.Error(c.readErr))
	}

	rate, channels := b.src.Format()
	rec := &Recording{SampleRate: rate, Channels: channels}

	size := 0
	for _, f := range c.frames {
		size += len(f)
	}
	pcm := make([]byte, 0, size)
	for _, f := range c.frames {
		pcm = append(pcm, f...)
	}
	rec.PCM = pcm[:len(pcm)-len(pcm)%rec.bytesPerFrame()]

	if len(rec.PCM) == 0 {
		b.log.Debug("recording stopped without audio")
		return nil, false
	}

	b.log.Debug("recording stopped",
		zap.Int("bytes", len(rec.PCM)),
		zap.Duration("duration", rec.Duration()))
	return rec, true
}

// IsRecording reports whether a capture is active.
func (b *Buffer) IsRecording() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active != nil
}

// Elapsed returns the time since the active capture started.
func (b *Buffer) Elapsed() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return 0
	}
	return b.now().Sub(b.active.started)
}

// RecordFor captures until max elapses or ctx is done, whichever is first.
func (b *Buffer) RecordFor(ctx context.Context, max time.Duration) (*Recording, error) {
	if !b.Start(ctx) {
		return nil, ErrStartFailed
	}

	timer := time.NewTimer(max)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}

	rec, ok := b.Stop()
	if !ok {
		return nil, ErrNoData
	}
	return rec, nil
}
