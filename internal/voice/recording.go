package voice

import (
	"encoding/binary"
	"time"
)

// Recording is one finished capture: signed 16-bit little-endian PCM.
// It is immutable once returned by Buffer.Stop.
type Recording struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

func (r *Recording) bytesPerFrame() int {
	ch := r.Channels
	if ch <= 0 {
		ch = 1
	}
	return 2 * ch
}

// Duration returns the playback length of the recording.
func (r *Recording) Duration() time.Duration {
	if r == nil || r.SampleRate <= 0 {
		return 0
	}
	frames := len(r.PCM) / r.bytesPerFrame()
	return time.Duration(frames) * time.Second / time.Duration(r.SampleRate)
}

// Samples decodes the PCM bytes into interleaved samples.
func (r *Recording) Samples() []int16 {
	out := make([]int16, len(r.PCM)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(r.PCM[2*i:]))
	}
	return out
}

// Empty reports whether the recording holds no audio.
func (r *Recording) Empty() bool {
	return r == nil || len(r.PCM) == 0
}
