package voice

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const wavHeaderSize = 44

// WAV encodes the recording as a PCM16 RIFF/WAVE file.
func (r *Recording) WAV() []byte {
	channels := r.Channels
	if channels <= 0 {
		channels = 1
	}
	blockAlign := channels * 2
	byteRate := r.SampleRate * blockAlign

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(r.PCM)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(r.PCM)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16)) // PCM chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))  // PCM format
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(r.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(16)) // bits per sample

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(r.PCM)))
	buf.Write(r.PCM)

	return buf.Bytes()
}

// WAVFileName returns the file name used for a recording saved at t.
func WAVFileName(t time.Time) string {
	return "recording_" + t.Format("20060102_150405") + ".wav"
}

// SaveWAV writes rec as a WAV file under dir and returns its path.
func SaveWAV(fs afero.Fs, dir string, rec *Recording, now time.Time) (string, error) {
	if rec.Empty() {
		return "", ErrNoData
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create recordings dir: %w", err)
	}
	path := filepath.Join(dir, WAVFileName(now))
	if err := afero.WriteFile(fs, path, rec.WAV(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
