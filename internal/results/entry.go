// Package results persists per-candidate interview results as JSON files.
package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Round names stored on entries.
const (
	RoundHR        = "hr"
	RoundTechnical = "technical"
)

// Entry is one scored question.
type Entry struct {
	Timestamp   Timestamp `json:"timestamp"`
	CandidateID string    `json:"candidate_id"`
	Domain      string    `json:"domain"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Score       int       `json:"score"`
	Feedback    string    `json:"feedback"`
	Confidence  string    `json:"confidence,omitempty"`
	Round       string    `json:"round,omitempty"`
}

// Timestamp is written as RFC 3339. Reads also accept ISO-8601 without an
// offset, taken as local time, and an empty or null value.
type Timestamp struct {
	time.Time
}

// naiveISO is ISO-8601 without a zone, with optional fractional seconds.
const naiveISO = "2006-01-02T15:04:05.999999999"

func At(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*t = Timestamp{Time: parsed}
		return nil
	}
	parsed, err := time.ParseInLocation(naiveISO, s, time.Local)
	if err != nil {
		return fmt.Errorf("timestamp %q is not ISO-8601", s)
	}
	*t = Timestamp{Time: parsed}
	return nil
}
