package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// File names inside the data directory.
const (
	HRFile   = "hr_results.json"
	TechFile = "tech_results.json"
)

// ErrLocked is returned when the lock file could not be acquired in time.
var ErrLocked = errors.New("results file is locked")

// Store is a JSON file mapping candidate IDs to their entries. Every save
// rewrites the whole file under a lock.
type Store struct {
	fs   afero.Fs
	path string

	// LockTimeout bounds how long Save waits for the lock file.
	LockTimeout time.Duration
	// StaleAfter is the age at which an existing lock file is broken.
	StaleAfter time.Duration

	mu  sync.Mutex
	now func() time.Time
}

// NewStore returns a Store for the file at path on fs.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{
		fs:          fs,
		path:        path,
		LockTimeout: 5 * time.Second,
		StaleAfter:  30 * time.Second,
		now:         time.Now,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Save appends entries for candidate id.
func (s *Store) Save(ctx context.Context, id string, entries ...Entry) error {
	if id == "" {
		return errors.New("candidate id is required")
	}
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unlock, err := s.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	data[id] = append(data[id], entries...)
	return s.write(data)
}

// LoadAll returns every candidate's entries. A missing file is empty.
func (s *Store) LoadAll(ctx context.Context) (map[string][]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Load returns the entries of one candidate.
func (s *Store) Load(ctx context.Context, id string) ([]Entry, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return all[id], nil
}

// Candidates returns the stored candidate IDs in sorted order.
func (s *Store) Candidates(ctx context.Context) ([]string, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) read() (map[string][]Entry, error) {
	raw, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return decode(raw)
}

// decode accepts the keyed object form and the older flat array, which is
// grouped by candidate_id.
func decode(raw []byte) (map[string][]Entry, error) {
	trimmed := trimLeftSpace(raw)
	if len(trimmed) == 0 {
		return map[string][]Entry{}, nil
	}

	if trimmed[0] == '[' {
		var flat []Entry
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		out := map[string][]Entry{}
		for _, e := range flat {
			out[e.CandidateID] = append(out[e.CandidateID], e)
		}
		return out, nil
	}

	out := map[string][]Entry{}
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return out, nil
}

func trimLeftSpace(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\n' || b[0] == '\r' || b[0] == '\t') {
		b = b[1:]
	}
	return b
}

func (s *Store) write(data map[string][]Entry) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
