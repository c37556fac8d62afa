package results

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const lockRetryInterval = 25 * time.Millisecond

// lock takes the advisory <file>.lock, breaking it when older than
// StaleAfter. The returned func releases it.
func (s *Store) lock(ctx context.Context) (func(), error) {
	lockPath := s.path + ".lock"
	if dir := filepath.Dir(lockPath); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create results dir: %w", err)
		}
	}

	deadline := s.now().Add(s.LockTimeout)
	for {
		f, err := s.fs.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			_ = f.Close()
			return func() { _ = s.fs.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create lock %s: %w", lockPath, err)
		}

		if info, statErr := s.fs.Stat(lockPath); statErr == nil && s.now().Sub(info.ModTime()) > s.StaleAfter {
			_ = s.fs.Remove(lockPath)
			continue
		}

		if !s.now().Before(deadline) {
			return nil, ErrLocked
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}
