package results

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Pair holds the HR and technical stores of one data directory.
type Pair struct {
	HR   *Store
	Tech *Store
}

// OpenPair returns the stores under dir.
func OpenPair(fs afero.Fs, dir string) *Pair {
	return &Pair{
		HR:   NewStore(fs, filepath.Join(dir, HRFile)),
		Tech: NewStore(fs, filepath.Join(dir, TechFile)),
	}
}

// Save writes both rounds for candidate id. The HR store is written first;
// a failure there skips the technical store.
func (p *Pair) Save(ctx context.Context, id string, hr, tech []Entry) error {
	if err := p.HR.Save(ctx, id, hr...); err != nil {
		return err
	}
	return p.Tech.Save(ctx, id, tech...)
}

// Load returns both rounds for candidate id.
func (p *Pair) Load(ctx context.Context, id string) (hr, tech []Entry, err error) {
	if hr, err = p.HR.Load(ctx, id); err != nil {
		return nil, nil, err
	}
	if tech, err = p.Tech.Load(ctx, id); err != nil {
		return nil, nil, err
	}
	return hr, tech, nil
}

// Candidates returns the union of candidate IDs across both stores, sorted.
func (p *Pair) Candidates(ctx context.Context) ([]string, error) {
	hr, err := p.HR.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	tech, err := p.Tech.Candidates(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(hr)+len(tech))
	var out []string
	for _, id := range append(hr, tech...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}
