package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// Store is an in-memory implementation of store.Store for tests and
// one-off analyses that should not touch disk.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

var _ store.Store = (*Store)(nil)

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun inserts or replaces a run, keyed by ID.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" || r.URL == "" {
		return fmt.Errorf("save run: id and url required: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r)
	return nil
}

// GetRun returns a run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r), nil
}

// GetRunsByURL returns every run of a video, oldest first.
func (s *Store) GetRunsByURL(ctx context.Context, url string) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Run
	for _, r := range s.sorted() {
		if r.URL == url {
			out = append(out, copyRun(r))
		}
	}
	return out, nil
}

// AllRuns returns every run, oldest first.
func (s *Store) AllRuns(ctx context.Context) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.sorted()
	out := make([]store.Run, len(runs))
	for i, r := range runs {
		out[i] = copyRun(r)
	}
	return out, nil
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	delete(s.runs, id)
	return nil
}

// ListRuns returns the newest runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.sorted()
	var out []store.RunSummary
	for i := len(runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, runs[i].Summary())
	}
	return out, nil
}

// FirstSightings lists the runs in which token appeared, earliest offset first.
func (s *Store) FirstSightings(ctx context.Context, token string, limit int) ([]store.Sighting, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Sighting
	for _, r := range s.sorted() {
		for _, c := range r.Components {
			if c.Token != token {
				continue
			}
			offset, _ := metadata.OffsetFromTimestamp(c.TimeStamp)
			out = append(out, store.Sighting{
				RunID:     r.ID,
				URL:       r.URL,
				Title:     r.Title,
				Offset:    offset,
				TimeStamp: c.TimeStamp,
			})
			break
		}
	}
	// stable: ties keep run order
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sorted returns runs by creation time then ID. Callers hold the lock.
func (s *Store) sorted() []store.Run {
	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.Before(runs[j].CreatedAt)
		}
		return runs[i].ID < runs[j].ID
	})
	return runs
}

func copyRun(r store.Run) store.Run {
	components := make([]taxonomy.Component, len(r.Components))
	for i, c := range r.Components {
		c.Classification = append(taxonomy.Chain(nil), c.Classification...)
		components[i] = c
	}
	r.Components = components
	return r
}
