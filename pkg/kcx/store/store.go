// Package store persists analysis runs so results can be compared across
// videos.
package store

import (
	"context"
	"time"

	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// Store is the main interface for persisting and querying runs
type Store interface {
	Close() error

	// Runs
	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, error)
	GetRunsByURL(ctx context.Context, url string) ([]Run, error)
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	AllRuns(ctx context.Context) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error

	// Concepts
	FirstSightings(ctx context.Context, token string, limit int) ([]Sighting, error)
}

// Run is one stored analysis
type Run struct {
	ID         string
	URL        string
	Title      string
	Language   string // lang tag, empty when unresolved
	Fragments  int
	Dropped    int
	CreatedAt  time.Time
	Components []taxonomy.Component
}

// RunSummary is a run without its components
type RunSummary struct {
	ID         string
	URL        string
	Title      string
	Language   string
	Components int
	CreatedAt  time.Time
}

// Sighting is where a concept first appeared in one run
type Sighting struct {
	RunID     string
	URL       string
	Title     string
	Offset    int
	TimeStamp string
}

// Summary reduces r to a RunSummary.
func (r Run) Summary() RunSummary {
	return RunSummary{
		ID:         r.ID,
		URL:        r.URL,
		Title:      r.Title,
		Language:   r.Language,
		Components: len(r.Components),
		CreatedAt:  r.CreatedAt,
	}
}
