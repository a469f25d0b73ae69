// Package kcx extracts knowledge components from programming tutorial
// videos: the first time each language concept appears on screen.
package kcx

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/kcx/pkg/kcx/analytics"
	"github.com/cognicore/kcx/pkg/kcx/export"
	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/maintenance"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/source"
	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/stream"
)

// Engine is the main facade: it runs analyses, persists them and reports
// across them.
type Engine struct {
	store       store.Store
	coordinator *stream.Coordinator
	titles      TitleFetcher
	outputDir   string
	buffer      int
	logger      *slog.Logger
	now         func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// TitleFetcher looks up a video title. *metadata.TitleFetcher satisfies it.
type TitleFetcher interface {
	FetchTitle(ctx context.Context, url string) (string, error)
}

// Options configures an Engine
type Options struct {
	// Store persists runs; nil disables persistence and reporting.
	Store       store.Store
	Coordinator *stream.Coordinator
	// Titles fills in missing video titles; nil leaves them empty.
	Titles TitleFetcher
	// OutputDir receives one JSON document per run; empty disables export.
	OutputDir string
	// Buffer is the capacity of the fragment channel.
	Buffer int
	Logger *slog.Logger
	Now    func() time.Time
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	e := &Engine{
		store:       opts.Store,
		coordinator: opts.Coordinator,
		titles:      opts.Titles,
		outputDir:   opts.OutputDir,
		buffer:      opts.Buffer,
		logger:      opts.Logger,
		now:         opts.Now,
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.coordinator == nil {
		e.coordinator = stream.NewCoordinator(stream.Options{Logger: e.logger})
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Report is what one analysis produced.
type Report struct {
	RunID  string
	Result stream.Result
	// Path is the exported document, empty when export is disabled.
	Path string
}

// Analyze consumes in for video, then persists and exports the result. A
// stream that closes without End is still saved; the returned error then
// wraps ErrStreamClosed.
func (e *Engine) Analyze(ctx context.Context, video metadata.Video, in <-chan stream.Envelope) (Report, error) {
	video = e.resolveTitle(ctx, video)

	res, runErr := e.coordinator.Run(ctx, video, in)
	if runErr != nil && !errors.Is(runErr, internalerr.ErrStreamClosed) {
		return Report{}, runErr
	}

	rep := Report{RunID: e.newID(), Result: res}
	if err := e.persist(ctx, rep); err != nil {
		return rep, errors.Join(runErr, err)
	}
	if e.outputDir != "" {
		path, err := export.Save(e.outputDir, export.FromResult(res))
		if err != nil {
			return rep, errors.Join(runErr, fmt.Errorf("export: %w", err))
		}
		rep.Path = path
	}

	e.logger.Info("analysis complete",
		slog.String("run", rep.RunID),
		slog.String("url", video.URL),
		slog.String("language", res.Language.String()),
		slog.Int("components", res.Registry.Len()),
		slog.Int("dropped", res.Dropped))
	return rep, runErr
}

// AnalyzeReader replays recorded fragments from r (see package source) on a
// producer goroutine and analyzes them.
func (e *Engine) AnalyzeReader(ctx context.Context, video metadata.Video, r io.Reader) (Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in := make(chan stream.Envelope, e.buffer)
	produced := make(chan error, 1)
	go func() {
		produced <- source.Produce(ctx, r, in, e.logger)
	}()

	rep, err := e.Analyze(ctx, video, in)
	// unblock the producer if the consumer stopped early
	cancel()
	if perr := <-produced; perr != nil && !errors.Is(perr, context.Canceled) {
		return rep, errors.Join(err, fmt.Errorf("read fragments: %w", perr))
	}
	return rep, err
}

func (e *Engine) resolveTitle(ctx context.Context, video metadata.Video) metadata.Video {
	if video.Title != "" || e.titles == nil || video.URL == "" {
		return video
	}
	title, err := e.titles.FetchTitle(ctx, video.URL)
	if err != nil {
		e.logger.Warn("title lookup failed",
			slog.String("url", video.URL),
			slog.String("error", err.Error()))
		return video
	}
	video.Title = title
	return video
}

func (e *Engine) persist(ctx context.Context, rep Report) error {
	if e.store == nil {
		return nil
	}
	res := rep.Result
	run := store.Run{
		ID:        rep.RunID,
		URL:       res.Video.URL,
		Title:     res.Video.Title,
		Language:  res.Language.Tag(),
		Fragments: res.Fragments,
		Dropped:   res.Dropped,
		CreatedAt: e.now(),
	}
	if res.Registry != nil {
		run.Components = res.Registry.Components()
	}
	if err := e.store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

func (e *Engine) newID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(e.now()), e.entropy).String()
}

// Runs lists the most recent stored runs.
func (e *Engine) Runs(ctx context.Context, limit int) ([]store.RunSummary, error) {
	if e.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return e.store.ListRuns(ctx, limit)
}

// Run loads one stored run.
func (e *Engine) Run(ctx context.Context, id string) (store.Run, error) {
	if e.store == nil {
		return store.Run{}, internalerr.ErrStoreUnavailable
	}
	return e.store.GetRun(ctx, id)
}

// Sightings lists where token was first shown, earliest first.
func (e *Engine) Sightings(ctx context.Context, token string, limit int) ([]store.Sighting, error) {
	if e.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return e.store.FirstSightings(ctx, token, limit)
}

// Stats aggregates every stored run.
func (e *Engine) Stats(ctx context.Context) (analytics.Stats, error) {
	if e.store == nil {
		return analytics.Stats{}, internalerr.ErrStoreUnavailable
	}
	runs, err := e.store.AllRuns(ctx)
	if err != nil {
		return analytics.Stats{}, err
	}
	a := analytics.NewAnalyzer()
	for _, r := range runs {
		a.Process(r.Language, r.Components)
	}
	return a.Snapshot(), nil
}

// Prune keeps the newest keep runs of every video and deletes the rest.
func (e *Engine) Prune(ctx context.Context, keep int, dryRun bool) (maintenance.Result, error) {
	if e.store == nil {
		return maintenance.Result{}, internalerr.ErrStoreUnavailable
	}
	p := &maintenance.Pruner{Store: e.store, Keep: keep, DryRun: dryRun, Logger: e.logger}
	return p.Prune(ctx)
}
