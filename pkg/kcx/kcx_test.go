package kcx

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cognicore/kcx/pkg/kcx/export"
	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/lang"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/store/memstore"
	"github.com/cognicore/kcx/pkg/kcx/stream"
)

type staticTitle string

func (s staticTitle) FetchTitle(ctx context.Context, url string) (string, error) {
	if s == "" {
		return "", errors.New("no title")
	}
	return string(s), nil
}

func newEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	if opts.Store == nil {
		opts.Store = memstore.New()
	}
	if opts.Coordinator == nil {
		opts.Coordinator = stream.NewCoordinator(stream.Options{Classifier: lang.NewClassifier(nil, 0, nil)})
	}
	opts.Now = func() time.Time { return time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC) }
	e := New(opts)
	t.Cleanup(func() { e.Close() })
	return e
}

const fragments = `{"offset": 1, "text": "#include <iostream>"}
{"offset": 4, "text": "int main() {"}
{"offset": 9, "text": "  for (int i = 0; i < 10; i++) cout << i;"}
{"offset": 20, "end": true}
`

func TestAnalyzeReaderPersistsAndExports(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	engine := newEngine(t, Options{OutputDir: dir, Titles: staticTitle("C++ loops")})

	rep, err := engine.AnalyzeReader(ctx, metadata.Video{URL: "https://youtube.com/watch?v=loops"}, strings.NewReader(fragments))
	if err != nil {
		t.Fatalf("AnalyzeReader: %v", err)
	}
	if rep.Result.Language != lang.Cpp {
		t.Fatalf("Expected Cpp from fetched title, got %s", rep.Result.Language)
	}
	if rep.Result.Video.Title != "C++ loops" {
		t.Errorf("Title should be filled in, got %q", rep.Result.Video.Title)
	}

	reg := rep.Result.Registry
	for _, tok := range []string{`Preprocessor("#include")`, "Int", "FunctionCall", "For", "Less", "PostfixIncrement"} {
		if !reg.Has(tok) {
			t.Errorf("Expected component %s", tok)
		}
	}
	if reg.Has("LeftShift") {
		t.Error("cout << should not be a shift")
	}
	first, _ := reg.Get("Int")
	if first.TimeStamp != "https://youtube.com/watch?v=loops&t=4" {
		t.Errorf("Int should keep its first timestamp, got %s", first.TimeStamp)
	}

	if rep.Path != filepath.Join(dir, "cpp-loops.json") {
		t.Errorf("Unexpected export path %s", rep.Path)
	}
	doc, err := export.Load(rep.Path)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	if len(doc.KnowledgeComponents) != reg.Len() {
		t.Errorf("Export has %d components, registry %d", len(doc.KnowledgeComponents), reg.Len())
	}

	run, err := engine.Run(ctx, rep.RunID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Language != "cpp" || len(run.Components) != reg.Len() {
		t.Errorf("Stored run mismatch: %+v", run)
	}
}

func TestAnalyzeClosedStreamStillSaved(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, Options{})

	in := make(chan stream.Envelope, 2)
	in <- stream.FragmentAt("while (x) {}", 3)
	close(in)

	rep, err := engine.Analyze(ctx, metadata.Video{Title: "Java loops", URL: "https://youtube.com/watch?v=j"}, in)
	if !errors.Is(err, internalerr.ErrStreamClosed) {
		t.Fatalf("Expected ErrStreamClosed, got %v", err)
	}
	if _, err := engine.Run(ctx, rep.RunID); err != nil {
		t.Fatalf("Partial run should be stored: %v", err)
	}
}

func TestAnalyzeTitleLookupFailure(t *testing.T) {
	engine := newEngine(t, Options{Titles: staticTitle("")})

	rep, err := engine.AnalyzeReader(context.Background(), metadata.Video{URL: "https://youtube.com/watch?v=z"}, strings.NewReader(fragments))
	if err != nil {
		t.Fatalf("AnalyzeReader: %v", err)
	}
	if rep.Result.Resolved {
		t.Error("Without a title or model the language stays unresolved")
	}
	if rep.Result.Dropped != 3 {
		t.Errorf("Expected 3 dropped fragments, got %d", rep.Result.Dropped)
	}
}

func TestStatsAndSightings(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, Options{})

	videos := []metadata.Video{
		{Title: "C++ part 1", URL: "https://youtube.com/watch?v=1"},
		{Title: "Java part 1", URL: "https://youtube.com/watch?v=2"},
	}
	for _, v := range videos {
		if _, err := engine.AnalyzeReader(ctx, v, strings.NewReader(fragments)); err != nil {
			t.Fatalf("AnalyzeReader %s: %v", v.Title, err)
		}
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalRuns != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.TotalRuns)
	}
	if stats.ConceptDF["For"] != 2 {
		t.Errorf("Expected For in 2 runs, got %d", stats.ConceptDF["For"])
	}

	sightings, err := engine.Sightings(ctx, "For", 10)
	if err != nil {
		t.Fatalf("Sightings: %v", err)
	}
	if len(sightings) != 2 || sightings[0].Offset != 9 {
		t.Errorf("Unexpected sightings: %+v", sightings)
	}

	runs, err := engine.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 runs listed, got %d", len(runs))
	}
}

func TestNoStore(t *testing.T) {
	engine := New(Options{})
	defer engine.Close()
	if _, err := engine.Stats(context.Background()); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Fatalf("Expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := engine.Prune(context.Background(), 1, false); !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Fatalf("Expected ErrStoreUnavailable from Prune, got %v", err)
	}
}

func TestPruneKeepsLatestRun(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, Options{})
	video := metadata.Video{Title: "C++ part 1", URL: "https://youtube.com/watch?v=1"}

	var last Report
	for i := 0; i < 3; i++ {
		rep, err := engine.AnalyzeReader(ctx, video, strings.NewReader(fragments))
		if err != nil {
			t.Fatalf("AnalyzeReader: %v", err)
		}
		last = rep
	}

	res, err := engine.Prune(ctx, 1, false)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if res.Removed != 2 {
		t.Errorf("Expected 2 runs removed, got %+v", res)
	}
	runs, _ := engine.Runs(ctx, 10)
	if len(runs) != 1 || runs[0].ID != last.RunID {
		t.Errorf("Expected only %s to remain, got %+v", last.RunID, runs)
	}
}
