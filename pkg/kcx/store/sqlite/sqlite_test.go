package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

const video = "https://youtube.com/watch?v=a"

func openTest(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func component(token, url string, offset int, chain ...string) taxonomy.Component {
	return taxonomy.Component{
		Token:          token,
		Value:          token,
		TimeStamp:      url + "&t=" + strconv.Itoa(offset),
		Classification: taxonomy.Chain(chain),
	}
}

func TestSaveAndGetRun(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run := store.Run{
		ID:        "01HRUN0000000000000000000A",
		URL:       video,
		Title:     "C++ basics",
		Language:  "cpp",
		Fragments: 10,
		Dropped:   2,
		CreatedAt: created,
		Components: []taxonomy.Component{
			component("For", video, 3, "Statement", "Iteration", "For"),
			component("If", video, 7, "Statement", "Condition", "If"),
		},
	}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Title != run.Title || got.Language != "cpp" || got.Dropped != 2 {
		t.Errorf("Run fields mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt mismatch: got %s, want %s", got.CreatedAt, created)
	}
	if len(got.Components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(got.Components))
	}
	if got.Components[0].Token != "For" || got.Components[1].Token != "If" {
		t.Errorf("Component order not preserved: %+v", got.Components)
	}
	if got.Components[1].Classification.String() != "Statement → Condition → If" {
		t.Errorf("Classification mismatch: %s", got.Components[1].Classification)
	}
}

func TestSaveRunReplacesComponents(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	run := store.Run{ID: "r1", URL: video, CreatedAt: time.Now(), Components: []taxonomy.Component{
		component("For", video, 1, "Statement", "Iteration", "For"),
		component("While", video, 2, "Statement", "Iteration", "While"),
	}}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	run.Components = run.Components[:1]
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun (update): %v", err)
	}

	got, err := st.GetRun(ctx, "r1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if len(got.Components) != 1 {
		t.Errorf("Expected components to be replaced, got %d", len(got.Components))
	}
}

func TestGetRunNotFound(t *testing.T) {
	st := openTest(t)
	if _, err := st.GetRun(context.Background(), "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveRunRequiresID(t *testing.T) {
	st := openTest(t)
	if err := st.SaveRun(context.Background(), store.Run{URL: video}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestListAndQueryRuns(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	other := "https://youtube.com/watch?v=b"
	runs := []store.Run{
		{ID: "r1", URL: video, Title: "first", CreatedAt: base, Components: []taxonomy.Component{
			component("For", video, 40, "Statement", "Iteration", "For"),
		}},
		{ID: "r2", URL: other, Title: "second", CreatedAt: base.Add(time.Hour), Components: []taxonomy.Component{
			component("If", other, 1, "Statement", "Condition", "If"),
			component("For", other, 12, "Statement", "Iteration", "For"),
		}},
		{ID: "r3", URL: video, Title: "third", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range runs {
		if err := st.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun %s: %v", r.ID, err)
		}
	}

	list, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(list) != 2 || list[0].ID != "r3" || list[1].ID != "r2" {
		t.Fatalf("Expected newest first [r3 r2], got %+v", list)
	}
	if list[1].Components != 2 {
		t.Errorf("Expected 2 components in r2 summary, got %d", list[1].Components)
	}

	byURL, err := st.GetRunsByURL(ctx, video)
	if err != nil {
		t.Fatalf("GetRunsByURL: %v", err)
	}
	if len(byURL) != 2 || byURL[0].ID != "r1" || byURL[1].ID != "r3" {
		t.Errorf("Unexpected runs by URL: %+v", byURL)
	}

	all, err := st.AllRuns(ctx)
	if err != nil {
		t.Fatalf("AllRuns: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(all))
	}

	sightings, err := st.FirstSightings(ctx, "For", 10)
	if err != nil {
		t.Fatalf("FirstSightings: %v", err)
	}
	if len(sightings) != 2 {
		t.Fatalf("Expected 2 sightings, got %d", len(sightings))
	}
	if sightings[0].RunID != "r2" || sightings[0].Offset != 12 {
		t.Errorf("Expected earliest sighting in r2 at 12, got %+v", sightings[0])
	}
	if sightings[1].Offset != 40 {
		t.Errorf("Expected second sighting at 40, got %d", sightings[1].Offset)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.SaveRun(ctx, store.Run{ID: "r1", URL: video, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if _, err := st.GetRun(ctx, "r1"); err != nil {
		t.Fatalf("GetRun after reopen: %v", err)
	}
}

func TestDeleteRun(t *testing.T) {
	ctx := context.Background()
	st := openTest(t)

	run := store.Run{ID: "r1", URL: video, CreatedAt: time.Now(), Components: []taxonomy.Component{
		component("For", video, 3, "Statement", "Iteration", "For"),
	}}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	if err := st.DeleteRun(ctx, "r1"); err != nil {
		t.Fatalf("DeleteRun: %v", err)
	}
	if _, err := st.GetRun(ctx, "r1"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	sightings, err := st.FirstSightings(ctx, "For", 10)
	if err != nil {
		t.Fatalf("FirstSightings: %v", err)
	}
	if len(sightings) != 0 {
		t.Errorf("Expected components to be deleted with the run, got %d sightings", len(sightings))
	}

	if err := st.DeleteRun(ctx, "r1"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}
