package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/kcx/pkg/kcx/store"
	"github.com/cognicore/kcx/pkg/kcx/store/memstore"
)

type failingStore struct {
	*memstore.Store
}

func (f failingStore) DeleteRun(ctx context.Context, id string) error {
	return errors.New("disk full")
}

func seed(t *testing.T, st store.Store) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	runs := []store.Run{
		{ID: "a1", URL: "https://youtube.com/watch?v=a", CreatedAt: base},
		{ID: "a2", URL: "https://youtube.com/watch?v=a", CreatedAt: base.Add(time.Hour)},
		{ID: "a3", URL: "https://youtube.com/watch?v=a", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "b1", URL: "https://youtube.com/watch?v=b", CreatedAt: base},
	}
	for _, r := range runs {
		if err := st.SaveRun(context.Background(), r); err != nil {
			t.Fatalf("SaveRun %s: %v", r.ID, err)
		}
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	seed(t, st)

	res, err := (&Pruner{Store: st, Keep: 1}).Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if res.Processed != 4 || res.Removed != 2 || res.Errors != 0 {
		t.Fatalf("Unexpected result %+v", res)
	}
	if len(res.Removable) != 2 || res.Removable[0] != "a1" || res.Removable[1] != "a2" {
		t.Errorf("Expected a1 and a2 removed, got %v", res.Removable)
	}

	remaining, _ := st.AllRuns(ctx)
	if len(remaining) != 2 {
		t.Fatalf("Expected 2 runs left, got %d", len(remaining))
	}
	if _, err := st.GetRun(ctx, "a3"); err != nil {
		t.Errorf("Newest run should survive: %v", err)
	}
}

func TestPruneDryRun(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	seed(t, st)

	res, err := (&Pruner{Store: st, Keep: 2, DryRun: true}).Prune(ctx)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if res.Removed != 0 || len(res.Removable) != 1 || res.Removable[0] != "a1" {
		t.Errorf("Unexpected dry run result %+v", res)
	}
	remaining, _ := st.AllRuns(ctx)
	if len(remaining) != 4 {
		t.Errorf("Dry run must not delete, %d runs left", len(remaining))
	}
}

func TestPruneCountsErrors(t *testing.T) {
	st := memstore.New()
	seed(t, st)

	res, err := (&Pruner{Store: failingStore{st}, Keep: 1}).Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if res.Errors != 2 || res.Removed != 0 {
		t.Errorf("Expected 2 errors, got %+v", res)
	}
}

func TestPruneInvalidConfig(t *testing.T) {
	if _, err := (&Pruner{Keep: 1}).Prune(context.Background()); err == nil {
		t.Error("Expected error without a store")
	}
	if _, err := (&Pruner{Store: memstore.New()}).Prune(context.Background()); err == nil {
		t.Error("Expected error for Keep < 1")
	}
}
