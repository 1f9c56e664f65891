//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "periplus.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	run := sampleRun("run-1")
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.GetRun(ctx, "run-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Result.BestCost != run.Result.BestCost || got.Problem.Name != run.Problem.Name {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// Upsert overwrites the payload.
	run.Result.BestCost = 5
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, _, err = store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if got.Result.BestCost != 5 {
		t.Fatalf("upsert did not overwrite: %d", got.Result.BestCost)
	}
}

func TestSQLiteStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	older := sampleRun("run-a")
	older.CreatedAtUTC = "2026-08-05T10:00:00Z"
	newer := sampleRun("run-b")
	newer.CreatedAtUTC = "2026-08-06T10:00:00Z"
	if err := store.SaveRun(ctx, older); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveRun(ctx, newer); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-b" {
		t.Fatalf("listing order wrong: %+v", runs)
	}

	if err := store.DeleteRun(ctx, "run-a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	runs, err = store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("run survived deletion: %+v", runs)
	}
}
