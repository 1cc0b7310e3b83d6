package snapshot

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/store"
)

func newTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(store.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecord_SumsClusterCosts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	clusters := mock.Clusters(2)
	want := 0.0
	for _, c := range clusters {
		if err := db.InsertCluster(ctx, c); err != nil {
			t.Fatalf("InsertCluster returned error: %v", err)
		}
		want += c.TotalCost
	}

	rec := NewRecorder(db)
	if err := rec.Record(ctx); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	snaps, err := db.GetSnapshots(ctx, 1)
	if err != nil {
		t.Fatalf("GetSnapshots returned error: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if math.Abs(snaps[0].TotalMonthlyCost-want) > 1e-6 {
		t.Errorf("snapshot cost = %v, want %v", snaps[0].TotalMonthlyCost, want)
	}
}

func TestRecord_UpsertsSameDay(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rec := NewRecorder(db)

	if err := rec.Record(ctx); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := db.InsertCluster(ctx, mock.Clusters(1)[0]); err != nil {
		t.Fatalf("InsertCluster returned error: %v", err)
	}
	if err := rec.Record(ctx); err != nil {
		t.Fatalf("second Record returned error: %v", err)
	}

	snaps, err := db.GetSnapshots(ctx, 1)
	if err != nil {
		t.Fatalf("GetSnapshots returned error: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots for one day, want 1", len(snaps))
	}
	if snaps[0].TotalMonthlyCost == 0 {
		t.Error("second Record did not overwrite the empty snapshot")
	}
}
