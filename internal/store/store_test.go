package store

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/kostscope/kostscope/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testCluster(id string) model.ClusterInfo {
	return model.ClusterInfo{
		ID:       id,
		Name:     "production-cluster-1",
		Provider: "AWS",
		Region:   "us-east-1",
		Nodes: []model.ClusterNode{
			{
				ID: "n1", Name: "node-1",
				CPUCapacity: 2, MemoryCapacity: 4,
				CPUUsage: 45.5, MemoryUsage: 60.2,
				CostPerHour: 0.0416, NodeType: "t3.medium",
				Zone: "us-east-1a", Status: "Ready",
			},
			{
				ID: "n2", Name: "node-2",
				CPUCapacity: 4, MemoryCapacity: 16,
				CPUUsage: 30.0, MemoryUsage: 55.0,
				CostPerHour: 0.1664, NodeType: "t3.xlarge",
				Zone: "us-east-1b", Status: "Ready",
			},
		},
		TotalCost: (0.0416 + 0.1664) * 24 * 30,
		CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestClusters_InsertGetList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := testCluster("c1")
	if err := db.InsertCluster(ctx, want); err != nil {
		t.Fatalf("InsertCluster returned error: %v", err)
	}

	got, err := db.GetCluster(ctx, "c1")
	if err != nil {
		t.Fatalf("GetCluster returned error: %v", err)
	}
	if got.Name != want.Name || got.Provider != want.Provider || got.Region != want.Region {
		t.Errorf("GetCluster = %+v, want %+v", got, want)
	}
	if len(got.Nodes) != 2 {
		t.Fatalf("GetCluster nodes = %d, want 2", len(got.Nodes))
	}
	if got.Nodes[0].NodeType != "t3.medium" || got.Nodes[1].NodeType != "t3.xlarge" {
		t.Errorf("node order not preserved: %q, %q", got.Nodes[0].NodeType, got.Nodes[1].NodeType)
	}
	if math.Abs(got.TotalCost-want.TotalCost) > 1e-9 {
		t.Errorf("TotalCost = %v, want %v", got.TotalCost, want.TotalCost)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}

	clusters, err := db.ListClusters(ctx)
	if err != nil {
		t.Fatalf("ListClusters returned error: %v", err)
	}
	if len(clusters) != 1 {
		t.Errorf("ListClusters = %d clusters, want 1", len(clusters))
	}

	n, err := db.CountClusters(ctx)
	if err != nil {
		t.Fatalf("CountClusters returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("CountClusters = %d, want 1", n)
	}
}

func TestGetCluster_Unknown_ReturnsErrNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetCluster(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetCluster error = %v, want ErrNotFound", err)
	}
}

func TestAlerts_ResolveLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alert := model.AnomalyAlert{
		ID:          "a1",
		ClusterID:   "c1",
		AlertType:   "cost_spike",
		Description: "Unusual cost pattern detected in production-cluster-1",
		Severity:    "high",
		DetectedAt:  time.Date(2026, 8, 21, 9, 30, 0, 0, time.UTC),
		Resolved:    false,
	}
	if err := db.InsertAlert(ctx, alert); err != nil {
		t.Fatalf("InsertAlert returned error: %v", err)
	}

	matched, err := db.ResolveAlert(ctx, "a1")
	if err != nil {
		t.Fatalf("ResolveAlert returned error: %v", err)
	}
	if !matched {
		t.Fatal("ResolveAlert matched = false, want true")
	}

	alerts, err := db.ListAlerts(ctx)
	if err != nil {
		t.Fatalf("ListAlerts returned error: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("ListAlerts = %d alerts, want 1", len(alerts))
	}
	if !alerts[0].Resolved {
		t.Error("alert.Resolved = false after resolve, want true")
	}

	// Resolving twice is idempotent, not an error.
	matched, err = db.ResolveAlert(ctx, "a1")
	if err != nil {
		t.Fatalf("second ResolveAlert returned error: %v", err)
	}
	if !matched {
		t.Error("second ResolveAlert matched = false, want true")
	}
}

func TestResolveAlert_Unknown_NotMatched(t *testing.T) {
	db := newTestDB(t)

	matched, err := db.ResolveAlert(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ResolveAlert returned error: %v", err)
	}
	if matched {
		t.Error("ResolveAlert matched = true for unknown id, want false")
	}
}

func TestAnalyses_InsertList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := model.CostAnalysis{
		ID:               "an1",
		ClusterID:        "c1",
		AnalysisType:     "comprehensive",
		Recommendations:  []string{"1. Enable autoscaling", "2. Review requests"},
		PotentialSavings: 54.0,
		ConfidenceScore:  91.2,
		AIInsights:       "AI analysis unavailable - LLM integration not configured",
		CreatedAt:        time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC),
	}
	if err := db.InsertAnalysis(ctx, a); err != nil {
		t.Fatalf("InsertAnalysis returned error: %v", err)
	}

	analyses, err := db.ListAnalyses(ctx)
	if err != nil {
		t.Fatalf("ListAnalyses returned error: %v", err)
	}
	if len(analyses) != 1 {
		t.Fatalf("ListAnalyses = %d analyses, want 1", len(analyses))
	}
	got := analyses[0]
	if got.PotentialSavings != 54.0 {
		t.Errorf("PotentialSavings = %v, want 54.0", got.PotentialSavings)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("Recommendations = %d entries, want 2", len(got.Recommendations))
	}
	if got.AIInsights != a.AIInsights {
		t.Errorf("AIInsights = %q, want %q", got.AIInsights, a.AIInsights)
	}
}

func TestSnapshots_UpsertAndWindow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if err := db.RecordDailySnapshot(ctx, 100.0, now); err != nil {
		t.Fatalf("RecordDailySnapshot returned error: %v", err)
	}
	// Same day again: upsert, not duplicate.
	if err := db.RecordDailySnapshot(ctx, 150.0, now); err != nil {
		t.Fatalf("second RecordDailySnapshot returned error: %v", err)
	}
	if err := db.RecordDailySnapshot(ctx, 90.0, now.AddDate(0, 0, -1)); err != nil {
		t.Fatalf("yesterday RecordDailySnapshot returned error: %v", err)
	}

	snaps, err := db.GetSnapshots(ctx, 30)
	if err != nil {
		t.Fatalf("GetSnapshots returned error: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("GetSnapshots = %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Date >= snaps[1].Date {
		t.Errorf("snapshots not ascending: %q then %q", snaps[0].Date, snaps[1].Date)
	}
	if snaps[1].TotalMonthlyCost != 150.0 {
		t.Errorf("today's snapshot = %v, want upserted 150.0", snaps[1].TotalMonthlyCost)
	}
}

func TestGetSnapshots_WindowIsExactlyNDays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	// Today, the oldest day still inside a 30-day window, and one day beyond it.
	if err := db.RecordDailySnapshot(ctx, 100.0, now); err != nil {
		t.Fatalf("RecordDailySnapshot returned error: %v", err)
	}
	if err := db.RecordDailySnapshot(ctx, 90.0, now.AddDate(0, 0, -29)); err != nil {
		t.Fatalf("RecordDailySnapshot returned error: %v", err)
	}
	if err := db.RecordDailySnapshot(ctx, 80.0, now.AddDate(0, 0, -30)); err != nil {
		t.Fatalf("RecordDailySnapshot returned error: %v", err)
	}

	snaps, err := db.GetSnapshots(ctx, 30)
	if err != nil {
		t.Fatalf("GetSnapshots returned error: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("GetSnapshots(30) = %d snapshots, want 2 (31-day-old excluded)", len(snaps))
	}
	if snaps[0].TotalMonthlyCost != 90.0 {
		t.Errorf("oldest in-window snapshot = %v, want 90.0", snaps[0].TotalMonthlyCost)
	}
}

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory returned error: %v", err)
	}
	defer db.Close()

	if err := db.InsertCluster(context.Background(), testCluster("mem1")); err != nil {
		t.Fatalf("InsertCluster on in-memory db returned error: %v", err)
	}
	n, err := db.CountClusters(context.Background())
	if err != nil {
		t.Fatalf("CountClusters returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("CountClusters = %d, want 1", n)
	}
}
