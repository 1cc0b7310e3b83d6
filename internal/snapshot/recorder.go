// Package snapshot records the fleet's total monthly cost into the daily
// cost_snapshots table, giving the dashboard a persisted history alongside
// the synthetic trend.
package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/kostscope/kostscope/internal/store"
)

type Recorder struct {
	db *store.DB
}

func NewRecorder(db *store.DB) *Recorder {
	return &Recorder{db: db}
}

// Record upserts today's total monthly cost. Safe to call repeatedly within
// a day; the last write wins.
func (r *Recorder) Record(ctx context.Context) error {
	clusters, err := r.db.ListClusters(ctx)
	if err != nil {
		return err
	}

	total := 0.0
	for _, c := range clusters {
		total += c.TotalCost
	}

	return r.db.RecordDailySnapshot(ctx, total, time.Now())
}

// RecordLogged runs Record with a timeout and logs failures instead of
// returning them. Used as the cron entry point.
func (r *Recorder) RecordLogged() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.Record(ctx); err != nil {
		slog.Error("cost snapshot failed", "error", err)
	}
}
