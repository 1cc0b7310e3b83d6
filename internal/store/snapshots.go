package store

import (
	"context"
	"fmt"
	"time"
)

// CostSnapshot is a persisted daily cost data point, one per calendar day.
type CostSnapshot struct {
	Date             string  `json:"date"`
	TotalMonthlyCost float64 `json:"total_monthly_cost"`
}

// RecordDailySnapshot upserts today's total monthly cost. Called at startup
// and by the daily cron so restarts never leave a gap for the current day.
func (d *DB) RecordDailySnapshot(ctx context.Context, total float64, now time.Time) error {
	date := now.UTC().Format("2006-01-02")
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO cost_snapshots (date, total_monthly_cost_usd) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET total_monthly_cost_usd = excluded.total_monthly_cost_usd`,
		date, total,
	)
	if err != nil {
		return fmt.Errorf("recording cost snapshot for %s: %w", date, err)
	}
	return nil
}

// GetSnapshots returns snapshots for the last N calendar days ending today
// (at most N entries), ordered by date ascending.
func (d *DB) GetSnapshots(ctx context.Context, days int) ([]CostSnapshot, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -(days - 1)).Format("2006-01-02")
	rows, err := d.db.QueryContext(ctx,
		`SELECT date, total_monthly_cost_usd FROM cost_snapshots
		 WHERE date >= ? ORDER BY date ASC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing cost snapshots: %w", err)
	}
	defer rows.Close()

	var result []CostSnapshot
	for rows.Next() {
		var cs CostSnapshot
		if err := rows.Scan(&cs.Date, &cs.TotalMonthlyCost); err != nil {
			return nil, fmt.Errorf("scanning cost snapshot: %w", err)
		}
		result = append(result, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing cost snapshots: %w", err)
	}
	return result, nil
}
