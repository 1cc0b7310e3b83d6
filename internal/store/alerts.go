package store

import (
	"context"
	"fmt"
	"time"

	"github.com/kostscope/kostscope/internal/model"
)

// InsertAlert persists an anomaly alert.
func (d *DB) InsertAlert(ctx context.Context, a model.AnomalyAlert) error {
	resolved := 0
	if a.Resolved {
		resolved = 1
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO alerts (id, cluster_id, alert_type, description, severity, detected_at, resolved)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ClusterID, a.AlertType, a.Description, a.Severity,
		a.DetectedAt.UTC().Format(time.RFC3339Nano), resolved,
	)
	if err != nil {
		return fmt.Errorf("inserting alert %q: %w", a.ID, err)
	}
	return nil
}

// ListAlerts returns all alerts, oldest first.
func (d *DB) ListAlerts(ctx context.Context) ([]model.AnomalyAlert, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, cluster_id, alert_type, description, severity, detected_at, resolved
		 FROM alerts ORDER BY detected_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.AnomalyAlert
	for rows.Next() {
		var a model.AnomalyAlert
		var detectedAt string
		var resolved int
		if err := rows.Scan(&a.ID, &a.ClusterID, &a.AlertType, &a.Description, &a.Severity, &detectedAt, &resolved); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, detectedAt)
		if err != nil {
			return nil, &DecodeError{Table: "alerts", ID: a.ID, Err: err}
		}
		a.DetectedAt = ts
		a.Resolved = resolved != 0
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing alerts: %w", err)
	}
	return alerts, nil
}

// ResolveAlert marks an alert resolved. Returns false when no alert with the
// given id exists. Resolving an already-resolved alert matches and is a no-op.
func (d *DB) ResolveAlert(ctx context.Context, id string) (bool, error) {
	res, err := d.db.ExecContext(ctx, `UPDATE alerts SET resolved = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("resolving alert %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolving alert %q: %w", id, err)
	}
	if n > 0 {
		return true, nil
	}
	// UPDATE ... SET resolved = 1 on an already-resolved row still counts as
	// affected in SQLite, but guard against drivers that report otherwise so
	// the resolve operation stays idempotent.
	var exists int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts WHERE id = ?`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("resolving alert %q: %w", id, err)
	}
	return exists > 0, nil
}

// CountAlerts returns the number of stored alerts.
func (d *DB) CountAlerts(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting alerts: %w", err)
	}
	return n, nil
}
