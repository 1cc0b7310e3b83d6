package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kostscope/kostscope/internal/model"
)

// InsertAnalysis persists a cost analysis. Analyses are append-only.
func (d *DB) InsertAnalysis(ctx context.Context, a model.CostAnalysis) error {
	recs, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("encoding recommendations for analysis %q: %w", a.ID, err)
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO cost_analyses (id, cluster_id, analysis_type, recommendations,
		 potential_savings, confidence_score, ai_insights, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ClusterID, a.AnalysisType, string(recs),
		a.PotentialSavings, a.ConfidenceScore, a.AIInsights,
		a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting analysis %q: %w", a.ID, err)
	}
	return nil
}

// ListAnalyses returns all stored cost analyses, oldest first.
func (d *DB) ListAnalyses(ctx context.Context) ([]model.CostAnalysis, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, cluster_id, analysis_type, recommendations,
		 potential_savings, confidence_score, ai_insights, created_at
		 FROM cost_analyses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	var analyses []model.CostAnalysis
	for rows.Next() {
		var a model.CostAnalysis
		var recs, createdAt string
		if err := rows.Scan(&a.ID, &a.ClusterID, &a.AnalysisType, &recs,
			&a.PotentialSavings, &a.ConfidenceScore, &a.AIInsights, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		if err := json.Unmarshal([]byte(recs), &a.Recommendations); err != nil {
			return nil, &DecodeError{Table: "cost_analyses", ID: a.ID, Err: err}
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, &DecodeError{Table: "cost_analyses", ID: a.ID, Err: err}
		}
		a.CreatedAt = ts
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return analyses, nil
}
