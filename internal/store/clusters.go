package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kostscope/kostscope/internal/model"
)

// InsertCluster persists a cluster together with its owned node list.
func (d *DB) InsertCluster(ctx context.Context, c model.ClusterInfo) error {
	nodes, err := json.Marshal(c.Nodes)
	if err != nil {
		return fmt.Errorf("encoding nodes for cluster %q: %w", c.ID, err)
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO clusters (id, name, provider, region, nodes, total_cost, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Provider, c.Region, string(nodes), c.TotalCost,
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting cluster %q: %w", c.ID, err)
	}
	return nil
}

// ListClusters returns all clusters in insertion order.
func (d *DB) ListClusters(ctx context.Context) ([]model.ClusterInfo, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, provider, region, nodes, total_cost, created_at
		 FROM clusters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing clusters: %w", err)
	}
	defer rows.Close()

	var clusters []model.ClusterInfo
	for rows.Next() {
		c, err := scanCluster(rows)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing clusters: %w", err)
	}
	return clusters, nil
}

// GetCluster returns the cluster with the given id, or ErrNotFound.
func (d *DB) GetCluster(ctx context.Context, id string) (model.ClusterInfo, error) {
	row := d.db.QueryRowContext(ctx,
		`SELECT id, name, provider, region, nodes, total_cost, created_at
		 FROM clusters WHERE id = ?`, id)

	c, err := scanCluster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ClusterInfo{}, ErrNotFound
	}
	return c, err
}

// CountClusters returns the number of stored clusters.
func (d *DB) CountClusters(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clusters`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting clusters: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCluster(row rowScanner) (model.ClusterInfo, error) {
	var c model.ClusterInfo
	var nodes, createdAt string

	if err := row.Scan(&c.ID, &c.Name, &c.Provider, &c.Region, &nodes, &c.TotalCost, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ClusterInfo{}, err
		}
		return model.ClusterInfo{}, fmt.Errorf("scanning cluster: %w", err)
	}

	if err := json.Unmarshal([]byte(nodes), &c.Nodes); err != nil {
		return model.ClusterInfo{}, &DecodeError{Table: "clusters", ID: c.ID, Err: err}
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.ClusterInfo{}, &DecodeError{Table: "clusters", ID: c.ID, Err: err}
	}
	c.CreatedAt = ts

	return c, nil
}
