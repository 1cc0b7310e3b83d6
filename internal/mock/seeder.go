package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kostscope/kostscope/internal/store"
)

// Seeder populates an empty store with mock data. Seeding is idempotent and
// serialized behind a mutex so concurrent first reads cannot double-insert.
type Seeder struct {
	mu       sync.Mutex
	db       *store.DB
	clusters int
}

// NewSeeder returns a Seeder that creates clusterCount clusters when the
// store has none.
func NewSeeder(db *store.DB, clusterCount int) *Seeder {
	if clusterCount < 1 {
		clusterCount = 3
	}
	return &Seeder{db: db, clusters: clusterCount}
}

// EnsureClusters inserts mock clusters if the store holds none.
func (s *Seeder) EnsureClusters(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.db.CountClusters(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	clusters := Clusters(s.clusters)
	for _, c := range clusters {
		if err := s.db.InsertCluster(ctx, c); err != nil {
			return err
		}
	}
	slog.Info("seeded mock clusters", "count", len(clusters))
	return nil
}

// EnsureAlerts inserts mock alerts if the store holds none. Alerts reference
// existing clusters, so seeding is skipped while the store has no clusters.
func (s *Seeder) EnsureAlerts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.db.CountAlerts(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	clusters, err := s.db.ListClusters(ctx)
	if err != nil {
		return err
	}
	alerts := Alerts(clusters)
	for _, a := range alerts {
		if err := s.db.InsertAlert(ctx, a); err != nil {
			return err
		}
	}
	if len(alerts) > 0 {
		slog.Info("seeded mock alerts", "count", len(alerts))
	}
	return nil
}
