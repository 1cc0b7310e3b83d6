package handler

import (
	"net/http"
	"time"

	"github.com/kostscope/kostscope/internal/aggregate"
	"github.com/kostscope/kostscope/internal/metrics"
	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/store"
)

type DashboardHandler struct {
	db     *store.DB
	seeder *mock.Seeder
}

func NewDashboardHandler(db *store.DB, seeder *mock.Seeder) *DashboardHandler {
	return &DashboardHandler{db: db, seeder: seeder}
}

// GetOverview returns the aggregate dashboard metrics, seeding mock clusters
// first if the store is empty.
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.seeder.EnsureClusters(ctx); err != nil {
		writeInternalError(w, err)
		return
	}

	clusters, err := h.db.ListClusters(ctx)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	overview := aggregate.BuildOverview(clusters, time.Now())

	metrics.ClustersTotal.Set(float64(overview.TotalClusters))
	metrics.NodesTotal.Set(float64(overview.TotalNodes))
	metrics.MonthlyCostUSD.Set(overview.TotalMonthlyCost)
	metrics.PotentialSavingsUSD.Set(overview.PotentialSavings)

	writeJSON(w, http.StatusOK, overview)
}

// GetHistory returns the persisted daily cost snapshots for the last 30 days.
func (h *DashboardHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.db.GetSnapshots(r.Context(), 30)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []store.CostSnapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}
