package handler

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kostscope/kostscope/internal/aggregate"
	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/model"
	"github.com/kostscope/kostscope/internal/store"
	"github.com/kostscope/kostscope/pkg/insight"
)

type ClusterHandler struct {
	db      *store.DB
	seeder  *mock.Seeder
	insight *insight.Service
}

func NewClusterHandler(db *store.DB, seeder *mock.Seeder, svc *insight.Service) *ClusterHandler {
	return &ClusterHandler{db: db, seeder: seeder, insight: svc}
}

// List returns all clusters, seeding mock data first if the store is empty.
func (h *ClusterHandler) List(w http.ResponseWriter, r *http.Request) {
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
	if clusters == nil {
		clusters = []model.ClusterInfo{}
	}
	writeJSON(w, http.StatusOK, clusters)
}

// Get returns a single cluster or 404.
func (h *ClusterHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.db.GetCluster(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w, "Cluster not found")
		return
	}
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Analyze generates an AI-backed cost analysis for a cluster, persists it,
// and returns it.
func (h *ClusterHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	c, err := h.db.GetCluster(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		writeNotFound(w, "Cluster not found")
		return
	}
	if err != nil {
		writeInternalError(w, err)
		return
	}

	insights := h.insight.AnalyzeClusterCosts(ctx, c)
	recommendations := h.insight.GenerateRecommendations(ctx, c)

	avgCPU := aggregate.AvgCPUUsage(c.Nodes)
	analysis := model.CostAnalysis{
		ID:               uuid.NewString(),
		ClusterID:        c.ID,
		AnalysisType:     "comprehensive",
		Recommendations:  recommendations,
		PotentialSavings: aggregate.SavingsEstimate(c.TotalCost, avgCPU),
		ConfidenceScore:  85 + rand.Float64()*10,
		AIInsights:       insights,
		CreatedAt:        time.Now().UTC(),
	}

	if err := h.db.InsertAnalysis(ctx, analysis); err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// GetRecommendations returns the fixed optimization recommendations for a
// cluster. The cluster must exist, but its content does not influence the
// result; each request generates fresh record ids and nothing is persisted.
func (h *ClusterHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.db.GetCluster(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "Cluster not found")
			return
		}
		writeInternalError(w, err)
		return
	}

	recommendations := []model.OptimizationRecommendation{
		{
			ID:                       uuid.NewString(),
			ClusterID:                id,
			Type:                     "rightsizing",
			Description:              "Downsize over-provisioned nodes in zone us-east-1a",
			Impact:                   "Reduce costs by optimizing node sizes",
			SavingsEstimate:          450.00,
			ImplementationComplexity: "Medium",
			Priority:                 "High",
		},
		{
			ID:                       uuid.NewString(),
			ClusterID:                id,
			Type:                     "scaling",
			Description:              "Enable cluster autoscaling to handle traffic spikes",
			Impact:                   "Automatically adjust cluster size based on demand",
			SavingsEstimate:          320.00,
			ImplementationComplexity: "Low",
			Priority:                 "High",
		},
		{
			ID:                       uuid.NewString(),
			ClusterID:                id,
			Type:                     "scheduling",
			Description:              "Implement pod affinity rules for better resource utilization",
			Impact:                   "Improve workload distribution across nodes",
			SavingsEstimate:          180.00,
			ImplementationComplexity: "High",
			Priority:                 "Medium",
		},
	}

	writeJSON(w, http.StatusOK, recommendations)
}
