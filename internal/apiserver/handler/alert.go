package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kostscope/kostscope/internal/metrics"
	"github.com/kostscope/kostscope/internal/mock"
	"github.com/kostscope/kostscope/internal/model"
	"github.com/kostscope/kostscope/internal/store"
)

type AlertHandler struct {
	db     *store.DB
	seeder *mock.Seeder
}

func NewAlertHandler(db *store.DB, seeder *mock.Seeder) *AlertHandler {
	return &AlertHandler{db: db, seeder: seeder}
}

// List returns all anomaly alerts. An empty alert store is seeded with mock
// alerts, but only when clusters already exist to reference.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.seeder.EnsureAlerts(ctx); err != nil {
		writeInternalError(w, err)
		return
	}

	alerts, err := h.db.ListAlerts(ctx)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if alerts == nil {
		alerts = []model.AnomalyAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// Resolve marks an alert resolved. Resolving twice is not an error.
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	matched, err := h.db.ResolveAlert(r.Context(), id)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if !matched {
		writeNotFound(w, "Alert not found")
		return
	}

	metrics.AlertsResolvedTotal.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Alert resolved successfully"})
}
