package handler

import (
	"net/http"

	"github.com/kostscope/kostscope/internal/model"
	"github.com/kostscope/kostscope/internal/store"
)

type AnalysisHandler struct {
	db *store.DB
}

func NewAnalysisHandler(db *store.DB) *AnalysisHandler {
	return &AnalysisHandler{db: db}
}

// List returns all stored cost analyses.
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.db.ListAnalyses(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if analyses == nil {
		analyses = []model.CostAnalysis{}
	}
	writeJSON(w, http.StatusOK, analyses)
}
