package api

import (
	"net/http"
)

// OverviewHandler serves the class overview of every stored student.
type OverviewHandler struct {
	store   StudentStore
	advisor Advisor
}

// NewOverviewHandler creates a new overview handler.
func NewOverviewHandler(store StudentStore, advisor Advisor) *OverviewHandler {
	return &OverviewHandler{store: store, advisor: advisor}
}

// HandleOverview handles GET /overview requests.
func (h *OverviewHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	overview, err := h.advisor.ClassOverview(r.Context(), h.store.Vectors(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
