package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vinay2231/Edututor-AI/internal/adapters/repository"
	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/internal/domain/planner"
)

const (
	studentsPrefix = "/students/"
	reportSuffix   = "/report"
)

// ReportHandler serves the recommendation report for one stored student.
type ReportHandler struct {
	store   StudentStore
	advisor Advisor
}

// NewReportHandler creates a new report handler.
func NewReportHandler(store StudentStore, advisor Advisor) *ReportHandler {
	return &ReportHandler{store: store, advisor: advisor}
}

// HandleReport handles GET /students/{id}/report requests. The learning
// style defaults to Visual and completed to zero.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	id, ok := studentFromPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	req, err := reportRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	req.Vector, err = h.store.Vector(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "student_not_found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	report, err := h.advisor.Recommend(r.Context(), req)
	switch {
	case errors.Is(err, planner.ErrUnknownLearningStyle):
		writeError(w, http.StatusBadRequest, "unknown_learning_style")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error")
	default:
		writeJSON(w, http.StatusOK, report)
	}
}

func studentFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, studentsPrefix)
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, reportSuffix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

func reportRequest(r *http.Request) (app.RecommendRequest, error) {
	q := r.URL.Query()
	req := app.RecommendRequest{LearningStyle: model.StyleVisual}
	if s := q.Get("style"); s != "" {
		req.LearningStyle = model.LearningStyle(s)
	}
	if c := q.Get("completed"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil || n < 0 {
			return req, ErrBadRequest
		}
		req.CompletedAssessments = n
	}
	return req, nil
}
