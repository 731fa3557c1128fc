// Package api exposes the HTTP surface: health, metrics and read-only views
// of the stored students.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/domain/mastery"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
	"github.com/vinay2231/Edututor-AI/pkg/metrics"
)

// StudentCounter reports how many students the data provider holds.
type StudentCounter interface {
	Count(ctx context.Context) int
}

// StudentStore is the read side of the data provider.
type StudentStore interface {
	StudentCounter
	Vector(ctx context.Context, studentID string) (model.PerformanceVector, error)
	Vectors(ctx context.Context) map[string]model.PerformanceVector
}

// Advisor builds reports from performance vectors.
type Advisor interface {
	Recommend(ctx context.Context, req app.RecommendRequest) (app.Report, error)
	ClassOverview(ctx context.Context, vectors map[string]model.PerformanceVector) (mastery.ClassOverview, error)
}

// Server wires the HTTP routes.
type Server struct {
	healthHandler   *HealthHandler
	overviewHandler *OverviewHandler
	reportHandler   *ReportHandler
	metrics         http.Handler
}

// NewServer creates a server. With a nil store only /healthz and /metrics
// are served; advisor is then ignored.
func NewServer(store StudentStore, advisor Advisor) *Server {
	s := &Server{metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})}
	if store == nil {
		s.healthHandler = NewHealthHandler(nil)
		return s
	}
	s.healthHandler = NewHealthHandler(store)
	if advisor == nil {
		advisor = app.NewEngine()
	}
	s.overviewHandler = NewOverviewHandler(store, advisor)
	s.reportHandler = NewReportHandler(store, advisor)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", instrument("healthz", s.healthHandler.HandleHealth))
	mux.Handle("/metrics", s.metrics)
	if s.overviewHandler != nil {
		mux.HandleFunc("/overview", instrument("overview", s.overviewHandler.HandleOverview))
		mux.HandleFunc(studentsPrefix, instrument("report", s.reportHandler.HandleReport))
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// readOnly rejects anything but GET and HEAD with 405.
func readOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed")
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Code: code, Message: http.StatusText(status)})
}
