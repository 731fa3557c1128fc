package api

import (
	"net/http"
	"time"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string  `json:"status"`
	Students      int     `json:"students"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	counter StudentCounter
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(counter StudentCounter) *HealthHandler {
	return &HealthHandler{counter: counter, started: time.Now()}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !readOnly(w, r) {
		return
	}
	resp := HealthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(h.started).Seconds(),
	}
	if h.counter != nil {
		resp.Students = h.counter.Count(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}
