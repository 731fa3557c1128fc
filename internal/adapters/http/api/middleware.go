package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vinay2231/Edututor-AI/pkg/metrics"
)

// instrument records the request count and latency of next under endpoint.
func instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		metrics.RecordHTTPRequest(endpoint, r.Method, strconv.Itoa(rec.status),
			float64(time.Since(start).Microseconds())/1000)
	}
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
