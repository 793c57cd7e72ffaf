package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/raphi011/repodash/internal/log"
)

// statusRecorder captures the response code for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// middleware touches liveness for every request, tags it with a request id,
// attaches the logger to its context and logs the outcome.
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.service.Touch()

		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		ctx := log.WithLogger(r.Context(), s.logger)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(ctx))

		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
