package middleware

import (
	"net/http"
	"time"
)

// Logging logs the start and end of every request.
func (m *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w}

		m.log.Debug(r.Context(), "started",
			"method", r.Method,
			"URL", r.URL.Path,
			"request-host", r.Host,
		)

		next.ServeHTTP(rw, r)

		m.log.Info(r.Context(), "completed",
			"method", r.Method,
			"URL", r.URL.Path,
			"status", rw.code(),
			"duration", time.Since(start),
		)
	})
}
