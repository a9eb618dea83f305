package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/chrisdamba/roaddash/internal/metrics"
)

// UnmatchedRoute labels requests that match no registered pattern.
const UnmatchedRoute = "unmatched"

// Metrics records request counts and latencies, labelled by the mux pattern
// that serves the request.
func (m *Middleware) Metrics(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip metrics endpoint to avoid recursion
		if r.URL.Path == "/metrics" {
			mux.ServeHTTP(w, r)
			return
		}

		route := UnmatchedRoute
		if _, pattern := mux.Handler(r); pattern != "" {
			route = routePath(pattern)
		}

		start := time.Now()
		metrics.HttpRequestsInFlight.Inc()
		defer metrics.HttpRequestsInFlight.Dec()

		rw := &statusRecorder{ResponseWriter: w}
		mux.ServeHTTP(rw, r)

		metrics.RecordHTTPMetrics(r.Method, route, rw.code(), time.Since(start))
	})
}

// routePath drops the method from a "GET /path" pattern.
func routePath(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}
