package middleware

import (
	"net/http"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/roaddash/internal/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or mints a cuid, echoes it in the
// response and stores it in the request context for the logger.
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = cuid.New()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}
