package middleware

import (
	"fmt"
	"net/http"
)

// Recover turns a panic into a generic 500. The panic value is logged, never
// sent to the client.
func (m *Middleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				m.log.Error(r.Context(), "panic while serving request", fmt.Errorf("%v", p), "path", r.URL.Path)
				w.Header().Set("Connection", "close")
				errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
