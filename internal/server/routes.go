package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *API) setupRoutes() {
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)
	a.mux.HandleFunc("GET /api/data", a.routes.dashboard.GetData)
	a.mux.Handle("GET /metrics", promhttp.Handler())
}
