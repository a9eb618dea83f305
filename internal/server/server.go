package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/server/handler"
	"github.com/chrisdamba/roaddash/internal/server/middleware"
)

const serviceName = "roaddash"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	cfg models.ServerConfig
	log logger.Logger
}

type handlers struct {
	dashboard *handler.Dashboard
	health    *handler.Health
}

func New(cfg models.ServerConfig, service handler.DashboardService, log logger.Logger) (*API, error) {
	if service == nil {
		return nil, errors.New("dashboard service is required")
	}

	api := &API{
		mux: http.NewServeMux(),
		routes: &handlers{
			dashboard: handler.NewDashboard(service, log),
			health:    handler.NewHealth(serviceName, log),
		},
		m:   middleware.NewMiddleware(log),
		cfg: cfg,
		log: log,
	}
	api.setupRoutes()

	api.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return api, nil
}

// Handler is the routed mux wrapped in the middleware chain.
func (a *API) Handler() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(a.mux))))
}

// Run serves in the background; a listen failure is sent on errCh.
func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = logger.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.cfg.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()
}

func (a *API) Stop(ctx context.Context) error {
	if a.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
		defer cancel()
	}
	ctx = logger.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.cfg.Addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")
	return nil
}
