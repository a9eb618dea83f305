package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/chrisdamba/roaddash/internal/dashboard"
	"github.com/chrisdamba/roaddash/internal/logger"
)

type DashboardService interface {
	Build(ctx context.Context, opts dashboard.Options) (*dashboard.Payload, error)
}

type Dashboard struct {
	service DashboardService
	log     logger.Logger
}

func NewDashboard(service DashboardService, log logger.Logger) *Dashboard {
	return &Dashboard{service: service, log: log}
}

// GetData serves the dashboard payload. The forecast is included unless the
// query sets forecast=false.
func (d *Dashboard) GetData(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "get_dashboard_data")

	opts := dashboard.Options{IncludeForecast: true}
	if raw := r.URL.Query().Get("forecast"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "forecast must be a boolean")
			return
		}
		opts.IncludeForecast = include
	}

	payload, err := d.service.Build(ctx, opts)
	if err != nil {
		d.log.Error(ctx, "failed to build dashboard", err)
		internalError(w)
		return
	}

	if err := writeJSON(w, http.StatusOK, payload, nil); err != nil {
		d.log.Error(ctx, "failed to write dashboard", err)
		internalError(w)
	}
}
