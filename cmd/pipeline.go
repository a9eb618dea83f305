package cmd

import (
	"context"
	"fmt"

	"github.com/chrisdamba/roaddash/internal/cache"
	"github.com/chrisdamba/roaddash/internal/dashboard"
	"github.com/chrisdamba/roaddash/internal/loader"
	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/source"
)

type pipeline struct {
	sources   source.Set
	cache     *cache.Datasets
	assembler *dashboard.Assembler
}

// newPipeline wires sources, loader, cache and assembler from the config.
func newPipeline(ctx context.Context, cfg *models.Config, log logger.Logger) (*pipeline, error) {
	sources, err := source.NewSet(ctx, cfg.Data)
	if err != nil {
		return nil, fmt.Errorf("dataset sources: %w", err)
	}

	l := loader.New(sources, cfg.Analysis)
	datasets := cache.New(l, cfg.Cache.Size)

	params := l.Params()

	log.Info(ctx, "pipeline ready",
		"source", cfg.Data.Source,
		"min_year", params.MinYear,
		"max_year", params.MaxYear,
		"current_year", params.CurrentYear,
		"forecast_years", cfg.Analysis.ForecastYears,
	)

	return &pipeline{
		sources:   sources,
		cache:     datasets,
		assembler: dashboard.NewAssembler(datasets, cfg.Analysis.ForecastYears, log),
	}, nil
}
