package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/roaddash/internal/metrics"
	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/source"
)

// Params are the load parameters that shape the collections.
type Params struct {
	MinYear     int
	MaxYear     int
	CurrentYear int
}

// ParamsFromConfig resolves the year window and reference year at now.
func ParamsFromConfig(cfg models.AnalysisConfig, now time.Time) Params {
	minYear, maxYear := cfg.YearRange(now)
	return Params{MinYear: minYear, MaxYear: maxYear, CurrentYear: cfg.CurrentYear(now)}
}

func (p Params) String() string {
	return fmt.Sprintf("years=%d-%d,current=%d", p.MinYear, p.MaxYear, p.CurrentYear)
}

// Loader turns the three sources into record collections. The year window is
// resolved against the clock on every call, so a long-running process follows
// the calendar.
type Loader struct {
	sources source.Set
	cfg     models.AnalysisConfig
	now     func() time.Time
}

func New(sources source.Set, cfg models.AnalysisConfig) *Loader {
	return &Loader{sources: sources, cfg: cfg, now: time.Now}
}

// WithClock replaces the wall clock used to resolve Params.
func (l *Loader) WithClock(now func() time.Time) *Loader {
	l.now = now
	return l
}

// Params resolves the load parameters at the current time.
func (l *Loader) Params() Params {
	return ParamsFromConfig(l.cfg, l.now())
}

// Fingerprint identifies the load parameters together with the current state
// of every source.
func (l *Loader) Fingerprint(ctx context.Context, p Params) (string, error) {
	parts := []string{p.String()}
	for _, src := range l.all() {
		fp, err := src.Fingerprint(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", models.ErrDataUnavailable, src.Name(), err)
		}
		parts = append(parts, fp)
	}
	return strings.Join(parts, "|"), nil
}

// Load reads every source and converts it. Any read failure or missing
// required column yields ErrDataUnavailable.
func (l *Loader) Load(ctx context.Context, p Params) (ds *models.Datasets, err error) {
	start := time.Now()
	defer func() { metrics.RecordDatasetLoad(err, time.Since(start)) }()

	tables := make([]*source.Table, 0, 3)
	for _, src := range l.all() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := src.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", models.ErrDataUnavailable, src.Name(), err)
		}
		tables = append(tables, t)
	}

	accidents, err := BuildAccidents(tables[0], p)
	if err != nil {
		return nil, err
	}
	licenses, err := BuildLicenses(tables[1], p)
	if err != nil {
		return nil, err
	}
	vehicles, err := BuildVehicles(tables[2])
	if err != nil {
		return nil, err
	}

	return &models.Datasets{
		Accidents:   accidents,
		Licenses:    licenses,
		Vehicles:    vehicles,
		MinYear:     p.MinYear,
		MaxYear:     p.MaxYear,
		CurrentYear: p.CurrentYear,
		LoadedAt:    time.Now(),
	}, nil
}

func (l *Loader) all() []source.Source {
	return []source.Source{l.sources.Accidents, l.sources.Licenses, l.sources.Vehicles}
}
