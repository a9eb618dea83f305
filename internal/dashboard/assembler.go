package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/roaddash/internal/analytics"
	"github.com/chrisdamba/roaddash/internal/charts"
	"github.com/chrisdamba/roaddash/internal/logger"
	"github.com/chrisdamba/roaddash/internal/metrics"
	"github.com/chrisdamba/roaddash/internal/models"
)

// DatasetLoader hands out the loaded collections, usually through the cache.
type DatasetLoader interface {
	Get(ctx context.Context) (*models.Datasets, error)
}

type Options struct {
	IncludeForecast bool
}

// Assembler runs the aggregators over the loaded collections and merges
// their output into one Payload.
type Assembler struct {
	datasets      DatasetLoader
	forecastYears []int
	log           logger.Logger
	now           func() time.Time
}

func NewAssembler(datasets DatasetLoader, forecastYears []int, log logger.Logger) *Assembler {
	if log == nil {
		log = logger.Nop()
	}
	return &Assembler{
		datasets:      datasets,
		forecastYears: forecastYears,
		log:           log,
		now:           time.Now,
	}
}

// Build assembles the payload. Only a load failure and, when requested, a
// forecast failure are returned as errors; aggregators that cannot run are
// logged and contribute their empty result.
func (a *Assembler) Build(ctx context.Context, opts Options) (*Payload, error) {
	ctx = logger.WithAction(ctx, "build_dashboard")

	ds, err := a.datasets.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	yearly := analytics.YearlyCounts(ds.Accidents)

	var forecast *models.ForecastSeries
	if opts.IncludeForecast {
		fs, err := analytics.Forecast(yearly, a.forecastYears)
		if err != nil {
			return nil, fmt.Errorf("forecast: %w", err)
		}
		forecast = &fs
	}

	hourly := analytics.HourlyPatterns(ds.Accidents)
	if !hourly.DataAvailable {
		a.degraded(ctx, "hourly_patterns", fmt.Errorf("no usable values in hour field %q", ds.Accidents.HourField))
	}

	licenses, err := analytics.LicenseDemographics(ds.Licenses, ds.CurrentYear)
	if err != nil {
		a.degraded(ctx, "license_demographics", err)
	}

	vehicles, err := analytics.VehicleTrends(ds.Vehicles, ds.CurrentYear)
	if err != nil {
		a.degraded(ctx, "vehicle_trends", err)
	}

	ages, err := analytics.AccidentAgeDistribution(ds.Accidents)
	if err != nil {
		a.degraded(ctx, "age_distribution", err)
	}

	nationality, err := analytics.TopNationalities(ds.Accidents, models.TopGroups)
	if err != nil {
		a.degraded(ctx, "nationality_distribution", err)
	}

	m := Metrics{
		TotalAccidents: len(ds.Accidents.Records),
		TotalLicenses:  sumLicenses(ds.Licenses),
		TotalVehicles:  sumVehicles(ds.Vehicles),
		VehicleActive:  vehicles.StatusBreakdown.Get(models.VehicleStatusActive),
	}
	if mean, ok := analytics.MeanAge(ds.Accidents); ok {
		m.AvgAge = mean
	}
	if peak, ok := analytics.PeakHour(hourly); ok {
		m.PeakHour = &peak
	}

	p := &Payload{
		Metrics: m,
		Analytics: Analytics{
			ForecastData:            forecast,
			AgeDistribution:         ages,
			OwnerAgeDistribution:    licenses.AgeGroups,
			VehicleStatus:           vehicles.StatusBreakdown,
			HourlyPatterns:          hourly,
			LicenseDemographics:     licenses,
			VehicleTrends:           vehicles,
			NationalityDistribution: nationality,
			YearlyAccidents:         yearly,
		},
		GeneratedAt: a.now().UTC(),
	}
	p.Charts = BuildCharts(p.Analytics)
	p.AccidentsTrend = p.Charts[ChartAccidentsTrend]

	a.log.Debug(ctx, "dashboard assembled",
		"accidents", m.TotalAccidents,
		"licenses", m.TotalLicenses,
		"vehicles", m.TotalVehicles,
		"forecast", opts.IncludeForecast,
	)
	return p, nil
}

// BuildCharts maps the analytics blocks onto figures.
func BuildCharts(an Analytics) map[string]charts.Figure {
	figs := map[string]charts.Figure{
		ChartAccidentsTrend:      charts.AccidentsTrend(an.YearlyAccidents),
		ChartHourlyPatterns:      charts.HourlyPattern(an.HourlyPatterns),
		ChartLicenseDemographics: charts.LicenseDemographics(an.LicenseDemographics),
		ChartVehicleStatus:       charts.VehicleStatus(an.VehicleTrends),
		ChartVehicleAge:          charts.VehicleAge(an.VehicleTrends),
		ChartNationality:         charts.NationalityDistribution(an.NationalityDistribution),
		ChartAgeDistribution:     charts.AgeDistribution(an.AgeDistribution, "Number of Accidents"),
	}
	if an.ForecastData != nil {
		figs[ChartForecast] = charts.Forecast(*an.ForecastData)
	}
	return figs
}

func (a *Assembler) degraded(ctx context.Context, aggregator string, err error) {
	metrics.RecordDegraded(aggregator)
	a.log.Warn(ctx, "aggregator degraded", "aggregator", aggregator, "error", err.Error())
}

func sumLicenses(set models.LicenseSet) int64 {
	var total int64
	for _, rec := range set.Records {
		total += rec.Total
	}
	return total
}

func sumVehicles(set models.VehicleSet) int64 {
	var total int64
	for _, rec := range set.Records {
		total += rec.Total
	}
	return total
}
