package dashboard

import (
	"time"

	"github.com/chrisdamba/roaddash/internal/charts"
	"github.com/chrisdamba/roaddash/internal/models"
)

// Chart keys of Payload.Charts.
const (
	ChartAccidentsTrend      = "accidents_trend"
	ChartHourlyPatterns      = "hourly_patterns"
	ChartLicenseDemographics = "license_demographics"
	ChartVehicleStatus       = "vehicle_status"
	ChartVehicleAge          = "vehicle_age"
	ChartNationality         = "nationality_distribution"
	ChartAgeDistribution     = "age_distribution"
	ChartForecast            = "forecast"
)

type Metrics struct {
	TotalAccidents int     `json:"total_accidents"`
	TotalLicenses  int64   `json:"total_licenses"`
	TotalVehicles  int64   `json:"total_vehicles"`
	AvgAge         float64 `json:"avg_age"`
	// PeakHour is nil when no hourly data is available.
	PeakHour      *int  `json:"peak_hour"`
	VehicleActive int64 `json:"vehicle_active"`
}

type Analytics struct {
	// ForecastData is nil when the forecast was not requested.
	ForecastData            *models.ForecastSeries     `json:"forecast_data"`
	AgeDistribution         models.CountSeries         `json:"age_distribution"`
	OwnerAgeDistribution    models.CountSeries         `json:"owner_age_distribution"`
	VehicleStatus           models.CountSeries         `json:"vehicle_status"`
	HourlyPatterns          models.HourlyDistribution  `json:"hourly_patterns"`
	LicenseDemographics     models.LicenseDemographics `json:"license_demographics"`
	VehicleTrends           models.VehicleTrends       `json:"vehicle_trends"`
	NationalityDistribution models.CountSeries         `json:"nationality_distribution"`
	YearlyAccidents         models.YearlyCounts        `json:"yearly_accidents"`
}

// Payload is the /api/data document.
type Payload struct {
	Metrics        Metrics                  `json:"metrics"`
	AccidentsTrend charts.Figure            `json:"accidents_trend"`
	Analytics      Analytics                `json:"analytics"`
	Charts         map[string]charts.Figure `json:"charts"`
	GeneratedAt    time.Time                `json:"generated_at"`
}
