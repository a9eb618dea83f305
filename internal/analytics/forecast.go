package analytics

import (
	"fmt"

	"github.com/chrisdamba/roaddash/internal/models"
)

// Forecast fits an ordinary least-squares line through the yearly counts and
// predicts each target year. A zero target stands for the year after the last
// observation. Predictions below zero are clamped.
func Forecast(yearly models.YearlyCounts, targets []int) (models.ForecastSeries, error) {
	distinct := make(map[int]struct{}, len(yearly))
	for _, yc := range yearly {
		distinct[yc.Year] = struct{}{}
	}
	if len(distinct) < 2 {
		return models.ForecastSeries{}, fmt.Errorf("%w: %d distinct year(s), need 2", models.ErrInsufficientData, len(distinct))
	}

	n := float64(len(yearly))
	var meanX, meanY float64
	for _, yc := range yearly {
		meanX += float64(yc.Year)
		meanY += float64(yc.Count)
	}
	meanX /= n
	meanY /= n

	var sxy, sxx float64
	for _, yc := range yearly {
		dx := float64(yc.Year) - meanX
		sxy += dx * (float64(yc.Count) - meanY)
		sxx += dx * dx
	}
	slope := sxy / sxx

	series := models.ForecastSeries{
		Years:     make([]int, len(yearly)),
		Counts:    make([]int64, len(yearly)),
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}
	last := yearly[0].Year
	for i, yc := range yearly {
		series.Years[i] = yc.Year
		series.Counts[i] = yc.Count
		last = max(last, yc.Year)
	}

	if len(targets) == 0 {
		targets = []int{0}
	}
	series.Predictions = make([]models.ForecastPoint, 0, len(targets))
	for _, year := range targets {
		if year == 0 {
			year = last + 1
		}
		predicted := meanY + slope*(float64(year)-meanX)
		series.Predictions = append(series.Predictions, models.ForecastPoint{
			Year:  year,
			Count: max(predicted, 0),
		})
	}
	return series, nil
}
