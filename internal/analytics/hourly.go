package analytics

import (
	"math"

	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/source"
)

// ParseHour coerces a raw hour cell. Whole numbers parse directly, other text
// falls back to its first digit run, so "14:30" is hour 14.
func ParseHour(raw string) (int, bool) {
	f, ok := source.AsFloat(raw)
	if !ok || f != math.Trunc(f) || f < 0 || f > 23 {
		return 0, false
	}
	return int(f), true
}

// HourlyPatterns counts accidents per hour of day. The result is unavailable
// when the set has no hour field, or when the field holds values but none of
// them parse.
func HourlyPatterns(set models.AccidentSet) models.HourlyDistribution {
	if set.HourField == "" {
		return models.NewHourlyDistribution(false)
	}

	dist := models.NewHourlyDistribution(true)
	present, valid := 0, 0
	for _, rec := range set.Records {
		if rec.HourRaw == "" {
			continue
		}
		present++
		hour, ok := ParseHour(rec.HourRaw)
		if !ok {
			continue
		}
		valid++
		dist.Counts[hour]++
		if dist.IsDaylight[hour] {
			dist.DayAccidents++
		} else {
			dist.NightAccidents++
		}
	}
	if present > 0 && valid == 0 {
		return models.NewHourlyDistribution(false)
	}
	return dist
}

// PeakHour returns the busiest hour, the earliest one on ties.
func PeakHour(dist models.HourlyDistribution) (int, bool) {
	if !dist.DataAvailable || dist.Total() == 0 {
		return 0, false
	}
	peak := 0
	for hour, c := range dist.Counts {
		if c > dist.Counts[peak] {
			peak = hour
		}
	}
	return peak, true
}
