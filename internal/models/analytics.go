package models

import (
	"bytes"
	"encoding/json"
)

// LabeledCount is one entry of a CountSeries.
type LabeledCount struct {
	Label string
	Count int64
}

// CountSeries is an ordered label → count mapping. It marshals as a JSON
// object whose keys keep the series order.
type CountSeries []LabeledCount

func (s CountSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(c.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s CountSeries) Get(label string) int64 {
	for _, c := range s {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

func (s CountSeries) Sum() int64 {
	var total int64
	for _, c := range s {
		total += c.Count
	}
	return total
}

func (s CountSeries) Labels() []string {
	labels := make([]string, len(s))
	for i, c := range s {
		labels[i] = c.Label
	}
	return labels
}

func (s CountSeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, c := range s {
		values[i] = float64(c.Count)
	}
	return values
}

// ZeroSeries returns every bucket label with a zero count.
func ZeroSeries(specs []BucketSpec) CountSeries {
	s := make(CountSeries, len(specs))
	for i, b := range specs {
		s[i] = LabeledCount{Label: b.Label}
	}
	return s
}

type HourlyDistribution struct {
	Hours          []int   `json:"hours"`
	Counts         []int64 `json:"counts"`
	IsDaylight     []bool  `json:"is_daylight"`
	DayAccidents   int64   `json:"day_accidents"`
	NightAccidents int64   `json:"night_accidents"`
	DataAvailable  bool    `json:"data_available"`
}

// NewHourlyDistribution returns all 24 hours with zero counts.
func NewHourlyDistribution(available bool) HourlyDistribution {
	h := HourlyDistribution{
		Hours:         make([]int, 24),
		Counts:        make([]int64, 24),
		IsDaylight:    make([]bool, 24),
		DataAvailable: available,
	}
	for hour := 0; hour < 24; hour++ {
		h.Hours[hour] = hour
		h.IsDaylight[hour] = IsDaylightHour(hour)
	}
	return h
}

func (h HourlyDistribution) Total() int64 {
	var total int64
	for _, c := range h.Counts {
		total += c
	}
	return total
}

type LicenseDemographics struct {
	AgeGroups     CountSeries `json:"age_groups"`
	Nationality   CountSeries `json:"nationality"`
	LicenseTypes  CountSeries `json:"license_types"`
	DataAvailable bool        `json:"data_available"`
}

func EmptyLicenseDemographics() LicenseDemographics {
	return LicenseDemographics{
		AgeGroups:    CountSeries{},
		Nationality:  CountSeries{},
		LicenseTypes: CountSeries{},
	}
}

type VehicleTrends struct {
	AgeDistribution CountSeries `json:"age_distribution"`
	StatusBreakdown CountSeries `json:"status_breakdown"`
	DataAvailable   bool        `json:"data_available"`
}

func EmptyVehicleTrends() VehicleTrends {
	return VehicleTrends{
		AgeDistribution: CountSeries{},
		StatusBreakdown: CountSeries{},
	}
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

// YearlyCounts is sorted by year ascending.
type YearlyCounts []YearCount

type ForecastPoint struct {
	Year  int     `json:"year"`
	Count float64 `json:"count"`
}

type ForecastSeries struct {
	Years       []int           `json:"years"`
	Counts      []int64         `json:"counts"`
	Predictions []ForecastPoint `json:"predictions"`
	Slope       float64         `json:"slope"`
	Intercept   float64         `json:"intercept"`
}
