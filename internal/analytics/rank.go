package analytics

import (
	"sort"

	"github.com/chrisdamba/roaddash/internal/models"
)

// TopN orders totals descending, ties by label, and keeps the first n.
func TopN(totals map[string]int64, n int) models.CountSeries {
	series := make(models.CountSeries, 0, len(totals))
	for label, count := range totals {
		series = append(series, models.LabeledCount{Label: label, Count: count})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Count != series[j].Count {
			return series[i].Count > series[j].Count
		}
		return series[i].Label < series[j].Label
	})
	if n >= 0 && len(series) > n {
		series = series[:n]
	}
	return series
}

// bucketize adds count to the bucket holding v.
func bucketize(series models.CountSeries, specs []models.BucketSpec, v int, count int64) {
	for i, b := range specs {
		if b.Contains(v) {
			series[i].Count += count
			return
		}
	}
}
