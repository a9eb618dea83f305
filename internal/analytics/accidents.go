package analytics

import (
	"errors"
	"sort"

	"github.com/chrisdamba/roaddash/internal/models"
)

// YearlyCounts counts accidents per year, ascending.
func YearlyCounts(set models.AccidentSet) models.YearlyCounts {
	perYear := make(map[int]int64)
	for _, rec := range set.Records {
		perYear[rec.Year]++
	}
	counts := make(models.YearlyCounts, 0, len(perYear))
	for year, c := range perYear {
		counts = append(counts, models.YearCount{Year: year, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}

// AccidentAgeDistribution buckets perpetrators by their clipped age.
func AccidentAgeDistribution(set models.AccidentSet) (models.CountSeries, error) {
	ages := models.ZeroSeries(models.DriverAgeBuckets)
	if !set.HasBirthYear {
		return ages, errors.New("accident ages: missing column " + models.ColPerpetratorBirthYear)
	}
	for _, rec := range set.Records {
		if rec.Age != nil {
			bucketize(ages, models.DriverAgeBuckets, *rec.Age, 1)
		}
	}
	return ages, nil
}

// TopNationalities counts accidents per nationality group.
func TopNationalities(set models.AccidentSet, n int) (models.CountSeries, error) {
	if !set.HasNationality {
		return models.CountSeries{}, errors.New("accident nationality: missing column " + models.ColAccidentNationality)
	}
	counts := make(map[string]int64)
	for _, rec := range set.Records {
		if rec.Nationality != "" {
			counts[rec.Nationality]++
		}
	}
	return TopN(counts, n), nil
}

// MeanAge averages the perpetrator ages that resolved.
func MeanAge(set models.AccidentSet) (float64, bool) {
	var sum, n int
	for _, rec := range set.Records {
		if rec.Age != nil {
			sum += *rec.Age
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
