package analytics

import (
	"fmt"

	"github.com/chrisdamba/roaddash/internal/models"
)

// LicenseDemographics sums license holders per age group, top nationality
// groups and top license types. Holders without a birth year only count
// towards the nationality and type totals.
func LicenseDemographics(set models.LicenseSet, currentYear int) (models.LicenseDemographics, error) {
	required := []struct {
		column string
		ok     bool
	}{
		{models.ColBirthYear, set.HasBirthYear},
		{models.ColNationalityGroup, set.HasNationality},
		{models.ColLicenseType, set.HasLicenseType},
	}
	for _, r := range required {
		if !r.ok {
			return models.EmptyLicenseDemographics(), fmt.Errorf("license demographics: missing column %s", r.column)
		}
	}

	ages := models.ZeroSeries(models.DriverAgeBuckets)
	nationality := make(map[string]int64)
	types := make(map[string]int64)
	for _, rec := range set.Records {
		if rec.BirthYear != nil {
			bucketize(ages, models.DriverAgeBuckets, models.ClipAge(currentYear-*rec.BirthYear), rec.Total)
		}
		if rec.Nationality != "" {
			nationality[rec.Nationality] += rec.Total
		}
		if rec.LicenseType != "" {
			types[rec.LicenseType] += rec.Total
		}
	}

	return models.LicenseDemographics{
		AgeGroups:     ages,
		Nationality:   TopN(nationality, models.TopGroups),
		LicenseTypes:  TopN(types, models.TopGroups),
		DataAvailable: true,
	}, nil
}
