package analytics

import (
	"errors"

	"github.com/chrisdamba/roaddash/internal/models"
)

var (
	errNoVehicleAge    = errors.New("vehicle trends: missing column " + models.ColBirthYear)
	errNoVehicleStatus = errors.New("vehicle trends: missing column " + models.ColStatus)
)

// VehicleTrends sums vehicles per age bucket and per status. Every record
// reaches the status breakdown; a missing status is UNKNOWN. A missing status
// or birth year column is reported as an error next to the partial result;
// without birth years the age mapping stays empty.
func VehicleTrends(set models.VehicleSet, currentYear int) (models.VehicleTrends, error) {
	statuses := make(map[string]int64)
	for _, rec := range set.Records {
		status := rec.Status
		if status == "" || !set.HasStatus {
			status = models.VehicleStatusUnknown
		}
		statuses[status] += rec.Total
	}

	trends := models.EmptyVehicleTrends()
	trends.StatusBreakdown = TopN(statuses, -1)

	var missing error
	if !set.HasStatus {
		missing = errNoVehicleStatus
	}
	if !set.HasBirthYear {
		return trends, errors.Join(missing, errNoVehicleAge)
	}

	ages := models.ZeroSeries(models.VehicleAgeBuckets)
	for _, rec := range set.Records {
		if rec.BirthYear == nil {
			continue
		}
		bucketize(ages, models.VehicleAgeBuckets, max(currentYear-*rec.BirthYear, 0), rec.Total)
	}
	trends.AgeDistribution = ages
	trends.DataAvailable = set.HasStatus
	return trends, missing
}
