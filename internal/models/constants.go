package models

// Dataset column names as they appear in the source files.
const (
	ColAccidentYear         = "ACCIDENT_YEAR"
	ColAccidentHour         = "ACCIDENT_HOUR"
	ColAccidentTime         = "ACCIDENT_TIME"
	ColPerpetratorBirthYear = "PERPETRATOR_BIRTH_YEAR"
	ColAccidentNationality  = "NATIONALITY_GROUP_OF_ACCIDENT_"

	ColBirthYear        = "BIRTH_YEAR"
	ColNationalityGroup = "NATIONALITY_GROUP"
	ColLicenseType      = "LICENSE_TYPE"
	ColStatus           = "STATUS"
	ColTotal            = "TOTAL"
)

// HourColumns lists the accident hour columns in order of preference.
var HourColumns = []string{ColAccidentHour, ColAccidentTime}

const (
	VehicleStatusActive  = "ACTIVE"
	VehicleStatusUnknown = "UNKNOWN"

	MinAge = 18
	MaxAge = 100

	DaylightStart = 6
	DaylightEnd   = 18

	TopGroups = 5
)

// BucketSpec is a closed integer range; Max < 0 leaves the bucket open-ended.
type BucketSpec struct {
	Label string
	Min   int
	Max   int
}

func (b BucketSpec) Contains(v int) bool {
	return v >= b.Min && (b.Max < 0 || v <= b.Max)
}

var (
	DriverAgeBuckets = []BucketSpec{
		{Label: "18-25", Min: 18, Max: 25},
		{Label: "26-35", Min: 26, Max: 35},
		{Label: "36-45", Min: 36, Max: 45},
		{Label: "46-55", Min: 46, Max: 55},
		{Label: "56-65", Min: 56, Max: 65},
		{Label: "65+", Min: 66, Max: -1},
	}

	VehicleAgeBuckets = []BucketSpec{
		{Label: "0-5", Min: 0, Max: 5},
		{Label: "6-10", Min: 6, Max: 10},
		{Label: "11-15", Min: 11, Max: 15},
		{Label: "16-20", Min: 16, Max: 20},
		{Label: "20+", Min: 21, Max: -1},
	}
)

// ClipAge clamps an age into the plausible human range.
func ClipAge(age int) int {
	switch {
	case age < MinAge:
		return MinAge
	case age > MaxAge:
		return MaxAge
	}
	return age
}

func IsDaylightHour(hour int) bool {
	return hour >= DaylightStart && hour <= DaylightEnd
}
