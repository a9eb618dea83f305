package models

import "time"

// AccidentRecord is one accident row after loading.
type AccidentRecord struct {
	Year int
	// HourRaw keeps the hour cell as text; the hourly aggregator decides
	// whether it is usable.
	HourRaw     string
	Nationality string
	BirthYear   *int
	Age         *int // clipped to [MinAge, MaxAge]
}

type AccidentSet struct {
	Records []AccidentRecord
	// HourField names the column the hours came from, empty if none exists.
	HourField      string
	HasNationality bool
	HasBirthYear   bool
}

// LicenseRecord is an aggregated row: Total holders share the attributes.
type LicenseRecord struct {
	BirthYear   *int
	Nationality string
	LicenseType string
	Total       int64
}

type LicenseSet struct {
	Records        []LicenseRecord
	HasBirthYear   bool
	HasNationality bool
	HasLicenseType bool
}

type VehicleRecord struct {
	BirthYear *int
	Status    string
	Total     int64
}

type VehicleSet struct {
	Records      []VehicleRecord
	HasBirthYear bool
	HasStatus    bool
}

// Datasets is the loader output for one set of load parameters.
type Datasets struct {
	Accidents   AccidentSet
	Licenses    LicenseSet
	Vehicles    VehicleSet
	MinYear     int
	MaxYear     int
	CurrentYear int
	LoadedAt    time.Time
}
