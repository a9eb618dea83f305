package seed

var (
	NationalityGroups = []string{
		"SWITZERLAND", "EU/EFTA", "EUROPE NON-EU", "AFRICA", "ASIA", "AMERICA", "OCEANIA",
	}

	LicenseTypes = []string{"B", "A", "A1", "BE", "C", "C1", "CE", "D", "D1"}

	// VehicleStatusWeights skews registrations towards active vehicles.
	VehicleStatusWeights = map[string]float64{
		"ACTIVE":       0.72,
		"DEREGISTERED": 0.15,
		"SUSPENDED":    0.05,
		"EXPORTED":     0.05,
		"SCRAPPED":     0.03,
	}

	// AccidentHourProfile is the relative accident frequency per hour of
	// day: morning and evening rush peaks, quiet nights.
	AccidentHourProfile = [24]float64{
		0.8, 0.6, 0.5, 0.4, 0.4, 0.7, // 00-05
		1.6, 3.2, 3.6, 2.4, 2.2, 2.6, // 06-11
		3.0, 2.8, 2.9, 3.4, 4.2, 4.6, // 12-17
		3.8, 2.6, 1.9, 1.5, 1.2, 1.0, // 18-23
	}

	// driverAgeWeights shapes perpetrator and holder ages per bucket.
	driverAgeWeights = []struct {
		min, max int
		weight   float64
	}{
		{18, 25, 0.22},
		{26, 35, 0.21},
		{36, 45, 0.18},
		{46, 55, 0.17},
		{56, 65, 0.12},
		{66, 90, 0.10},
	}
)
