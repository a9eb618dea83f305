package loader

import (
	"fmt"

	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/source"
)

func requireColumns(t *source.Table, columns ...string) error {
	for _, col := range columns {
		if !t.Has(col) {
			return fmt.Errorf("%w: %s: missing column %s", models.ErrDataUnavailable, t.Name(), col)
		}
	}
	return nil
}

// BuildAccidents keeps rows whose year falls inside the closed window and
// derives the perpetrator age.
func BuildAccidents(t *source.Table, p Params) (models.AccidentSet, error) {
	if err := requireColumns(t, models.ColAccidentYear); err != nil {
		return models.AccidentSet{}, err
	}

	hourField, _ := t.FirstOf(models.HourColumns...)
	set := models.AccidentSet{
		Records:        make([]models.AccidentRecord, 0, t.Rows()),
		HourField:      hourField,
		HasNationality: t.Has(models.ColAccidentNationality),
		HasBirthYear:   t.Has(models.ColPerpetratorBirthYear),
	}

	for i := 0; i < t.Rows(); i++ {
		year, ok := source.AsInt(t.Value(models.ColAccidentYear, i))
		if !ok || year < p.MinYear || year > p.MaxYear {
			continue
		}
		rec := models.AccidentRecord{
			Year:        year,
			Nationality: source.AsString(t.Value(models.ColAccidentNationality, i)),
		}
		if hourField != "" {
			rec.HourRaw = source.AsString(t.Value(hourField, i))
		}
		if by, ok := source.AsInt(t.Value(models.ColPerpetratorBirthYear, i)); ok {
			age := models.ClipAge(p.CurrentYear - by)
			rec.BirthYear, rec.Age = &by, &age
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

func BuildLicenses(t *source.Table, _ Params) (models.LicenseSet, error) {
	if err := requireColumns(t, models.ColTotal); err != nil {
		return models.LicenseSet{}, err
	}

	set := models.LicenseSet{
		Records:        make([]models.LicenseRecord, 0, t.Rows()),
		HasBirthYear:   t.Has(models.ColBirthYear),
		HasNationality: t.Has(models.ColNationalityGroup),
		HasLicenseType: t.Has(models.ColLicenseType),
	}
	for i := 0; i < t.Rows(); i++ {
		rec := models.LicenseRecord{
			Nationality: source.AsString(t.Value(models.ColNationalityGroup, i)),
			LicenseType: source.AsString(t.Value(models.ColLicenseType, i)),
			Total:       total(t, i),
		}
		if by, ok := source.AsInt(t.Value(models.ColBirthYear, i)); ok {
			rec.BirthYear = &by
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

func BuildVehicles(t *source.Table) (models.VehicleSet, error) {
	if err := requireColumns(t, models.ColTotal); err != nil {
		return models.VehicleSet{}, err
	}

	set := models.VehicleSet{
		Records:      make([]models.VehicleRecord, 0, t.Rows()),
		HasBirthYear: t.Has(models.ColBirthYear),
		HasStatus:    t.Has(models.ColStatus),
	}
	for i := 0; i < t.Rows(); i++ {
		rec := models.VehicleRecord{
			Status: source.AsString(t.Value(models.ColStatus, i)),
			Total:  total(t, i),
		}
		if rec.Status == "" {
			rec.Status = models.VehicleStatusUnknown
		}
		if by, ok := source.AsInt(t.Value(models.ColBirthYear, i)); ok {
			rec.BirthYear = &by
		}
		set.Records = append(set.Records, rec)
	}
	return set, nil
}

// total reads the TOTAL cell; null, malformed and negative values count as 0.
func total(t *source.Table, row int) int64 {
	v, ok := source.AsInt64(t.Value(models.ColTotal, row))
	if !ok || v < 0 {
		return 0
	}
	return v
}
