package loader

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/chrisdamba/roaddash/internal/models"
	"github.com/chrisdamba/roaddash/internal/source"
)

type fakeSource struct {
	name    string
	table   *source.Table
	err     error
	version int
	reads   int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fingerprint(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("%s@%d", f.name, f.version), nil
}

func (f *fakeSource) Read(context.Context) (*source.Table, error) {
	f.reads++
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func table(t *testing.T, name string, columns map[string][]any, order ...string) *source.Table {
	t.Helper()
	tbl := source.NewTable(name)
	for _, col := range order {
		if err := tbl.AddColumn(col, columns[col]); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

var params = Params{MinYear: 2020, MaxYear: 2023, CurrentYear: 2024}

func intp(v int) *int { return &v }

func TestBuildAccidentsFiltersYearsAndDerivesAge(t *testing.T) {
	tbl := table(t, "acc", map[string][]any{
		models.ColAccidentYear:         {int64(2019), int64(2020), int64(2023), int64(2024), nil},
		models.ColAccidentTime:         {"01:00", "08:30", nil, "10:00", "11:00"},
		models.ColPerpetratorBirthYear: {int64(1990), int64(2010), int64(1900), nil, int64(1980)},
	}, models.ColAccidentYear, models.ColAccidentTime, models.ColPerpetratorBirthYear)

	set, err := BuildAccidents(tbl, params)
	if err != nil {
		t.Fatal(err)
	}

	want := models.AccidentSet{
		Records: []models.AccidentRecord{
			{Year: 2020, HourRaw: "08:30", BirthYear: intp(2010), Age: intp(models.MinAge)},
			{Year: 2023, BirthYear: intp(1900), Age: intp(models.MaxAge)},
		},
		HourField:    models.ColAccidentTime,
		HasBirthYear: true,
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Errorf("BuildAccidents mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAccidentsPrefersHourColumn(t *testing.T) {
	tbl := table(t, "acc", map[string][]any{
		models.ColAccidentYear: {int64(2021)},
		models.ColAccidentTime: {"08:30"},
		models.ColAccidentHour: {int32(17)},
	}, models.ColAccidentYear, models.ColAccidentTime, models.ColAccidentHour)

	set, err := BuildAccidents(tbl, params)
	if err != nil {
		t.Fatal(err)
	}
	if set.HourField != models.ColAccidentHour || set.Records[0].HourRaw != "17" {
		t.Errorf("hour field = %q, raw = %q", set.HourField, set.Records[0].HourRaw)
	}
}

func TestBuildAccidentsDropsImplausibleBirthYears(t *testing.T) {
	tbl := table(t, "acc", map[string][]any{
		models.ColAccidentYear:         {int64(2021), int64(2022)},
		models.ColPerpetratorBirthYear: {1e20, int64(1990)},
	}, models.ColAccidentYear, models.ColPerpetratorBirthYear)

	set, err := BuildAccidents(tbl, params)
	if err != nil {
		t.Fatal(err)
	}
	if set.Records[0].BirthYear != nil || set.Records[0].Age != nil {
		t.Errorf("garbage birth year kept: %+v", set.Records[0])
	}
	if set.Records[1].Age == nil || *set.Records[1].Age != 34 {
		t.Errorf("age = %v, want 34", set.Records[1].Age)
	}
}

func TestBuildRequiresColumns(t *testing.T) {
	empty := source.NewTable("x")
	if _, err := BuildAccidents(empty, params); !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("accidents: %v", err)
	}
	if _, err := BuildLicenses(empty, params); !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("licenses: %v", err)
	}
	if _, err := BuildVehicles(empty); !errors.Is(err, models.ErrDataUnavailable) {
		t.Errorf("vehicles: %v", err)
	}
}

func TestBuildVehiclesDefaultsStatus(t *testing.T) {
	tbl := table(t, "veh", map[string][]any{
		models.ColStatus: {"ACTIVE", nil, ""},
		models.ColTotal:  {int64(4), int64(-2), int64(7)},
	}, models.ColStatus, models.ColTotal)

	set, err := BuildVehicles(tbl)
	if err != nil {
		t.Fatal(err)
	}
	want := models.VehicleSet{
		Records: []models.VehicleRecord{
			{Status: "ACTIVE", Total: 4},
			{Status: models.VehicleStatusUnknown, Total: 0},
			{Status: models.VehicleStatusUnknown, Total: 7},
		},
		HasStatus: true,
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Errorf("BuildVehicles mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLicensesFlagsColumns(t *testing.T) {
	tbl := table(t, "liz", map[string][]any{
		models.ColBirthYear: {int64(1980), "bad"},
		models.ColTotal:     {int64(3), "12"},
	}, models.ColBirthYear, models.ColTotal)

	set, err := BuildLicenses(tbl, params)
	if err != nil {
		t.Fatal(err)
	}
	if !set.HasBirthYear || set.HasNationality || set.HasLicenseType {
		t.Errorf("flags = %+v", set)
	}
	if set.Records[1].BirthYear != nil || set.Records[1].Total != 12 {
		t.Errorf("record = %+v", set.Records[1])
	}
}

func newSources(t *testing.T) (source.Set, *fakeSource) {
	acc := &fakeSource{name: "acc", table: table(t, "acc", map[string][]any{
		models.ColAccidentYear: {int64(2021), int64(2022)},
	}, models.ColAccidentYear)}
	liz := &fakeSource{name: "liz", table: table(t, "liz", map[string][]any{
		models.ColTotal: {int64(5)},
	}, models.ColTotal)}
	veh := &fakeSource{name: "veh", table: table(t, "veh", map[string][]any{
		models.ColTotal: {int64(9)},
	}, models.ColTotal)}
	return source.Set{Accidents: acc, Licenses: liz, Vehicles: veh}, veh
}

func TestLoad(t *testing.T) {
	sources, _ := newSources(t)
	ds, err := New(sources, models.AnalysisConfig{}).Load(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Accidents.Records) != 2 || ds.Licenses.Records[0].Total != 5 || ds.Vehicles.Records[0].Total != 9 {
		t.Errorf("datasets = %+v", ds)
	}
	if ds.CurrentYear != 2024 || ds.MinYear != 2020 || ds.MaxYear != 2023 {
		t.Errorf("params not carried: %+v", ds)
	}
}

func TestLoadUnreadableSource(t *testing.T) {
	sources, veh := newSources(t)
	veh.err = errors.New("disk on fire")

	ds, err := New(sources, models.AnalysisConfig{}).Load(context.Background(), params)
	if !errors.Is(err, models.ErrDataUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if ds != nil {
		t.Errorf("expected no datasets, got %+v", ds)
	}
}

func TestFingerprintFollowsSources(t *testing.T) {
	sources, veh := newSources(t)
	l := New(sources, models.AnalysisConfig{})

	first, err := l.Fingerprint(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	veh.version++
	second, err := l.Fingerprint(context.Background(), params)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("fingerprint should change with a source")
	}

	third, _ := l.Fingerprint(context.Background(), Params{MinYear: 2021, MaxYear: 2023, CurrentYear: 2024})
	if third == second {
		t.Error("fingerprint should include load parameters")
	}
}

func TestParamsFollowClock(t *testing.T) {
	sources, _ := newSources(t)
	now := time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)
	l := New(sources, models.AnalysisConfig{MinYear: 2020}).WithClock(func() time.Time { return now })

	before := l.Params()
	if before != (Params{MinYear: 2020, MaxYear: 2023, CurrentYear: 2023}) {
		t.Errorf("params before new year = %+v", before)
	}
	fpBefore, err := l.Fingerprint(context.Background(), before)
	if err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Minute)
	after := l.Params()
	if after != (Params{MinYear: 2020, MaxYear: 2024, CurrentYear: 2024}) {
		t.Errorf("params after new year = %+v", after)
	}
	fpAfter, err := l.Fingerprint(context.Background(), after)
	if err != nil {
		t.Fatal(err)
	}
	if fpBefore == fpAfter {
		t.Error("fingerprint should change across a year boundary")
	}

	ds, err := l.Load(context.Background(), after)
	if err != nil {
		t.Fatal(err)
	}
	if ds.MaxYear != 2024 || ds.CurrentYear != 2024 {
		t.Errorf("datasets window = %d-%d current %d", ds.MinYear, ds.MaxYear, ds.CurrentYear)
	}
}
