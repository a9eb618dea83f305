package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/chrisdamba/roaddash/internal/dashboard"
	"github.com/chrisdamba/roaddash/internal/models"
)

func payload() *dashboard.Payload {
	peak := 8
	hourly := models.NewHourlyDistribution(true)
	hourly.Counts[8] = 3
	hourly.DayAccidents = 3

	an := dashboard.Analytics{
		ForecastData: &models.ForecastSeries{
			Years:       []int{2022, 2023},
			Counts:      []int64{2, 4},
			Predictions: []models.ForecastPoint{{Year: 2024, Count: 6}},
		},
		AgeDistribution: models.CountSeries{{Label: "18-25", Count: 3}},
		HourlyPatterns:  hourly,
		LicenseDemographics: models.LicenseDemographics{
			AgeGroups:     models.CountSeries{{Label: "18-25", Count: 5}},
			Nationality:   models.CountSeries{{Label: "Swiss", Count: 5}},
			LicenseTypes:  models.CountSeries{{Label: "B", Count: 5}},
			DataAvailable: true,
		},
		VehicleTrends: models.VehicleTrends{
			AgeDistribution: models.CountSeries{{Label: "0-5", Count: 9}},
			StatusBreakdown: models.CountSeries{{Label: "ACTIVE", Count: 9}},
			DataAvailable:   true,
		},
		NationalityDistribution: models.CountSeries{{Label: "Swiss", Count: 3}},
		YearlyAccidents:         models.YearlyCounts{{Year: 2022, Count: 2}, {Year: 2023, Count: 4}},
	}
	charts := dashboard.BuildCharts(an)
	return &dashboard.Payload{
		Metrics: dashboard.Metrics{
			TotalAccidents: 6, TotalLicenses: 5, TotalVehicles: 9,
			AvgAge: 21, PeakHour: &peak, VehicleActive: 9,
		},
		AccidentsTrend: charts[dashboard.ChartAccidentsTrend],
		Analytics:      an,
		Charts:         charts,
		GeneratedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, payload()); err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["analytics"]; !ok {
		t.Errorf("json = %s", buf.String())
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.xlsx")
	if err := WriteWorkbook(path, payload()); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetYearly, SheetHourly, SheetAccidentAge, SheetNationality, SheetLicenses, SheetVehicles}
	if diff := cmp.Diff(want, f.GetSheetList()); diff != "" {
		t.Errorf("sheets (-want +got):\n%s", diff)
	}

	rows, err := f.GetRows(SheetYearly)
	if err != nil {
		t.Fatal(err)
	}
	wantRows := [][]string{
		{"Year", "Accidents", "Kind"},
		{"2022", "2", "observed"},
		{"2023", "4", "observed"},
		{"2024", "6", "forecast"},
	}
	if diff := cmp.Diff(wantRows, rows); diff != "" {
		t.Errorf("yearly rows (-want +got):\n%s", diff)
	}

	hourly, _ := f.GetRows(SheetHourly)
	if len(hourly) != 25 {
		t.Errorf("hourly rows = %d, want header + 24", len(hourly))
	}

	licenseType, err := f.GetCellValue(SheetLicenses, "G2")
	if err != nil || licenseType != "B" {
		t.Errorf("license type cell = %q, %v", licenseType, err)
	}
}

func TestWriteCharts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	p := payload()

	paths, err := WriteCharts(dir, p.Charts)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(p.Charts) {
		t.Fatalf("paths = %v", paths)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("%s is not a png", path)
		}
	}
}
