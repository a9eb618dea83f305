package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chrisdamba/roaddash/internal/dashboard"
	"github.com/chrisdamba/roaddash/internal/models"
)

// Workbook sheet names.
const (
	SheetSummary     = "Summary"
	SheetYearly      = "Yearly Accidents"
	SheetHourly      = "Hourly Patterns"
	SheetAccidentAge = "Accident Ages"
	SheetLicenses    = "License Demographics"
	SheetVehicles    = "Vehicle Trends"
	SheetNationality = "Nationality"
)

// WriteWorkbook saves the payload as an XLSX workbook at path.
func WriteWorkbook(path string, p *dashboard.Payload) error {
	f, err := BuildWorkbook(p)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays out every analytics block on its own sheet.
func BuildWorkbook(p *dashboard.Payload) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	w := &sheetWriter{f: f, header: header}

	peak := any("n/a")
	if p.Metrics.PeakHour != nil {
		peak = *p.Metrics.PeakHour
	}
	w.table(SheetSummary, []string{"Metric", "Value"}, [][]any{
		{"Total accidents", p.Metrics.TotalAccidents},
		{"Total licenses", p.Metrics.TotalLicenses},
		{"Total vehicles", p.Metrics.TotalVehicles},
		{"Average perpetrator age", p.Metrics.AvgAge},
		{"Peak hour", peak},
		{"Active vehicles", p.Metrics.VehicleActive},
		{"Generated at", p.GeneratedAt.Format("2006-01-02 15:04:05")},
	})

	yearly := make([][]any, 0, len(p.Analytics.YearlyAccidents))
	for _, yc := range p.Analytics.YearlyAccidents {
		yearly = append(yearly, []any{yc.Year, yc.Count, "observed"})
	}
	if fd := p.Analytics.ForecastData; fd != nil {
		for _, pt := range fd.Predictions {
			yearly = append(yearly, []any{pt.Year, pt.Count, "forecast"})
		}
	}
	w.table(SheetYearly, []string{"Year", "Accidents", "Kind"}, yearly)

	h := p.Analytics.HourlyPatterns
	hourly := make([][]any, len(h.Hours))
	for i, hour := range h.Hours {
		hourly[i] = []any{hour, h.Counts[i], h.IsDaylight[i]}
	}
	w.table(SheetHourly, []string{"Hour", "Accidents", "Daylight"}, hourly)

	w.table(SheetAccidentAge, []string{"Age group", "Accidents"}, seriesRows(p.Analytics.AgeDistribution))
	w.table(SheetNationality, []string{"Nationality group", "Accidents"}, seriesRows(p.Analytics.NationalityDistribution))

	ld := p.Analytics.LicenseDemographics
	w.sections(SheetLicenses, []section{
		{"Age group", ld.AgeGroups},
		{"Nationality group", ld.Nationality},
		{"License type", ld.LicenseTypes},
	}, "Holders")

	vt := p.Analytics.VehicleTrends
	w.sections(SheetVehicles, []section{
		{"Vehicle age", vt.AgeDistribution},
		{"Status", vt.StatusBreakdown},
	}, "Vehicles")

	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("build workbook: %w", w.err)
	}
	return f, nil
}

type section struct {
	title  string
	series models.CountSeries
}

// sheetWriter keeps the first error so the layout code stays linear.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) ensure(sheet string) {
	if w.err != nil {
		return
	}
	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil {
		w.err = err
		return
	}
	if idx < 0 {
		_, w.err = w.f.NewSheet(sheet)
	}
}

func (w *sheetWriter) table(sheet string, header []string, rows [][]any) {
	w.tableAt(sheet, 1, 1, header, rows)
}

// sections places one two-column table per series side by side.
func (w *sheetWriter) sections(sheet string, sections []section, valueHeader string) {
	for i, s := range sections {
		w.tableAt(sheet, 1+i*3, 1, []string{s.title, valueHeader}, seriesRows(s.series))
	}
}

func (w *sheetWriter) tableAt(sheet string, col, row int, header []string, rows [][]any) {
	w.ensure(sheet)
	for i, title := range header {
		w.set(sheet, col+i, row, title)
	}
	if w.err == nil {
		first, _ := excelize.CoordinatesToCellName(col, row)
		last, _ := excelize.CoordinatesToCellName(col+len(header)-1, row)
		w.err = w.f.SetCellStyle(sheet, first, last, w.header)
	}
	for r, values := range rows {
		for c, v := range values {
			w.set(sheet, col+c, row+1+r, v)
		}
	}
	for i := range header {
		if w.err != nil {
			return
		}
		name, err := excelize.ColumnNumberToName(col + i)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(sheet, name, name, 20)
	}
}

func (w *sheetWriter) set(sheet string, col, row int, value any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(sheet, cell, value)
}

func seriesRows(s models.CountSeries) [][]any {
	rows := make([][]any, len(s))
	for i, c := range s {
		rows[i] = []any{c.Label, c.Count}
	}
	return rows
}
