package charts

import (
	"fmt"

	"github.com/chrisdamba/roaddash/internal/models"
)

const (
	ColorPrimary = "#6366f1"
	ColorDay     = "#22d3ee"
	ColorNight   = "#ec4899"
	ColorGrid    = "#334155"
	ColorMuted   = "#9ca3af"
	ColorText    = "#fafafa"
	transparent  = "rgba(0,0,0,0)"
)

// VehicleAgePalette colors the vehicle age donut slices.
var VehicleAgePalette = []string{"#22d3ee", "#38bdf8", "#60a5fa", "#818cf8", "#ec4899"}

func baseLayout(xTitle, yTitle string) Layout {
	return Layout{
		PaperBgColor: transparent,
		PlotBgColor:  transparent,
		Font:         &Font{Family: "Space Grotesk", Color: ColorText},
		Margin:       &Margin{L: 60, R: 20, T: 20, B: 40},
		XAxis:        &Axis{Title: xTitle, TickFont: &Font{Color: ColorMuted}},
		YAxis:        &Axis{Title: yTitle, ShowGrid: true, GridColor: ColorGrid, TickFont: &Font{Color: ColorMuted}},
	}
}

func labelsOf(s models.CountSeries) []any {
	x := make([]any, len(s))
	for i, label := range s.Labels() {
		x[i] = label
	}
	return x
}

func unavailable(text string) Annotation {
	return Annotation{
		Text: text, XRef: "paper", YRef: "paper", X: 0.5, Y: 0.5,
		Font: &Font{Size: 16, Color: "#94a3b8"},
	}
}

// AccidentsTrend plots accidents per year.
func AccidentsTrend(yearly models.YearlyCounts) Figure {
	x := make([]any, len(yearly))
	y := make([]float64, len(yearly))
	for i, yc := range yearly {
		x[i] = fmt.Sprint(yc.Year)
		y[i] = float64(yc.Count)
	}
	return Figure{
		Data: []Trace{{
			Type:   "scatter",
			Mode:   "lines+markers",
			X:      x,
			Y:      y,
			Line:   &Line{Color: ColorPrimary, Width: 2},
			Marker: &Marker{Size: 8},
		}},
		Layout: baseLayout("Year", "Number of Accidents"),
	}
}

// HourlyPattern draws hourly counts, daylight hours and night hours in
// distinct colors.
func HourlyPattern(dist models.HourlyDistribution) Figure {
	x := make([]any, len(dist.Hours))
	ticks := make([]any, len(dist.Hours))
	y := make([]float64, len(dist.Counts))
	colors := make(Colors, len(dist.Hours))
	for i, h := range dist.Hours {
		x[i] = h
		ticks[i] = fmt.Sprintf("%d:00", h)
		y[i] = float64(dist.Counts[i])
		colors[i] = ColorNight
		if dist.IsDaylight[i] {
			colors[i] = ColorDay
		}
	}

	layout := baseLayout("Hour of Day", "Number of Accidents")
	layout.XAxis.TickMode = "array"
	layout.XAxis.TickVals = x
	layout.XAxis.TickText = ticks
	if !dist.DataAvailable {
		layout.Annotations = []Annotation{unavailable("Hourly data not available")}
	}
	return Figure{
		Data:   []Trace{{Type: "bar", Name: "Accidents", X: x, Y: y, Marker: &Marker{Color: colors}}},
		Layout: layout,
	}
}

// LicenseDemographics shows holders by nationality, with a toggle to license
// types.
func LicenseDemographics(ld models.LicenseDemographics) Figure {
	hidden := false
	layout := baseLayout("", "Number of License Holders")
	layout.XAxis.TickAngle = 45
	layout.UpdateMenus = []UpdateMenu{{
		Type: "buttons", Direction: "right", X: 0.5, Y: 1.1,
		Buttons: []Button{
			{Label: "Nationality", Method: "restyle", Args: []any{map[string]any{"visible": []bool{true, false}}}},
			{Label: "License Types", Method: "restyle", Args: []any{map[string]any{"visible": []bool{false, true}}}},
		},
	}}
	if !ld.DataAvailable {
		layout.Annotations = []Annotation{unavailable("License data not available")}
	}
	return Figure{
		Data: []Trace{
			{Type: "bar", Name: "By Nationality", X: labelsOf(ld.Nationality), Y: ld.Nationality.Values(), Marker: &Marker{Color: Colors{ColorDay}}},
			{Type: "bar", Name: "By License Type", X: labelsOf(ld.LicenseTypes), Y: ld.LicenseTypes.Values(), Marker: &Marker{Color: Colors{ColorNight}}, Visible: &hidden},
		},
		Layout: layout,
	}
}

// VehicleStatus fades the bar color with each status rank.
func VehicleStatus(vt models.VehicleTrends) Figure {
	colors := make(Colors, len(vt.StatusBreakdown))
	for i := range colors {
		alpha := max(1-float64(i)*0.2, 0.2)
		colors[i] = fmt.Sprintf("rgba(34, 211, 238, %.1f)", alpha)
	}
	layout := baseLayout("Vehicle Status", "Number of Vehicles")
	layout.XAxis.TickAngle = 45
	return Figure{
		Data:   []Trace{{Type: "bar", X: labelsOf(vt.StatusBreakdown), Y: vt.StatusBreakdown.Values(), Marker: &Marker{Color: colors}}},
		Layout: layout,
	}
}

// VehicleAge is a donut of vehicle age buckets.
func VehicleAge(vt models.VehicleTrends) Figure {
	layout := baseLayout("", "")
	layout.XAxis, layout.YAxis = nil, nil
	layout.ShowLegend = true
	layout.Legend = &Legend{Orientation: "h", Y: -0.2}
	if len(vt.AgeDistribution) == 0 {
		layout.Annotations = []Annotation{unavailable("Vehicle age data not available")}
	}
	return Figure{
		Data: []Trace{{
			Type:   "pie",
			Labels: vt.AgeDistribution.Labels(),
			Values: vt.AgeDistribution.Values(),
			Hole:   0.4,
			Marker: &Marker{Colors: VehicleAgePalette},
		}},
		Layout: layout,
	}
}

// NationalityDistribution plots accidents per nationality group.
func NationalityDistribution(s models.CountSeries) Figure {
	return Figure{
		Data:   []Trace{{Type: "bar", X: labelsOf(s), Y: s.Values(), Marker: &Marker{Color: Colors{ColorPrimary}}}},
		Layout: baseLayout("Nationality Group", "Number of Accidents"),
	}
}

// AgeDistribution plots an age bucket series.
func AgeDistribution(s models.CountSeries, yTitle string) Figure {
	return Figure{
		Data:   []Trace{{Type: "bar", X: labelsOf(s), Y: s.Values(), Marker: &Marker{Color: Colors{"#818cf8"}}}},
		Layout: baseLayout("Age Group", yTitle),
	}
}

// Forecast draws the observed series and a dashed line from the last
// observation through the predicted points.
func Forecast(fs models.ForecastSeries) Figure {
	observed := Trace{Type: "scatter", Mode: "lines+markers", Name: "Observed", Line: &Line{Color: ColorPrimary, Width: 2}}
	for i, year := range fs.Years {
		observed.X = append(observed.X, year)
		observed.Y = append(observed.Y, float64(fs.Counts[i]))
	}

	predicted := Trace{Type: "scatter", Mode: "lines+markers", Name: "Forecast", Line: &Line{Color: ColorNight, Width: 2, Dash: "dash"}}
	if n := len(fs.Years); n > 0 {
		predicted.X = append(predicted.X, fs.Years[n-1])
		predicted.Y = append(predicted.Y, float64(fs.Counts[n-1]))
	}
	for _, p := range fs.Predictions {
		predicted.X = append(predicted.X, p.Year)
		predicted.Y = append(predicted.Y, p.Count)
	}

	layout := baseLayout("Year", "Number of Accidents")
	layout.ShowLegend = true
	return Figure{Data: []Trace{observed, predicted}, Layout: layout}
}
