package charts

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var barWidth = vg.Points(18)

// RenderPNG draws the visible traces of a figure. Pie traces are drawn as
// bars, one per slice.
func RenderPNG(w io.Writer, title string, fig Figure, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = title
	if fig.Layout.XAxis != nil {
		p.X.Label.Text = fig.Layout.XAxis.Title
	}
	if fig.Layout.YAxis != nil {
		p.Y.Label.Text = fig.Layout.YAxis.Title
		if fig.Layout.YAxis.ShowGrid {
			p.Add(plotter.NewGrid())
		}
	}

	for _, t := range fig.Data {
		if !t.Shown() {
			continue
		}
		var err error
		switch t.Type {
		case "bar":
			err = addBars(p, t.X, t.Y, markerColors(t))
		case "pie":
			x := make([]any, len(t.Labels))
			for i, l := range t.Labels {
				x[i] = l
			}
			err = addBars(p, x, t.Values, markerColors(t))
		case "scatter":
			err = addLine(p, t)
		default:
			err = fmt.Errorf("unsupported trace type %q", t.Type)
		}
		if err != nil {
			return err
		}
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func markerColors(t Trace) Colors {
	if t.Marker == nil {
		return nil
	}
	if len(t.Marker.Colors) > 0 {
		return Colors(t.Marker.Colors)
	}
	return t.Marker.Color
}

// addBars draws one bar chart per distinct color so per-point colors survive.
func addBars(p *plot.Plot, x []any, y []float64, colors Colors) error {
	if len(y) == 0 {
		return nil
	}
	labels := make([]string, len(x))
	for i, v := range x {
		labels[i] = fmt.Sprint(v)
	}

	var order []string
	groups := make(map[string]plotter.Values)
	for i, v := range y {
		c := colors.At(i)
		if _, ok := groups[c]; !ok {
			order = append(order, c)
			groups[c] = make(plotter.Values, len(y))
		}
		groups[c][i] = v
	}
	for _, c := range order {
		bars, err := plotter.NewBarChart(groups[c], barWidth)
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		bars.Color = ParseColor(c)
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
	}
	p.NominalX(labels...)
	return nil
}

func addLine(p *plot.Plot, t Trace) error {
	if len(t.Y) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(t.Y))
	numeric := true
	for i := range t.Y {
		f, ok := asFloat(valueAt(t.X, i))
		if !ok {
			numeric = false
		}
		xys[i] = plotter.XY{X: f, Y: t.Y[i]}
	}
	if !numeric {
		labels := make([]string, len(t.Y))
		for i := range xys {
			xys[i].X = float64(i)
			labels[i] = fmt.Sprint(valueAt(t.X, i))
		}
		p.NominalX(labels...)
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("line chart: %w", err)
	}
	c := ParseColor("")
	if t.Line != nil {
		c = ParseColor(t.Line.Color)
		if t.Line.Width > 0 {
			line.Width = vg.Points(t.Line.Width)
		}
		if t.Line.Dash != "" {
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		}
	}
	line.Color = c
	points.Color = c
	p.Add(line, points)
	if t.Name != "" {
		p.Legend.Add(t.Name, line, points)
	}
	return nil
}

func valueAt(x []any, i int) any {
	if i < len(x) {
		return x[i]
	}
	return i
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// ParseColor understands "#rrggbb" and "rgba(r, g, b, a)". Anything else
// falls back to the primary color.
func ParseColor(s string) color.Color {
	s = strings.TrimSpace(s)
	var r, g, b uint8
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: 255}
		}
	}
	if strings.HasPrefix(s, "rgba(") {
		var a float64
		if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err == nil {
			return color.NRGBA{R: r, G: g, B: b, A: uint8(max(min(a, 1), 0) * 255)}
		}
	}
	return color.NRGBA{R: 0x63, G: 0x66, B: 0xf1, A: 255}
}
