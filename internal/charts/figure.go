// Package charts maps dashboard series onto plotly figure specifications and
// renders them to PNG for offline export. Builders only reshape their input.
package charts

import "encoding/json"

// Figure is a plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type      string    `json:"type"`
	Mode      string    `json:"mode,omitempty"`
	Name      string    `json:"name,omitempty"`
	X         []any     `json:"x,omitempty"`
	Y         []float64 `json:"y,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Hole      float64   `json:"hole,omitempty"`
	Fill      string    `json:"fill,omitempty"`
	FillColor string    `json:"fillcolor,omitempty"`
	Visible   *bool     `json:"visible,omitempty"`
	Marker    *Marker   `json:"marker,omitempty"`
	Line      *Line     `json:"line,omitempty"`
}

// Shown reports whether the trace is drawn initially.
func (t Trace) Shown() bool {
	return t.Visible == nil || *t.Visible
}

type Marker struct {
	Color  Colors   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Size   int      `json:"size,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Colors marshals as a single color string when it holds one entry and as a
// per-point array otherwise.
type Colors []string

func (c Colors) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

func (c *Colors) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Colors{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*c = many
	return nil
}

// At returns the color for point i.
func (c Colors) At(i int) string {
	switch {
	case len(c) == 0:
		return ""
	case len(c) == 1:
		return c[0]
	case i < len(c):
		return c[i]
	}
	return c[len(c)-1]
}

type Layout struct {
	PaperBgColor string       `json:"paper_bgcolor,omitempty"`
	PlotBgColor  string       `json:"plot_bgcolor,omitempty"`
	Font         *Font        `json:"font,omitempty"`
	ShowLegend   bool         `json:"showlegend"`
	Legend       *Legend      `json:"legend,omitempty"`
	Margin       *Margin      `json:"margin,omitempty"`
	XAxis        *Axis        `json:"xaxis,omitempty"`
	YAxis        *Axis        `json:"yaxis,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
	UpdateMenus  []UpdateMenu `json:"updatemenus,omitempty"`
}

type Font struct {
	Family string `json:"family,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   int    `json:"size,omitempty"`
}

type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	Y           float64 `json:"y"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Axis struct {
	Title     string `json:"title"`
	ShowGrid  bool   `json:"showgrid"`
	GridColor string `json:"gridcolor,omitempty"`
	TickFont  *Font  `json:"tickfont,omitempty"`
	TickAngle int    `json:"tickangle,omitempty"`
	TickMode  string `json:"tickmode,omitempty"`
	TickVals  []any  `json:"tickvals,omitempty"`
	TickText  []any  `json:"ticktext,omitempty"`
}

type Annotation struct {
	Text      string  `json:"text"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}

type UpdateMenu struct {
	Type      string   `json:"type"`
	Direction string   `json:"direction"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Buttons   []Button `json:"buttons"`
}

type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}
