// Package export writes a dashboard payload to files: the JSON document, an
// XLSX workbook with one sheet per analytics block and a PNG per chart.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot/vg"

	"github.com/chrisdamba/roaddash/internal/charts"
	"github.com/chrisdamba/roaddash/internal/dashboard"
)

func WriteJSON(w io.Writer, p *dashboard.Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// WriteCharts renders every chart as <dir>/<name>.png and returns the paths
// in name order.
func WriteCharts(dir string, figures map[string]charts.Figure) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	names := make([]string, 0, len(figures))
	for name := range figures {
		names = append(names, name)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name+".png")
		if err := writeChart(path, name, figures[name]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeChart(path, name string, fig charts.Figure) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := charts.RenderPNG(f, name, fig, 8*vg.Inch, 5*vg.Inch); err != nil {
		return fmt.Errorf("chart %s: %w", name, err)
	}
	return f.Close()
}
