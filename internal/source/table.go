package source

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Table is a flat columnar dataset as read from a source. Cells keep the
// decoded parquet value (int32, int64, float32, float64, bool, string) or
// nil for nulls.
type Table struct {
	name    string
	columns []string
	values  map[string][]any
	rows    int
}

func NewTable(name string) *Table {
	return &Table{name: name, values: make(map[string][]any)}
}

// AddColumn appends a column. All columns must share the same length.
func (t *Table) AddColumn(name string, values []any) error {
	if _, ok := t.values[name]; ok {
		return fmt.Errorf("table %s: duplicate column %s", t.name, name)
	}
	if len(t.columns) > 0 && len(values) != t.rows {
		return fmt.Errorf("table %s: column %s has %d rows, want %d", t.name, name, len(values), t.rows)
	}
	t.columns = append(t.columns, name)
	t.values[name] = values
	t.rows = len(values)
	return nil
}

func (t *Table) Name() string      { return t.name }
func (t *Table) Columns() []string { return t.columns }
func (t *Table) Rows() int         { return t.rows }

func (t *Table) Has(column string) bool {
	_, ok := t.values[column]
	return ok
}

// FirstOf returns the first of the given columns present in the table.
func (t *Table) FirstOf(columns ...string) (string, bool) {
	for _, c := range columns {
		if t.Has(c) {
			return c, true
		}
	}
	return "", false
}

// Value returns the cell or nil when the column is absent.
func (t *Table) Value(column string, row int) any {
	col, ok := t.values[column]
	if !ok || row < 0 || row >= len(col) {
		return nil
	}
	return col[row]
}

// StringRecords renders the table as a header row followed by data rows,
// nulls as NaN.
func (t *Table) StringRecords() [][]string {
	records := make([][]string, 0, t.rows+1)
	records = append(records, append([]string(nil), t.columns...))
	for i := 0; i < t.rows; i++ {
		row := make([]string, len(t.columns))
		for j, c := range t.columns {
			v := t.values[c][i]
			if v == nil {
				row[j] = "NaN"
				continue
			}
			row[j] = AsString(v)
		}
		records = append(records, row)
	}
	return records
}

var digitRun = regexp.MustCompile(`\d+`)

// AsFloat coerces a cell to a number. Strings are parsed as a whole first,
// then by their first digit run ("14:30" gives 14).
func AsFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return finite(float64(x))
	case float64:
		return finite(x)
	case bool:
		return 0, false
	case []byte:
		return AsFloat(string(x))
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finite(f)
		}
		m := digitRun.FindString(s)
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsInt coerces a cell to an integer; fractional values and values outside
// the int32 range are rejected.
func AsInt(v any) (int, bool) {
	n, ok := AsInt64(v)
	return int(n), ok
}

func AsInt64(v any) (int64, bool) {
	f, ok := AsFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

func AsString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
