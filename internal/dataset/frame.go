package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sia-analytics/internal/simulation"
)

// Column names of the passenger survey dataset.
const (
	DepartureDelayColumn = "Departure Delay in Minutes"
	ArrivalDelayColumn   = "Arrival Delay in Minutes"
	FlightDistanceColumn = "Flight Distance"
	SatisfactionColumn   = "satisfaction"
	ClassColumn          = "Class"
)

// ErrColumnNotFound is returned when a required column is absent.
// It wraps simulation.ErrData so callers can treat it as a data failure.
var ErrColumnNotFound = fmt.Errorf("%w: required column not found", simulation.ErrData)

// Frame is a read-only, row-oriented table of raw string cells.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewFrame builds a frame from a header and its rows. Column names are
// trimmed and columns whose name contains "unnamed" (any case) are dropped,
// together with their cells. Short rows are padded with empty cells.
func NewFrame(header []string, rows [][]string) *Frame {
	keep := make([]int, 0, len(header))
	columns := make([]string, 0, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if strings.Contains(strings.ToLower(name), "unnamed") {
			continue
		}
		keep = append(keep, i)
		columns = append(columns, name)
	}

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(keep))
		for j, src := range keep {
			if src < len(row) {
				cells[j] = row[src]
			}
		}
		out = append(out, cells)
	}

	return &Frame{columns: columns, index: index, rows: out}
}

// Columns returns the column names in file order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// HasColumn reports whether the frame carries the named column.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Value returns the raw cell of a row, or "" when the column is absent.
func (f *Frame) Value(row int, column string) string {
	idx, ok := f.index[column]
	if !ok || row < 0 || row >= len(f.rows) {
		return ""
	}
	return f.rows[row][idx]
}

// Float parses a cell as a number. Empty, non-numeric and non-finite cells
// report ok == false.
func (f *Frame) Float(row int, column string) (float64, bool) {
	return parseNumber(f.Value(row, column))
}

// Numeric coerces a column to numbers, dropping cells that do not parse.
func (f *Frame) Numeric(column string) ([]float64, error) {
	if !f.HasColumn(column) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	values := make([]float64, 0, len(f.rows))
	for i := range f.rows {
		if v, ok := f.Float(i, column); ok {
			values = append(values, v)
		}
	}
	return values, nil
}

// Strings returns the raw cells of a column.
func (f *Frame) Strings(column string) ([]string, error) {
	if !f.HasColumn(column) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}

	values := make([]string, len(f.rows))
	for i := range f.rows {
		values[i] = f.Value(i, column)
	}
	return values, nil
}

// HistoricalDelays extracts the departure delay sample used as the
// simulation baseline.
func HistoricalDelays(f *Frame) ([]float64, error) {
	delays, err := f.Numeric(DepartureDelayColumn)
	if errors.Is(err, ErrColumnNotFound) {
		return nil, fmt.Errorf("%w: required delay column not found (%q)", simulation.ErrData, DepartureDelayColumn)
	}
	return delays, err
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
