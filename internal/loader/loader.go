// Package loader normalizes raw registration sources into the tidy
// (State, Year, Total) table the rest of the system consumes. It accepts two
// source layouts: long form (State,Year,Total columns, totals possibly
// thousands-separated) and wide form (State plus one column per year, which
// gets melted into per-year records).
package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"rinkmetrics/adapters/tabular"
	"rinkmetrics/domain/registration"
	"rinkmetrics/internal"
	"rinkmetrics/internal/errors"
)

// Shape identifies the layout of the raw source
type Shape string

const (
	// ShapeAuto sniffs the header row: a header containing both Year and
	// Total columns is long form, otherwise integer-named columns mean wide.
	ShapeAuto Shape = "auto"
	ShapeLong Shape = "long"
	ShapeWide Shape = "wide"
)

// Year columns outside this window are treated as ordinary columns, not
// melt targets.
const (
	minYearColumn = 1900
	maxYearColumn = 2100
)

// ParseShape parses a configuration value into a Shape
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeAuto, Shape(""):
		return ShapeAuto, nil
	case ShapeLong:
		return ShapeLong, nil
	case ShapeWide:
		return ShapeWide, nil
	default:
		return "", errors.ConfigInvalid(fmt.Sprintf("unknown data shape %q (want auto, long or wide)", s))
	}
}

// Loader turns raw tabular data into registration tables
type Loader struct {
	logger *internal.Logger
}

// NewLoader creates a new loader
func NewLoader() *Loader {
	return &Loader{logger: internal.DefaultLogger}
}

// Load reads the source at path and normalizes it. A missing or unreadable
// file is the only fatal condition; per-row problems are dropped and logged.
func (l *Loader) Load(path string, shape Shape) (*registration.Table, error) {
	data, err := tabular.NewReader(path).Read()
	if err != nil {
		return nil, errors.Wrap(errors.DataSourceMissing(path), err.Error())
	}
	return l.Normalize(data, shape)
}

// Normalize reshapes raw tabular data into a registration table
func (l *Loader) Normalize(data *tabular.Data, shape Shape) (*registration.Table, error) {
	if data == nil || len(data.Headers) == 0 {
		return nil, errors.DataSourceInvalid("source has no header row")
	}

	if shape == ShapeAuto || shape == "" {
		shape = detectShape(data.Headers)
	}

	switch shape {
	case ShapeLong:
		return l.normalizeLong(data)
	case ShapeWide:
		return l.normalizeWide(data)
	default:
		return nil, errors.DataSourceInvalid(fmt.Sprintf("cannot normalize shape %q", shape))
	}
}

// detectShape sniffs the header row. Long form requires both a Year and a
// Total column; otherwise the presence of any year-named column means wide.
func detectShape(headers []string) Shape {
	hasYear, hasTotal, hasYearColumns := false, false, false
	for _, h := range headers {
		switch strings.ToLower(h) {
		case "year":
			hasYear = true
		case "total":
			hasTotal = true
		}
		if _, ok := parseYearHeader(h); ok {
			hasYearColumns = true
		}
	}
	if hasYear && hasTotal {
		return ShapeLong
	}
	if hasYearColumns {
		return ShapeWide
	}
	return ShapeLong
}

// normalizeLong handles sources that are already one row per (state, year)
func (l *Loader) normalizeLong(data *tabular.Data) (*registration.Table, error) {
	stateCol := findHeader(data.Headers, "state")
	yearCol := findHeader(data.Headers, "year")
	totalCol := findHeader(data.Headers, "total")
	if stateCol == "" || yearCol == "" || totalCol == "" {
		return nil, errors.DataSourceInvalid(
			fmt.Sprintf("long-form source needs State, Year and Total columns, got %v", data.Headers))
	}

	records := make([]registration.Record, 0, len(data.Rows))
	dropped, missing := 0, 0
	for _, row := range data.Rows {
		state := strings.TrimSpace(row[stateCol])
		if state == "" {
			dropped++
			continue
		}
		year, ok := parseCount(row[yearCol])
		if !ok {
			// A row that cannot be keyed by year carries no usable cell.
			dropped++
			continue
		}
		total, ok := parseCount(row[totalCol])
		if !ok {
			// Unparseable total is a missing cell, never a zero.
			missing++
			continue
		}
		records = append(records, registration.Record{State: state, Year: year, Total: total})
	}

	l.logRejects(dropped, missing)
	return registration.NewTable(records), nil
}

// normalizeWide melts one-column-per-year sources into long form. Every
// integer-named header inside the year window becomes (Year, Total) pairs;
// other columns are ignored apart from State.
func (l *Loader) normalizeWide(data *tabular.Data) (*registration.Table, error) {
	stateCol := findHeader(data.Headers, "state")
	if stateCol == "" {
		return nil, errors.DataSourceInvalid(
			fmt.Sprintf("wide-form source needs a State column, got %v", data.Headers))
	}

	yearCols := make(map[string]int)
	for _, h := range data.Headers {
		if year, ok := parseYearHeader(h); ok {
			yearCols[h] = year
		}
	}
	if len(yearCols) == 0 {
		return nil, errors.DataSourceInvalid("wide-form source has no year columns")
	}

	records := make([]registration.Record, 0, len(data.Rows)*len(yearCols))
	dropped, missing := 0, 0
	for _, row := range data.Rows {
		state := strings.TrimSpace(row[stateCol])
		if state == "" {
			dropped++
			continue
		}
		for header, year := range yearCols {
			total, ok := parseCount(row[header])
			if !ok {
				missing++
				continue
			}
			records = append(records, registration.Record{State: state, Year: year, Total: total})
		}
	}

	l.logRejects(dropped, missing)
	return registration.NewTable(records), nil
}

func (l *Loader) logRejects(dropped, missing int) {
	if dropped > 0 {
		l.logger.Warn("[Loader] Dropped %d malformed rows", dropped)
	}
	if missing > 0 {
		l.logger.Debug("[Loader] %d cells had no parsable total and were marked missing", missing)
	}
}

// findHeader locates a header by case-insensitive name and returns its exact
// spelling, or "" when absent
func findHeader(headers []string, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h, name) {
			return h
		}
	}
	return ""
}

// parseCount parses a numeric cell, tolerating thousands separators and
// surrounding whitespace. ok is false for anything that still fails to
// parse after cleaning — such cells are missing data, not zeroes.
func parseCount(raw string) (int, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(cleaned); err == nil {
		return n, true
	}
	// Some exports write counts as floats ("12345.0").
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// parseYearHeader reports whether a column header names a year
func parseYearHeader(h string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || year < minYearColumn || year > maxYearColumn {
		return 0, false
	}
	return year, true
}
