// Package registration holds the core data model for USA Hockey player
// registration counts: one observation per (state, year), plus the ephemeral
// filter selection and the metrics derived from it.
package registration

import (
	"fmt"
	"sort"
)

// Record is a single observation: the number of registered players for one
// state in one season year.
type Record struct {
	State string `json:"state"`
	Year  int    `json:"year"`
	Total int    `json:"total"`
}

// Table is a read-only collection of records with at most one record per
// (state, year) key. It is built once at load time and never mutated, so it
// is safe to share across concurrent readers.
type Table struct {
	records []Record
	index   map[tableKey]int
}

type tableKey struct {
	state string
	year  int
}

// NewTable builds a table from records. When the same (state, year) key
// appears more than once the first occurrence wins; later duplicates are
// dropped. Cells with no parsable total should simply not be passed in —
// absence of a record is the "missing" representation.
func NewTable(records []Record) *Table {
	t := &Table{
		records: make([]Record, 0, len(records)),
		index:   make(map[tableKey]int, len(records)),
	}
	for _, rec := range records {
		key := tableKey{state: rec.State, year: rec.Year}
		if _, exists := t.index[key]; exists {
			continue
		}
		t.index[key] = len(t.records)
		t.records = append(t.records, rec)
	}
	return t
}

// Len returns the number of records in the table
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns a copy of the underlying records. Callers must not assume
// any particular ordering.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Lookup returns the total for (state, year) and whether a record exists
func (t *Table) Lookup(state string, year int) (int, bool) {
	idx, ok := t.index[tableKey{state: state, year: year}]
	if !ok {
		return 0, false
	}
	return t.records[idx].Total, true
}

// States returns the distinct states present in the table, sorted
func (t *Table) States() []string {
	seen := make(map[string]bool)
	states := make([]string, 0)
	for _, rec := range t.records {
		if !seen[rec.State] {
			seen[rec.State] = true
			states = append(states, rec.State)
		}
	}
	sort.Strings(states)
	return states
}

// YearBounds returns the minimum and maximum year present in the table.
// ok is false for an empty table.
func (t *Table) YearBounds() (min, max int, ok bool) {
	if len(t.records) == 0 {
		return 0, 0, false
	}
	min, max = t.records[0].Year, t.records[0].Year
	for _, rec := range t.records[1:] {
		if rec.Year < min {
			min = rec.Year
		}
		if rec.Year > max {
			max = rec.Year
		}
	}
	return min, max, true
}

// Selection is the ephemeral, UI-driven filter: an inclusive year range and
// a set of selected states. It is recreated on every interaction and never
// persisted.
type Selection struct {
	FromYear int      `json:"from_year"`
	ToYear   int      `json:"to_year"`
	States   []string `json:"states"`
}

// StateSet returns the selected states as a membership set
func (s Selection) StateSet() map[string]bool {
	set := make(map[string]bool, len(s.States))
	for _, st := range s.States {
		set[st] = true
	}
	return set
}

// Validate checks the internal consistency of the selection. An empty state
// set is valid; a reversed year range is not.
func (s Selection) Validate() error {
	if s.FromYear > s.ToYear {
		return fmt.Errorf("from_year %d is after to_year %d", s.FromYear, s.ToYear)
	}
	return nil
}

// GrowthMetric compares a state's total at the end of the selected window
// against its total at the start. Valid is false when either endpoint has no
// record or the base total is zero; the ratio is then meaningless and must
// be presented as "n/a" rather than computed.
type GrowthMetric struct {
	State       string  `json:"state"`
	BaseTotal   int     `json:"base_total"`
	LatestTotal int     `json:"latest_total"`
	Ratio       float64 `json:"ratio"`
	Valid       bool    `json:"valid"`
}

// FormatRatio renders the growth ratio with fixed two-decimal precision and
// a multiplier suffix, e.g. "2.50x". Invalid metrics render as "n/a".
func (g GrowthMetric) FormatRatio() string {
	if !g.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", g.Ratio)
}

// StateTrend carries per-state summary statistics over the selected window
type StateTrend struct {
	State    string  `json:"state"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	PeakYear int     `json:"peak_year"`
	// Slope is the least-squares change in registrations per year.
	// HasSlope is false when the window holds fewer than two observations.
	Slope    float64 `json:"slope"`
	HasSlope bool    `json:"has_slope"`
}
