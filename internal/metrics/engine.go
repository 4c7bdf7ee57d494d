// Package metrics derives everything the dashboard displays from the loaded
// registration table and the current filter selection: the filtered
// long-form subset, per-state growth ratios, and summary trends. All
// computations are pure functions of (table, selection) and are recomputed
// on every interaction.
package metrics

import (
	"sort"

	"rinkmetrics/domain/registration"
)

// Engine computes filtered views and derived metrics
type Engine struct{}

// NewEngine creates a new metric engine
func NewEngine() *Engine {
	return &Engine{}
}

// Filter returns the records whose state is in the selection and whose year
// falls inside the inclusive [FromYear, ToYear] range, sorted by state then
// year for stable chart series. An empty state set yields an empty slice —
// a valid "no selection" result, not an error.
func (e *Engine) Filter(table *registration.Table, sel registration.Selection) []registration.Record {
	selected := sel.StateSet()
	if len(selected) == 0 {
		return []registration.Record{}
	}

	filtered := make([]registration.Record, 0)
	for _, rec := range table.Records() {
		if !selected[rec.State] {
			continue
		}
		if rec.Year < sel.FromYear || rec.Year > sel.ToYear {
			continue
		}
		filtered = append(filtered, rec)
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].State != filtered[j].State {
			return filtered[i].State < filtered[j].State
		}
		return filtered[i].Year < filtered[j].Year
	})
	return filtered
}

// Growth computes one metric per selected state, in selection order.
// Base is the total at FromYear, latest the total at ToYear. Either endpoint
// missing, or a zero base, makes the metric invalid ("n/a") — the ratio is
// never computed from a zero or missing denominator. FromYear == ToYear
// needs no special case: base and latest coincide and the ratio is 1.00.
func (e *Engine) Growth(table *registration.Table, sel registration.Selection) []registration.GrowthMetric {
	out := make([]registration.GrowthMetric, 0, len(sel.States))
	for _, state := range sel.States {
		metric := registration.GrowthMetric{State: state}

		base, baseOK := table.Lookup(state, sel.FromYear)
		latest, latestOK := table.Lookup(state, sel.ToYear)
		if baseOK {
			metric.BaseTotal = base
		}
		if latestOK {
			metric.LatestTotal = latest
		}
		if baseOK && latestOK && base != 0 {
			metric.Ratio = float64(latest) / float64(base)
			metric.Valid = true
		}

		out = append(out, metric)
	}
	return out
}
