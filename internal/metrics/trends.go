package metrics

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"rinkmetrics/domain/registration"
)

// Trends computes per-state summary statistics over the selected window:
// mean, median, min, max, the peak year, and a least-squares slope of totals
// over years. States with no records in the window are skipped; the slope is
// only reported when the window holds at least two observations.
func (e *Engine) Trends(table *registration.Table, sel registration.Selection) []registration.StateTrend {
	filtered := e.Filter(table, sel)

	byState := make(map[string][]registration.Record)
	for _, rec := range filtered {
		byState[rec.State] = append(byState[rec.State], rec)
	}

	out := make([]registration.StateTrend, 0, len(sel.States))
	for _, state := range sel.States {
		records := byState[state]
		if len(records) == 0 {
			continue
		}

		years := make([]float64, len(records))
		totals := make([]float64, len(records))
		peakYear, peakTotal := records[0].Year, records[0].Total
		for i, rec := range records {
			years[i] = float64(rec.Year)
			totals[i] = float64(rec.Total)
			if rec.Total > peakTotal {
				peakYear, peakTotal = rec.Year, rec.Total
			}
		}

		mean, _ := stats.Mean(totals)
		median, _ := stats.Median(totals)
		min, _ := stats.Min(totals)
		max, _ := stats.Max(totals)

		trend := registration.StateTrend{
			State:    state,
			Mean:     mean,
			Median:   median,
			Min:      min,
			Max:      max,
			PeakYear: peakYear,
		}
		if len(records) >= 2 {
			_, slope := stat.LinearRegression(years, totals, nil, false)
			trend.Slope = slope
			trend.HasSlope = true
		}

		out = append(out, trend)
	}
	return out
}
