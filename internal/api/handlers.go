package api

import (
	"net/http"
	"strconv"
	"strings"

	"rinkmetrics/domain/registration"
	"rinkmetrics/internal/statemap"
)

// handleHealth reports liveness and whether the source has been loaded yet
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"loaded": s.store.Loaded(s.dataFile),
	})
}

// handleMeta returns the year bounds and the states available for selection
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	table, err := s.store.Get(s.dataFile)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load registration data")
		return
	}

	minYear, maxYear, _ := table.YearBounds()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"min_year": minYear,
		"max_year": maxYear,
		"states":   table.States(),
		"records":  table.Len(),
	})
}

// handleSeries returns the filtered long-form rows for the line chart
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	table, sel, ok := s.tableAndSelection(w, r)
	if !ok {
		return
	}

	records := s.engine.Filter(table, sel)
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"selection": sel,
		"records":   records,
		"count":     len(records),
	})
}

// growthPayload is one metric card: totals, ratio, and its display form
type growthPayload struct {
	registration.GrowthMetric
	Display string `json:"display"`
}

// handleGrowth returns per-state growth metrics and summary trends
func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	table, sel, ok := s.tableAndSelection(w, r)
	if !ok {
		return
	}

	growth := s.engine.Growth(table, sel)
	payload := make([]growthPayload, len(growth))
	for i, g := range growth {
		payload[i] = growthPayload{GrowthMetric: g, Display: g.FormatRatio()}
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"selection": sel,
		"metrics":   payload,
		"trends":    s.engine.Trends(table, sel),
	})
}

// choroplethRegion is one region of the map join: the external geometry is
// keyed by FIPS id, so states without a mapping are skipped silently
type choroplethRegion struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Total int    `json:"total"`
}

// handleChoropleth returns totals keyed by FIPS region id for a single year
// (defaulting to the latest year in the table), covering every state present
// in the source rather than only the selection
func (s *Server) handleChoropleth(w http.ResponseWriter, r *http.Request) {
	table, err := s.store.Get(s.dataFile)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load registration data")
		return
	}

	_, maxYear, hasYears := table.YearBounds()
	year := maxYear
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "year must be an integer")
			return
		}
		year = parsed
	} else if !hasYears {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"year": 0, "regions": []choroplethRegion{}})
		return
	}

	regions := make([]choroplethRegion, 0)
	for _, state := range table.States() {
		total, ok := table.Lookup(state, year)
		if !ok {
			continue
		}
		id, ok := statemap.RegionID(state)
		if !ok {
			// Unmapped states are a non-fatal display gap.
			continue
		}
		regions = append(regions, choroplethRegion{ID: id, State: state, Total: total})
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":    year,
		"regions": regions,
	})
}

// tableAndSelection loads the table and parses the filter selection from
// query parameters, writing the error response itself when either fails
func (s *Server) tableAndSelection(w http.ResponseWriter, r *http.Request) (*registration.Table, registration.Selection, bool) {
	table, err := s.store.Get(s.dataFile)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load registration data")
		return nil, registration.Selection{}, false
	}

	sel, err := parseSelection(r, table)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, registration.Selection{}, false
	}
	return table, sel, true
}

// parseSelection builds a Selection from from/to/states query parameters,
// defaulting the year range to the table's bounds. States are normalized to
// USPS codes where recognized; unknown values pass through untouched so a
// typo'd state degrades to an empty series instead of an error.
func parseSelection(r *http.Request, table *registration.Table) (registration.Selection, error) {
	minYear, maxYear, _ := table.YearBounds()
	sel := registration.Selection{FromYear: minYear, ToYear: maxYear}

	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return sel, strconvError("from", raw)
		}
		sel.FromYear = year
	}
	if raw := q.Get("to"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return sel, strconvError("to", raw)
		}
		sel.ToYear = year
	}

	for _, raw := range strings.Split(q.Get("states"), ",") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if code, ok := statemap.Code(trimmed); ok {
			sel.States = append(sel.States, code)
		} else {
			sel.States = append(sel.States, strings.ToUpper(trimmed))
		}
	}

	if err := sel.Validate(); err != nil {
		return sel, err
	}
	return sel, nil
}

type selectionError struct {
	param string
	value string
}

func (e selectionError) Error() string {
	return "query parameter " + e.param + " must be an integer, got " + strconv.Quote(e.value)
}

func strconvError(param, value string) error {
	return selectionError{param: param, value: value}
}
