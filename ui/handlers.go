package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rinkmetrics/domain/registration"
	"rinkmetrics/internal/statemap"
)

// metricCard is one growth card on the dashboard
type metricCard struct {
	State       string
	LatestTotal int
	HasLatest   bool
	Growth      string
	Valid       bool
}

// dashboardData feeds the index template
type dashboardData struct {
	MinYear   int
	MaxYear   int
	FromYear  int
	ToYear    int
	AllStates []string
	Selected  []string
	Cards     []metricCard
	Trends    []registration.StateTrend
	Records   int
}

// handleIndex renders the dashboard with the current (or default) selection
func (s *Server) handleIndex(c *gin.Context) {
	table, err := s.store.Get(s.config.DataFile)
	if err != nil {
		s.logger.Error("[UI] Failed to load registration data: %v", err)
		c.String(http.StatusInternalServerError, "Failed to load registration data")
		return
	}

	sel := s.parseSelection(c, table)
	s.renderTemplate(c, "index.html", s.buildDashboardData(table, sel))
}

// handleMetricsFragment re-renders only the growth cards for the selection
func (s *Server) handleMetricsFragment(c *gin.Context) {
	table, err := s.store.Get(s.config.DataFile)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load registration data")
		return
	}

	sel := s.parseSelection(c, table)
	s.renderTemplate(c, "metric_cards.html", s.buildDashboardData(table, sel))
}

// handleSeriesFragment re-renders the filtered series table for the selection
func (s *Server) handleSeriesFragment(c *gin.Context) {
	table, err := s.store.Get(s.config.DataFile)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load registration data")
		return
	}

	sel := s.parseSelection(c, table)
	s.renderTemplate(c, "series_table.html", gin.H{
		"Selection": sel,
		"Records":   s.engine.Filter(table, sel),
	})
}

// handleAbout renders the data-source notes from embedded Markdown
func (s *Server) handleAbout(c *gin.Context) {
	notes, err := aboutHTML()
	if err != nil {
		s.logger.Error("[UI] Failed to render about page: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render notes")
		return
	}
	s.renderTemplate(c, "about.html", gin.H{"Notes": notes})
}

// buildDashboardData assembles everything the index template needs from one
// pass over (table, selection)
func (s *Server) buildDashboardData(table *registration.Table, sel registration.Selection) dashboardData {
	minYear, maxYear, _ := table.YearBounds()

	growth := s.engine.Growth(table, sel)
	cards := make([]metricCard, len(growth))
	for i, g := range growth {
		_, hasLatest := table.Lookup(g.State, sel.ToYear)
		cards[i] = metricCard{
			State:       g.State,
			LatestTotal: g.LatestTotal,
			HasLatest:   hasLatest,
			Growth:      g.FormatRatio(),
			Valid:       g.Valid,
		}
	}

	return dashboardData{
		MinYear:   minYear,
		MaxYear:   maxYear,
		FromYear:  sel.FromYear,
		ToYear:    sel.ToYear,
		AllStates: table.States(),
		Selected:  sel.States,
		Cards:     cards,
		Trends:    s.engine.Trends(table, sel),
		Records:   len(s.engine.Filter(table, sel)),
	}
}

// parseSelection reads from/to/states query parameters, falling back to the
// table's full year range and the default state selection. Bad values
// degrade to defaults — a typo in the URL should never 500 a dashboard page.
func (s *Server) parseSelection(c *gin.Context, table *registration.Table) registration.Selection {
	minYear, maxYear, _ := table.YearBounds()
	sel := registration.Selection{FromYear: minYear, ToYear: maxYear}

	if raw := c.Query("from"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			sel.FromYear = year
		}
	}
	if raw := c.Query("to"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			sel.ToYear = year
		}
	}
	if sel.FromYear > sel.ToYear {
		sel.FromYear, sel.ToYear = sel.ToYear, sel.FromYear
	}

	if raw, ok := c.GetQuery("states"); ok {
		for _, part := range strings.Split(raw, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if code, found := statemap.Code(trimmed); found {
				sel.States = append(sel.States, code)
			} else {
				sel.States = append(sel.States, strings.ToUpper(trimmed))
			}
		}
	} else {
		sel.States = append(sel.States, DefaultStates...)
	}

	return sel
}
