// Package ui serves the registration dashboard: the page shell, HTMX
// fragments for the metric cards and series table, and the static assets
// that draw the chart and choropleth from the JSON API.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"rinkmetrics/internal"
	"rinkmetrics/internal/loader"
	"rinkmetrics/internal/metrics"
)

//go:embed templates/*.html templates/fragments/*.html static/* content/*
var embeddedFiles embed.FS

// DefaultStates pre-populates the multiselect on first load
var DefaultStates = []string{"MA", "MN", "NY", "NJ", "OH", "IL"}

// Config holds UI application configuration
type Config struct {
	Port     string
	GinMode  string
	DataFile string
}

// Server represents the dashboard web server
type Server struct {
	router    *gin.Engine
	config    Config
	store     *loader.Store
	engine    *metrics.Engine
	templates *template.Template
	logger    *internal.Logger
}

// NewServer creates the dashboard server. The JSON API handler is mounted
// under /api so the page's scripts share an origin with the data.
func NewServer(config Config, store *loader.Store, apiHandler http.Handler) (*Server, error) {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"mul": func(a, b float64) float64 { return a * b },
		// Format totals the way the source prints them: 12,345.
		"commas": formatThousands,
		"upper":  strings.ToUpper,
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles,
		"templates/*.html", "templates/fragments/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		config:    config,
		store:     store,
		engine:    metrics.NewEngine(),
		templates: templates,
		logger:    internal.DefaultLogger,
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes(apiHandler)
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes(apiHandler http.Handler) {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/about", s.handleAbout)

	// HTMX fragments, recomputed on every selection change
	s.router.GET("/fragments/metrics", s.handleMetricsFragment)
	s.router.GET("/fragments/series", s.handleSeriesFragment)

	if apiHandler != nil {
		s.router.Any("/api/*path", gin.WrapH(apiHandler))
	}

	staticFS := http.FS(embeddedFiles)
	s.router.GET("/static/*filepath", func(c *gin.Context) {
		c.FileFromFS("static/"+strings.TrimPrefix(c.Param("filepath"), "/"), staticFS)
	})
}

// Start starts the dashboard server
func (s *Server) Start() error {
	addr := ":" + s.config.Port
	s.logger.Info("[UI] Registration dashboard on http://localhost%s", addr)
	return s.router.Run(addr)
}

// renderTemplate executes a template into the response
func (s *Server) renderTemplate(c *gin.Context, name string, data interface{}) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		s.logger.Error("[UI] Template %s: %v", name, err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// formatThousands renders 12345 as "12,345"
func formatThousands(n int) string {
	raw := strconv.Itoa(n)
	negative := strings.HasPrefix(raw, "-")
	if negative {
		raw = raw[1:]
	}

	var b strings.Builder
	for i, digit := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
