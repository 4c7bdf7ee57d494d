package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinkmetrics/internal/loader"
)

const testCSV = `State,Year,Total
MA,2020,"1,000"
MA,2022,"1,800"
MA,2024,"2,500"
MN,2020,"55,000"
MN,2024,"60,000"
NJ,2024,"34,000"
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registration.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return NewServer(loader.NewStore(loader.NewLoader(), loader.ShapeAuto), path)
}

func doJSON(t *testing.T, s *Server, url string, wantStatus int) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	require.Equal(t, wantStatus, rec.Code, "body: %s", rec.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/health", http.StatusOK)
	assert.Equal(t, "ok", body["status"])
}

func TestHandleMeta(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/meta", http.StatusOK)

	assert.Equal(t, float64(2020), body["min_year"])
	assert.Equal(t, float64(2024), body["max_year"])
	assert.ElementsMatch(t, []interface{}{"MA", "MN", "NJ"}, body["states"])
}

func TestHandleSeriesFiltered(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/series?from=2020&to=2024&states=MA", http.StatusOK)

	assert.Equal(t, float64(3), body["count"])
	records := body["records"].([]interface{})
	for _, raw := range records {
		rec := raw.(map[string]interface{})
		assert.Equal(t, "MA", rec["state"])
	}
}

func TestHandleSeriesEmptySelection(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/series?from=2020&to=2024&states=", http.StatusOK)
	assert.Equal(t, float64(0), body["count"])
}

func TestHandleSeriesBadYear(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/series?from=abc", http.StatusBadRequest)
	assert.Contains(t, body["error"], "from")
}

func TestHandleSeriesReversedRange(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, "/api/registration/series?from=2024&to=2020&states=MA", http.StatusBadRequest)
}

func TestHandleGrowthScenarios(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/growth?from=2020&to=2024&states=MA,NJ", http.StatusOK)

	metrics := body["metrics"].([]interface{})
	require.Len(t, metrics, 2)

	ma := metrics[0].(map[string]interface{})
	assert.Equal(t, "MA", ma["state"])
	assert.Equal(t, true, ma["valid"])
	assert.InDelta(t, 2.5, ma["ratio"].(float64), 1e-9)
	assert.Equal(t, "2.50x", ma["display"])

	// NJ has no 2020 record: n/a regardless of its 2024 total.
	nj := metrics[1].(map[string]interface{})
	assert.Equal(t, "NJ", nj["state"])
	assert.Equal(t, false, nj["valid"])
	assert.Equal(t, "n/a", nj["display"])
}

func TestHandleGrowthFullNameNormalized(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/growth?from=2020&to=2024&states=massachusetts", http.StatusOK)

	metrics := body["metrics"].([]interface{})
	require.Len(t, metrics, 1)
	assert.Equal(t, "MA", metrics[0].(map[string]interface{})["state"])
}

func TestHandleChoropleth(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/choropleth", http.StatusOK)

	// Defaults to the latest year; MA=25, MN=27, NJ=34 all have 2024 data.
	assert.Equal(t, float64(2024), body["year"])
	regions := body["regions"].([]interface{})
	require.Len(t, regions, 3)

	ids := make(map[string]float64)
	for _, raw := range regions {
		region := raw.(map[string]interface{})
		ids[region["id"].(string)] = region["total"].(float64)
	}
	assert.Equal(t, float64(2500), ids["25"])
	assert.Equal(t, float64(34000), ids["34"])
}

func TestHandleChoroplethSparseYear(t *testing.T) {
	s := newTestServer(t)
	body := doJSON(t, s, "/api/registration/choropleth?year=2022", http.StatusOK)

	// Only MA has a 2022 record; the others are gaps, not zeroes.
	regions := body["regions"].([]interface{})
	require.Len(t, regions, 1)
	assert.Equal(t, "25", regions[0].(map[string]interface{})["id"])
}

func TestHandleChoroplethBadYear(t *testing.T) {
	s := newTestServer(t)
	doJSON(t, s, "/api/registration/choropleth?year=soon", http.StatusBadRequest)
}
