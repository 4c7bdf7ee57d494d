package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rinkmetrics/internal/loader"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_PORT", "")
	t.Setenv("DATA_FILE", "")
	t.Setenv("DATA_SHAPE", "")
	t.Setenv("GIN_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "8081", cfg.API.Port)
	assert.Equal(t, "data/registration_by_state.csv", cfg.Data.File)
	assert.Equal(t, loader.ShapeAuto, cfg.Data.Shape)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "/srv/data/registrations.xlsx")
	t.Setenv("DATA_SHAPE", "wide")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/srv/data/registrations.xlsx", cfg.Data.File)
	assert.Equal(t, loader.ShapeWide, cfg.Data.Shape)
}

func TestLoadRejectsUnknownShape(t *testing.T) {
	t.Setenv("DATA_SHAPE", "diagonal")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagonal")
}
