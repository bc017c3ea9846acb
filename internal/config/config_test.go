package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "oiltrack.db", cfg.Store.DBFile)
	assert.Equal(t, "oiltrack.log", cfg.Store.LogFile)
	assert.Equal(t, 50, cfg.Ledger.HistoryLimit)
	assert.NotEmpty(t, cfg.Store.DataDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATA_DIR", "/tmp/oiltrack-test")
	t.Setenv("HISTORY_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Ledger.HistoryLimit)
	assert.Equal(t, filepath.Join("/tmp/oiltrack-test", "oiltrack.db"), cfg.DBPath())
	assert.Equal(t, filepath.Join("/tmp/oiltrack-test", "oiltrack.log"), cfg.LogPath())
}

func TestLoad_RejectsExtensionlessDBFile(t *testing.T) {
	t.Setenv("DB_FILE", "oiltrack")

	_, err := Load()
	require.Error(t, err)
}
