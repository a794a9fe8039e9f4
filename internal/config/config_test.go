package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 8, cfg.CacheSize)
	assert.Equal(t, "accidents_map.png", cfg.MapOutput)
	assert.Equal(t, 6.0, cfg.MapWidth)
	assert.Equal(t, 6.0, cfg.MapHeight)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FARS_DATA_DIR", "/data/fars")
	t.Setenv("FARS_LOG_LEVEL", "debug")
	t.Setenv("FARS_LOG_FORMAT", "json")
	t.Setenv("FARS_WORKERS", "4")
	t.Setenv("FARS_MAP_OUTPUT", "out/map.svg")
	t.Setenv("FARS_MAP_WIDTH", "8")
	t.Setenv("FARS_MAP_HEIGHT", "5.5")
	t.Setenv("FARS_METRICS_FILE", "/var/lib/node_exporter/fars.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/fars", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "out/map.svg", cfg.MapOutput)
	assert.Equal(t, 8.0, cfg.MapWidth)
	assert.Equal(t, 5.5, cfg.MapHeight)
	assert.Equal(t, "/var/lib/node_exporter/fars.prom", cfg.MetricsFile)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Chdir(t.TempDir())

	for _, v := range []string{"0", "33"} {
		t.Setenv("FARS_WORKERS", v)
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FARS_WORKERS")
	}
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FARS_CACHE_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FARS_CACHE_SIZE")
}

func TestLoad_NonNumericWorkers(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FARS_WORKERS", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FARS_LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FARS_LOG_FORMAT")
}

func TestLoad_InvalidMapOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FARS_MAP_OUTPUT", "map.gif")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FARS_MAP_OUTPUT")
}

func TestLoad_InvalidMapSize(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FARS_MAP_WIDTH", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FARS_MAP_WIDTH")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, ".env", "FARS_DATA_DIR=/from/dotenv\nFARS_WORKERS=2\n")
	t.Setenv("FARS_WORKERS", "3") // environment wins over .env

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/from/dotenv", cfg.DataDir)
	assert.Equal(t, 3, cfg.Workers)
}
