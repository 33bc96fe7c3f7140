package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, 1, cfg.CityID)
	assert.Equal(t, 2019, cfg.TripSchemaCutoff)
	assert.Equal(t, uint64(3), cfg.FetchMaxRetries)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Empty(t, cfg.ETLSchedule)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CITY_ID", "7")
	t.Setenv("FETCH_RPS", "0.5")
	t.Setenv("ETL_SCHEDULE", "0 3 * * *")
	t.Setenv("POP_HEADER_ROW", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.CityID)
	assert.Equal(t, 0.5, cfg.FetchRPS)
	assert.Equal(t, "0 3 * * *", cfg.ETLSchedule)
	assert.Equal(t, 4, cfg.PopHeaderRow)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("CITY_ID", "toronto")
	_, err := Load()
	assert.ErrorContains(t, err, "CITY_ID")

	t.Setenv("CITY_ID", "1")
	t.Setenv("FETCH_MAX_RETRIES", "-1")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("FETCH_MAX_RETRIES", "3")
	t.Setenv("WEATHER_START_YEAR", "2021")
	_, err = Load()
	assert.Error(t, err)
}
