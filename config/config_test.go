package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5260", cfg.Server.Port)
	assert.Equal(t, "database/auction.db", cfg.Database.Path)
	assert.Equal(t, 100, cfg.BatchScoring.BatchSize)
	assert.Equal(t, 2, cfg.BatchScoring.WorkerCount)
	assert.Equal(t, 3, cfg.BatchScoring.MaxRetries)
	assert.Equal(t, 360, cfg.Validation.RunIntervalMinutes)
	assert.Equal(t, 60, cfg.Validation.MonitorIntervalMinutes)
	assert.Equal(t, 50, cfg.Validation.SampleSize)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SCORE_BATCH_SIZE", "25")
	t.Setenv("VALIDATION_SAMPLE_SIZE", "10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 25, cfg.BatchScoring.BatchSize)
	assert.Equal(t, 10, cfg.Validation.SampleSize)
}

func TestKnownCounty(t *testing.T) {
	assert.True(t, KnownCounty("Baldwin"))
	assert.True(t, KnownCounty("Jefferson"))
	assert.False(t, KnownCounty("Atlantis"))
}
