package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 1000, c.FlushIntervalMS)
	assert.Equal(t, 100, c.MaxBatchSize)
	assert.Equal(t, 30000, c.FlushBudgetMS)
}

func TestConfigValidate(t *testing.T) {
	var c Config
	c.validate()
	assert.Equal(t, DefaultConfig(), c)

	c = Config{FlushIntervalMS: 50, MaxBatchSize: 500, FlushBudgetMS: 100}
	c.validate()
	assert.Equal(t, 50, c.FlushIntervalMS)
	assert.Equal(t, 100, c.MaxBatchSize, "batch size clamps to the service cap")
	assert.Equal(t, 100, c.FlushBudgetMS)

	assert.Equal(t, 50*time.Millisecond, c.flushInterval())
	assert.Equal(t, 100*time.Millisecond, c.flushBudget())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"endpoint: http://localhost:8000\nregion: eu-west-1\nflush_interval_ms: 250\nmax_batch_size: 25\n",
	), 0o600))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.Endpoint)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, 250, c.FlushIntervalMS)
	assert.Equal(t, 25, c.MaxBatchSize)
	assert.Equal(t, 30000, c.FlushBudgetMS, "unset fields take defaults")
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
