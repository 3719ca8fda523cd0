package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ValidateConfig(t *testing.T) {
	t.Parallel()

	t.Run("invalid listen address", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.ListenAddress = "rando-address" // doesn't follow the format

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidListenAddress)
	})

	t.Run("missing API base URL", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.APIBaseURL = ""

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidAPIBaseURL)
	})

	t.Run("invalid refresh interval", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.RefreshInterval = "sometimes"

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidRefreshInterval)
	})

	t.Run("invalid probe interval", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.ProbeInterval = "often"

		assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidProbeInterval)
	})

	t.Run("valid configuration", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateConfig(DefaultConfig()))
	})
}

func TestConfig_IntervalDurations(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	assert.Equal(t, 10*time.Minute, cfg.RefreshIntervalDuration())
	assert.Equal(t, 30*time.Second, cfg.ProbeIntervalDuration())

	// Unparsable values fall back to the defaults
	cfg.RefreshInterval = "sometimes"
	cfg.ProbeInterval = "often"

	assert.Equal(t, 10*time.Minute, cfg.RefreshIntervalDuration())
	assert.Equal(t, 30*time.Second, cfg.ProbeIntervalDuration())
}

func TestConfig_Read(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg, err := Read("definitely-missing.toml")

		assert.Nil(t, cfg)
		assert.Error(t, err)
	})

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		content := `
listen_address = "127.0.0.1:9000"
api_base_url = "http://localhost:8000"
refresh_interval = "5m"
probe_interval = "15s"

[cors_config]
allowed_origins = ["https://example.com"]
allowed_methods = ["GET"]
allowed_headers = ["*"]
`

		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Read(path)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddress)
		assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
		assert.Equal(t, "5m", cfg.RefreshInterval)
		assert.Equal(t, "15s", cfg.ProbeInterval)

		require.NotNil(t, cfg.CORSConfig)
		assert.Equal(t, []string{"https://example.com"}, cfg.CORSConfig.AllowedOrigins)
	})
}
