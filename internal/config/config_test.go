package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "https://covid19.workpointnews.com/api", cfg.WorkpointAPIHost)
	assert.Equal(t, "TH", cfg.DefaultCountry)

	// Optional feeds default to disabled.
	assert.Empty(t, cfg.CasesSheetURL)
	assert.Empty(t, cfg.DashboardURL)
	assert.Empty(t, cfg.HealthMapURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COVID_HTTP_ADDR", ":9090")
	t.Setenv("COVID_LOG_LEVEL", "debug")
	t.Setenv("COVID_UPSTREAM_TIMEOUT", "30s")
	t.Setenv("COVID_CASE_API_HOST", "http://csse.test")
	t.Setenv("COVID_DASHBOARD_URL", "http://ddc.test/page")
	t.Setenv("COVID_DEFAULT_COUNTRY", "JP")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "http://csse.test", cfg.CaseAPIHost)
	assert.Equal(t, "http://ddc.test/page", cfg.DashboardURL)
	assert.Equal(t, "JP", cfg.DefaultCountry)
}

func TestLoadValidation(t *testing.T) {
	t.Run("required host must not be empty", func(t *testing.T) {
		t.Setenv("COVID_CASE_API_HOST", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "COVID_CASE_API_HOST")
	})

	t.Run("timeouts must be positive", func(t *testing.T) {
		t.Setenv("COVID_SHUTDOWN_TIMEOUT", "0s")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "COVID_SHUTDOWN_TIMEOUT")
	})
}
