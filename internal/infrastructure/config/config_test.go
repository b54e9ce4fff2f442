package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.Equal(t, 30*time.Second, cfg.Browser.RenderTimeout)
	assert.Empty(t, cfg.Browser.RemoteURL)

	assert.Equal(t, "cache", cfg.Cache.Dir)
	assert.Equal(t, "jobs", cfg.Artifacts.Dir)
	assert.Empty(t, cfg.Artifacts.S3Endpoint)

	assert.Equal(t, "claude", cfg.Generation.DefaultProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Generation.GeminiModel)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                   "9000",
		"LOG_LEVEL":              "debug",
		"LOG_DEV":                "true",
		"RATE_LIMIT_ENABLED":     "false",
		"BROWSER_REMOTE_URL":     "ws://chrome:9222/devtools/browser/abc",
		"BROWSER_RENDER_TIMEOUT": "45s",
		"CACHE_DIR":              "/var/cache/clones",
		"CACHE_LRU_SIZE":         "16",
		"ARTIFACT_S3_ENDPOINT":   "minio:9000",
		"ANTHROPIC_API_KEY":      "sk-test",
		"GEMINI_MAX_TOKENS":      "2048",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "ws://chrome:9222/devtools/browser/abc", cfg.Browser.RemoteURL)
	assert.Equal(t, 45*time.Second, cfg.Browser.RenderTimeout)
	assert.Equal(t, "/var/cache/clones", cfg.Cache.Dir)
	assert.Equal(t, 16, cfg.Cache.LRUSize)
	assert.Equal(t, "minio:9000", cfg.Artifacts.S3Endpoint)
	assert.Equal(t, "sk-test", cfg.Generation.AnthropicAPIKey)
	assert.Equal(t, int32(2048), cfg.Generation.GeminiTokens)

	// untouched sections keep defaults
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "claude", cfg.Generation.DefaultProvider)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("BROWSER_RENDER_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)

	cfg := LoadOrDefault()
	assert.Equal(t, 30*time.Second, cfg.Browser.RenderTimeout)
}
