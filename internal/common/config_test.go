package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"HIVEST_ENV", "HIVEST_HOST", "HIVEST_PORT", "HIVEST_LOG_LEVEL",
		"GEMINI_API_KEY", "HIVEST_GEMINI_API_KEY", "GOOGLE_API_KEY",
		"HIVEST_GEMINI_MODEL", "HIVEST_ANALYSIS_TIMEFRAME",
	} {
		t.Setenv(name, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "ytd", cfg.Analysis.Timeframe)
	assert.Equal(t, "gemini-2.0-flash", cfg.Clients.Gemini.Model)
	assert.Equal(t, 180*time.Second, cfg.Clients.Gemini.GetTimeout())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "hivest.toml")
	content := `
environment = "production"

[server]
host = "127.0.0.1"
port = 9090

[clients.gemini]
api_key = "test-key"
model = "gemini-2.5-pro"
timeout = "60s"

[analysis]
timeframe = "1y"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "test-key", cfg.Clients.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.Clients.Gemini.Model)
	assert.Equal(t, 60*time.Second, cfg.Clients.Gemini.GetTimeout())
	assert.Equal(t, "1y", cfg.Analysis.Timeframe)
}

func TestLoadConfigSkipsMissingFiles(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HIVEST_ENV", "prod")
	t.Setenv("HIVEST_PORT", "3000")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("HIVEST_ANALYSIS_TIMEFRAME", "6m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.Clients.Gemini.APIKey)
	assert.Equal(t, "6m", cfg.Analysis.Timeframe)
}

func TestEmptyTimeframeFallsBack(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "hivest.toml")
	require.NoError(t, os.WriteFile(path, []byte("[analysis]\ntimeframe = \"  \"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ytd", cfg.Analysis.Timeframe)
}

func TestGeminiTimeoutFallback(t *testing.T) {
	c := GeminiConfig{Timeout: "not-a-duration"}
	assert.Equal(t, 180*time.Second, c.GetTimeout())
}
