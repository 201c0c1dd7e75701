// Package common provides shared utilities for Hivest
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hivest/hivest/internal/models"
)

// Config holds all configuration for Hivest
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Clients     ClientsConfig  `toml:"clients"`
	Analysis    AnalysisConfig `toml:"analysis"`
	Logging     LoggingConfig  `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 180 * time.Second
	}
	return d
}

// AnalysisConfig holds analysis behavior configuration
type AnalysisConfig struct {
	// Timeframe is the analysis window label passed to the LLM on every
	// request ("ytd"). Not client-configurable.
	Timeframe string `toml:"timeframe"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-2.0-flash",
				RateLimit: 2,
				Timeout:   "180s",
			},
		},
		Analysis: AnalysisConfig{
			Timeframe: models.DefaultTimeframe,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateTimeframe(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("HIVEST_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("HIVEST_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("HIVEST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("HIVEST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// Gemini key: plain GEMINI_API_KEY wins over the prefixed form so the
	// same shell setup works for other Gemini tooling.
	for _, name := range []string{"GEMINI_API_KEY", "HIVEST_GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if v := os.Getenv(name); v != "" {
			config.Clients.Gemini.APIKey = v
			break
		}
	}

	if model := os.Getenv("HIVEST_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}

	if tf := os.Getenv("HIVEST_ANALYSIS_TIMEFRAME"); tf != "" {
		config.Analysis.Timeframe = tf
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// validateTimeframe ensures the analysis timeframe is set, defaulting to
// models.DefaultTimeframe.
func validateTimeframe(config *Config) {
	if strings.TrimSpace(config.Analysis.Timeframe) == "" {
		config.Analysis.Timeframe = models.DefaultTimeframe
	}
}
