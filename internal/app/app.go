// Package app wires configuration, clients, and services into a running core.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hivest/hivest/internal/clients/gemini"
	"github.com/hivest/hivest/internal/common"
	"github.com/hivest/hivest/internal/interfaces"
	"github.com/hivest/hivest/internal/services/analysis"
)

// App holds all initialized clients and services shared by the server
// entrypoint and tests. It carries no cross-request state.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	GeminiClient    interfaces.GeminiClient
	AnalysisService interfaces.AnalysisService
	StartupTime     time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the Gemini client, and the
// analysis service. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load configuration - check provided path, HIVEST_CONFIG, then binary
	// dir, then fallback
	binDir := getBinaryDir()
	if configPath == "" {
		configPath = os.Getenv("HIVEST_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "hivest.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/hivest.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	// Initialize the Gemini client. A missing key is not fatal: the service
	// starts and /analyze reports the failure at the collaborator boundary.
	var geminiClient interfaces.GeminiClient
	if config.Clients.Gemini.APIKey != "" {
		client, err := gemini.NewClient(context.Background(), config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
			gemini.WithTimeout(config.Clients.Gemini.GetTimeout()),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI analysis will be unavailable")
	}

	analysisService := analysis.NewService(geminiClient, logger)

	a := &App{
		Config:          config,
		Logger:          logger,
		GeminiClient:    geminiClient,
		AnalysisService: analysisService,
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
