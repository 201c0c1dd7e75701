// Package interfaces defines service contracts for Hivest
package interfaces

import (
	"context"

	"github.com/hivest/hivest/internal/models"
)

// GeminiClient provides access to the Gemini API
type GeminiClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)

	// AnalyzePortfolio generates AI analysis for a set of positions over the
	// given timeframe label
	AnalyzePortfolio(ctx context.Context, positions []models.Position, timeframe string) (string, error)
}
