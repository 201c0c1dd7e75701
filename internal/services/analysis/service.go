// Package analysis orchestrates portfolio analysis via the LLM collaborator
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/hivest/hivest/internal/common"
	"github.com/hivest/hivest/internal/interfaces"
	"github.com/hivest/hivest/internal/models"
)

// Service implements AnalysisService
type Service struct {
	gemini interfaces.GeminiClient
	logger *common.Logger
}

// NewService creates a new analysis service
func NewService(gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		gemini: gemini,
		logger: logger,
	}
}

// AnalyzePortfolio invokes the LLM collaborator with the portfolio context.
// The call is synchronous and made at most once per request; timeout and
// throttle policy live in the client.
func (s *Service) AnalyzePortfolio(ctx context.Context, pc models.PortfolioContext) (string, error) {
	if s.gemini == nil {
		return "", fmt.Errorf("gemini client not configured")
	}

	start := time.Now()
	text, err := s.gemini.AnalyzePortfolio(ctx, pc.Positions, pc.Timeframe)
	if err != nil {
		return "", fmt.Errorf("analyze portfolio: %w", err)
	}

	s.logger.Info().
		Int("positions", len(pc.Positions)).
		Str("timeframe", pc.Timeframe).
		Dur("duration", time.Since(start)).
		Msg("Portfolio analysis generated")

	return text, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
