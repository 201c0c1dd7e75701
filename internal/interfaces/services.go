package interfaces

import (
	"context"

	"github.com/hivest/hivest/internal/models"
)

// AnalysisService produces analysis text for a portfolio context.
type AnalysisService interface {
	// AnalyzePortfolio invokes the LLM collaborator with the given context
	// and returns opaque analysis text. One bounded call per request, no
	// internal retry.
	AnalyzePortfolio(ctx context.Context, pc models.PortfolioContext) (string, error)
}
