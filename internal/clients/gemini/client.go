// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/hivest/hivest/internal/common"
	"github.com/hivest/hivest/internal/interfaces"
	"github.com/hivest/hivest/internal/models"
)

const (
	DefaultModel     = "gemini-2.0-flash"
	DefaultRateLimit = 2 // outbound requests per second
	DefaultTimeout   = 180 * time.Second
)

// Client implements the GeminiClient interface
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	timeout time.Duration
	logger  *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit sets the outbound requests-per-second throttle
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the per-call deadline for generate requests
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:  genaiClient,
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		timeout: DefaultTimeout,
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates AI content from a prompt. The call is bounded by
// the configured timeout; a hung upstream call fails here instead of holding
// the request until the server write timeout.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	contents := genai.Text(prompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// AnalyzePortfolio generates AI analysis for a set of positions over the
// given timeframe label
func (c *Client) AnalyzePortfolio(ctx context.Context, positions []models.Position, timeframe string) (string, error) {
	prompt := buildPortfolioPrompt(positions, timeframe)
	return c.GenerateContent(ctx, prompt)
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// buildPortfolioPrompt creates the analyst prompt. Positions are listed in
// request order with their weights; the timeframe label frames the window.
func buildPortfolioPrompt(positions []models.Position, timeframe string) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful financial analyst.\n\n")
	fmt.Fprintf(&sb, "Analyze the following portfolio over the %s window and provide:\n", strings.ToUpper(timeframe))
	sb.WriteString("1. A brief summary of the portfolio composition\n")
	sb.WriteString("2. Concentration and diversification observations\n")
	sb.WriteString("3. Key risk factors to consider\n")
	sb.WriteString("\nPositions:\n")

	for _, p := range positions {
		fmt.Fprintf(&sb, "- %s: weight=%.2f%%\n", p.Symbol, p.Weight*100)
	}

	sb.WriteString("\nProvide your analysis in a concise, actionable format.")

	return sb.String()
}

// Ensure Client implements GeminiClient
var _ interfaces.GeminiClient = (*Client)(nil)
