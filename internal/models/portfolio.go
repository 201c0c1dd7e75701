// Package models defines data structures for Hivest
package models

// DefaultTimeframe is the analysis window label passed to the downstream
// LLM collaborator. It is fixed per deployment, not per request; override
// via the [analysis] config section.
const DefaultTimeframe = "ytd"

// Position is a single (symbol, weight) holding parsed from the portfolio
// string. Symbol is the token text before the first colon, verbatim; Weight
// is always finite.
type Position struct {
	Symbol string  `json:"symbol"`
	Weight float64 `json:"weight"`
}

// PortfolioContext carries the parsed positions and the analysis window into
// the LLM call. Built fresh per request and discarded with the response.
type PortfolioContext struct {
	Positions []Position `json:"positions"`
	Timeframe string     `json:"timeframe"`
}

// AnalyzeRequest is the /analyze request body. Portfolio is a pointer so an
// absent key can be told apart from an empty string.
type AnalyzeRequest struct {
	Portfolio *string `json:"portfolio"`
}

// AnalyzeResponse wraps the opaque analysis text produced by the
// collaborator. The text is never interpreted, even if it looks structured.
type AnalyzeResponse struct {
	Analysis string `json:"analysis"`
}
