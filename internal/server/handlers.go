package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hivest/hivest/internal/common"
	"github.com/hivest/hivest/internal/holdings"
	"github.com/hivest/hivest/internal/models"
)

// Client-facing message literals. The wording is part of the API contract.
const (
	msgMissingPortfolio = "Invalid input. 'portfolio' key is missing."
	msgNoValidHoldings  = "No valid holdings found in the portfolio string."
	msgAnalysisFailed   = "An internal server error occurred during analysis."
)

// handleAnalyze handles POST /analyze with {"portfolio": "SYM:W SYM:W ..."}.
// GET with a ?portfolio= query parameter follows the same path.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, http.MethodGet) {
		return
	}

	portfolio, ok := s.portfolioParam(w, r)
	if !ok {
		WriteError(w, http.StatusBadRequest, msgMissingPortfolio)
		return
	}

	positions := holdings.Parse(portfolio)
	if err := holdings.Validate(positions); err != nil {
		WriteError(w, http.StatusBadRequest, msgNoValidHoldings)
		return
	}

	pc := models.PortfolioContext{
		Positions: positions,
		Timeframe: s.app.Config.Analysis.Timeframe,
	}

	analysisText, err := s.app.AnalysisService.AnalyzePortfolio(r.Context(), pc)
	if err != nil {
		s.logger.Error().Err(err).
			Int("positions", len(positions)).
			Msg("Portfolio analysis failed")
		WriteError(w, http.StatusInternalServerError, msgAnalysisFailed)
		return
	}

	WriteJSON(w, http.StatusOK, models.AnalyzeResponse{Analysis: analysisText})
}

// portfolioParam extracts the portfolio string from the JSON body or, for GET
// requests, the query string. A body that fails to decode is treated as an
// empty object so the missing-key reject stays distinct from a parse reject.
func (s *Server) portfolioParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.AnalyzeRequest
	if r.Body != nil {
		body := http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
		_ = json.NewDecoder(body).Decode(&req)
	}
	if req.Portfolio != nil {
		return *req.Portfolio, true
	}
	if v := r.URL.Query().Get("portfolio"); v != "" {
		return v, true
	}
	return "", false
}

// handleHealth responds to GET/HEAD /api/health with status and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion responds to GET/HEAD /api/version with version info.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
