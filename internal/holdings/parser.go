// Package holdings turns raw portfolio strings into typed positions.
package holdings

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/hivest/hivest/internal/models"
)

// ErrNoValidHoldings is returned by Validate when parsing produced no
// positions at all.
var ErrNoValidHoldings = errors.New("no valid holdings found in the portfolio string")

// Parse splits raw into whitespace-separated SYMBOL:WEIGHT tokens and returns
// the positions that survive the per-token predicate. Malformed tokens are
// dropped silently; parsing is best-effort and never fails. The result
// preserves token order and keeps duplicate symbols as separate entries.
func Parse(raw string) []models.Position {
	tokens := strings.Fields(raw)
	positions := make([]models.Position, 0, len(tokens))
	for _, token := range tokens {
		if pos, ok := parseToken(token); ok {
			positions = append(positions, pos)
		}
	}
	return positions
}

// parseToken converts a single SYMBOL:WEIGHT token. The split is on the first
// colon only; the symbol part must be non-empty and the remainder must parse
// as a finite number.
func parseToken(token string) (models.Position, bool) {
	symbol, weightStr, found := strings.Cut(token, ":")
	if !found || symbol == "" {
		return models.Position{}, false
	}
	weight, ok := parseWeight(weightStr)
	if !ok {
		return models.Position{}, false
	}
	return models.Position{Symbol: symbol, Weight: weight}, true
}

// parseWeight is a total numeric parse: failure is an explicit branch, never
// a caught fault, and NaN/Inf are rejected so every stored weight is finite.
func parseWeight(s string) (float64, bool) {
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, false
	}
	return w, true
}

// Validate accepts a parsed position list iff it is non-empty. This is the
// sole acceptance criterion; weights are not bounded and need not sum to 1.
func Validate(positions []models.Position) error {
	if len(positions) == 0 {
		return ErrNoValidHoldings
	}
	return nil
}
