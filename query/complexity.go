package query

import "strings"

// Complexity weighting. The exact values are a tuning choice; the
// contract is strict monotonicity in token count, quoted phrases, and
// boolean connectors.
const (
	perTokenWeight     = 0.06
	maxCountedTokens   = 10
	quotedPhraseWeight = 0.25
	connectorWeight    = 0.15
)

// estimateComplexity scores how involved a query is. Raw (unfiltered)
// token count drives the base signal so that stop words still register;
// a quoted phrase and explicit AND/OR connectors each add a fixed bump.
// Empty input sits at the floor value 0.
func estimateComplexity(rawQuery string, rawTokenCount int) float64 {
	counted := rawTokenCount
	if counted > maxCountedTokens {
		counted = maxCountedTokens
	}
	complexity := float64(counted) * perTokenWeight

	if hasQuotedPhrase(rawQuery) {
		complexity += quotedPhraseWeight
	}

	if hasBooleanConnector(rawQuery) {
		complexity += connectorWeight
	}

	return complexity
}

// hasQuotedPhrase reports whether the query contains a non-empty
// double-quoted phrase. Bare quote pairs with nothing between them do
// not count, so punctuation-only input stays at the complexity floor.
func hasQuotedPhrase(rawQuery string) bool {
	parts := strings.Split(rawQuery, `"`)
	for i := 1; i < len(parts)-1; i += 2 {
		if strings.TrimSpace(parts[i]) != "" {
			return true
		}
	}
	return false
}

// hasBooleanConnector reports whether the raw query contains an explicit
// uppercase AND or OR connector. Casing is deliberate: lowercase "and"
// and "or" show up constantly in natural-language queries without any
// boolean meaning.
func hasBooleanConnector(rawQuery string) bool {
	for _, field := range strings.Fields(rawQuery) {
		if field == "AND" || field == "OR" {
			return true
		}
	}
	return false
}
