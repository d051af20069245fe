package query

import (
	"slices"
	"strings"

	"github.com/poiesic/recallit/core"
)

// IntentRule binds one classification rule to an intent. Rules are
// evaluated in order and the first match wins, so prefix rules placed
// before containment rules take priority ("how to debug errors" is a
// how-to query, not a troubleshooting one).
//
// Exactly one of Prefix or Match should be set. A Prefix rule matches
// when the normalized query starts with the prefix as a whole phrase,
// and the prefix is stripped from ProcessedQuery. A Match rule receives
// the normalized query and its raw (unfiltered) tokens.
type IntentRule struct {
	Intent         core.SearchIntent
	Interpretation string
	Prefix         string
	Match          func(normalized string, tokens []string) bool
}

// matchesPrefix reports whether the normalized query starts with the
// prefix as a whole phrase ("how to" matches "how to x" but not "how
// together").
func matchesPrefix(normalized, prefix string) bool {
	return normalized == prefix || strings.HasPrefix(normalized, prefix+" ")
}

// DefaultRules returns the built-in intent rule table. The order is part
// of the contract and must not be rearranged casually.
func DefaultRules() []IntentRule {
	return []IntentRule{
		{
			Intent:         core.IntentHowTo,
			Interpretation: "Looking for step-by-step instructions",
			Prefix:         "how to",
		},
		{
			Intent:         core.IntentDefinition,
			Interpretation: "Looking for a definition or explanation",
			Prefix:         "what is",
		},
		{
			Intent:         core.IntentTroubleshooting,
			Interpretation: "Looking for help diagnosing a problem",
			Match: func(normalized string, _ []string) bool {
				// Substring match also covers "errors", "errored", etc.
				return strings.Contains(normalized, "error")
			},
		},
		{
			Intent:         core.IntentExample,
			Interpretation: "Looking for examples or sample code",
			Match: func(normalized string, _ []string) bool {
				return strings.Contains(normalized, "example")
			},
		},
		{
			Intent:         core.IntentComparison,
			Interpretation: "Looking for a comparison between alternatives",
			Match: func(normalized string, tokens []string) bool {
				return strings.Contains(normalized, "compare") || slices.Contains(tokens, "vs")
			},
		},
	}
}

// generalInterpretation is used when no rule matches.
const generalInterpretation = "General search"
