package scoring

import "github.com/poiesic/recallit/core"

// Weights controls how much each sub-score contributes to the final
// relevance score. Term overlap dominates so that textual relevance is
// never outranked by a turn that merely used the right tool or model.
type Weights struct {
	TermOverlap float64 `yaml:"term_overlap"`
	IntentMatch float64 `yaml:"intent_match"`
	ModelMatch  float64 `yaml:"model_match"`
	ToolMatch   float64 `yaml:"tool_match"`
}

// DefaultWeights returns the design-default weight split.
func DefaultWeights() Weights {
	return Weights{
		TermOverlap: 0.6,
		IntentMatch: 0.2,
		ModelMatch:  0.1,
		ToolMatch:   0.1,
	}
}

// DefaultIntentKeywords returns the built-in keyword sets keyed by
// intent. The fraction of a query's intent set found in the turn text
// forms the intent sub-score. IntentGeneral deliberately has no set and
// always contributes zero.
func DefaultIntentKeywords() map[core.SearchIntent][]string {
	return map[core.SearchIntent][]string{
		core.IntentHowTo: {
			"step", "guide", "tutorial", "first", "install", "configure",
		},
		core.IntentTroubleshooting: {
			"error", "debug", "fix", "solve", "issue", "problem",
		},
		core.IntentDefinition: {
			"definition", "means", "refers", "concept", "called", "essentially",
		},
		core.IntentExample: {
			"example", "sample", "snippet", "demo", "instance",
		},
		core.IntentComparison: {
			"versus", "vs", "difference", "better", "whereas", "alternative",
		},
	}
}
