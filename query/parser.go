package query

import (
	"log/slog"
	"strings"

	"github.com/poiesic/recallit/core"
)

// ParseHints carries optional caller-supplied context for a single parse.
// A nil *ParseHints is valid and equivalent to the zero value. All fields
// are currently advisory: the parser accepts them but the scoring math
// does not consume them yet.
type ParseHints struct {
	// Version is the hint schema version. 0 means current.
	Version int

	// Locale is a reserved extension key for future language-specific
	// stop-word and rule tables.
	Locale string
}

// Parser converts raw query strings into core.ParsedQuery values.
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	stopWords map[string]bool
	rules     []IntentRule
	logger    *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser) error

// WithStopWords replaces the default stop-word set.
func WithStopWords(words []string) Option {
	return func(p *Parser) error {
		if len(words) == 0 {
			return ErrEmptyStopWords
		}
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = true
		}
		p.stopWords = set
		return nil
	}
}

// WithRules replaces the default intent rule table. Rules are evaluated
// in the given order, first match wins.
func WithRules(rules []IntentRule) Option {
	return func(p *Parser) error {
		if len(rules) == 0 {
			return ErrEmptyRules
		}
		p.rules = rules
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewParser creates a new query parser.
func NewParser(opts ...Option) (*Parser, error) {
	p := &Parser{
		stopWords: defaultStopWords,
		rules:     DefaultRules(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse normalizes and tokenizes a raw query, classifies its intent, and
// estimates its complexity. It never fails: empty, whitespace-only, or
// punctuation-only input yields a General-intent query with no terms and
// floor complexity.
func (p *Parser) Parse(rawQuery string, hints *ParseHints) *core.ParsedQuery {
	_ = hints // accepted but inert, see ParseHints

	normalized := strings.ToLower(strings.TrimSpace(rawQuery))
	rawTokens := tokenize(normalized)

	intent := core.IntentGeneral
	interpretation := generalInterpretation
	processed := normalized

	for _, rule := range p.rules {
		if rule.Prefix != "" {
			if matchesPrefix(normalized, rule.Prefix) {
				intent = rule.Intent
				interpretation = rule.Interpretation
				processed = strings.TrimSpace(normalized[len(rule.Prefix):])
				break
			}
			continue
		}
		if rule.Match != nil && rule.Match(normalized, rawTokens) {
			intent = rule.Intent
			interpretation = rule.Interpretation
			break
		}
	}

	terms := filterStopWords(tokenize(processed), p.stopWords)

	parsed := &core.ParsedQuery{
		OriginalQuery:  rawQuery,
		ProcessedQuery: processed,
		Terms:          terms,
		Intent:         intent,
		Interpretation: interpretation,
		Complexity:     estimateComplexity(rawQuery, len(rawTokens)),
	}

	p.logger.Debug("parsed query",
		"intent", intent.String(),
		"terms", len(terms),
		"complexity", parsed.Complexity)

	return parsed
}
