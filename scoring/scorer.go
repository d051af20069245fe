package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/recallit/core"
)

// Scorer computes relevance scores for conversation turns.
// A Scorer is immutable after construction and safe for concurrent use.
type Scorer struct {
	weights        Weights
	intentKeywords map[core.SearchIntent][]string
	logger         *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer) error

// WithWeights replaces the default factor weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) error {
		if w.TermOverlap < 0 || w.IntentMatch < 0 || w.ModelMatch < 0 || w.ToolMatch < 0 {
			return ErrNegativeWeight
		}
		s.weights = w
		return nil
	}
}

// WithIntentKeywords replaces the default intent keyword sets.
// Entries for core.IntentGeneral are ignored: General never boosts.
func WithIntentKeywords(keywords map[core.SearchIntent][]string) Option {
	return func(s *Scorer) error {
		if len(keywords) == 0 {
			return ErrEmptyIntentKeywords
		}
		lowered := make(map[core.SearchIntent][]string, len(keywords))
		for intent, words := range keywords {
			if intent == core.IntentGeneral {
				continue
			}
			set := make([]string, len(words))
			for i, w := range words {
				set[i] = strings.ToLower(w)
			}
			lowered[intent] = set
		}
		// A map holding only General entries would silently disable every
		// intent boost.
		if len(lowered) == 0 {
			return ErrEmptyIntentKeywords
		}
		s.intentKeywords = lowered
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewScorer creates a new relevance scorer.
func NewScorer(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		weights:        DefaultWeights(),
		intentKeywords: DefaultIntentKeywords(),
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Weights returns the configured factor weights.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score computes the relevance of one turn for one parsed query.
// It is a pure function: deterministic, side-effect free, and safe to
// call concurrently across an arbitrary number of turns. A query with no
// terms, or a turn with an empty response or tool list, degrades toward
// a zero score rather than failing.
func (s *Scorer) Score(turn *core.ConversationTurn, query *core.ParsedQuery) core.RelevanceResult {
	text := strings.ToLower(turn.Prompt + "\n" + turn.Response)

	var score float64
	var factors []string

	if overlap, hits := s.termOverlap(text, query.Terms); overlap*s.weights.TermOverlap > 0 {
		contribution := s.weights.TermOverlap * overlap
		score += contribution
		factors = append(factors, fmt.Sprintf("term overlap %d/%d (+%.3f)",
			hits, len(query.Terms), contribution))
	}

	if frac, hits, total := s.intentMatch(text, query.Intent); frac*s.weights.IntentMatch > 0 {
		contribution := s.weights.IntentMatch * frac
		score += contribution
		factors = append(factors, fmt.Sprintf("%s keywords %d/%d (+%.3f)",
			query.Intent, hits, total, contribution))
	}

	if s.weights.ModelMatch > 0 && s.modelMatch(turn.Model, query.Terms) {
		score += s.weights.ModelMatch
		factors = append(factors, fmt.Sprintf("model %q matched (+%.3f)",
			turn.Model, s.weights.ModelMatch))
	}

	if frac, hits := s.toolMatch(turn.ToolsUsed, query.Terms); frac*s.weights.ToolMatch > 0 {
		contribution := s.weights.ToolMatch * frac
		score += contribution
		factors = append(factors, fmt.Sprintf("tool match %d/%d (+%.3f)",
			hits, len(query.Terms), contribution))
	}

	explanation := "no matching factors"
	if len(factors) > 0 {
		explanation = strings.Join(factors, "; ")
	}

	return core.RelevanceResult{
		Score:       score,
		Explanation: explanation,
	}
}

// ScoreAll scores a batch of turns against one query, checking the
// context between evaluations. On cancellation it returns ctx.Err() and
// discards any partially computed results.
func (s *Scorer) ScoreAll(ctx context.Context, query *core.ParsedQuery, turns []*core.ConversationTurn) ([]*core.SearchResult, error) {
	results := make([]*core.SearchResult, 0, len(turns))
	for _, turn := range turns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if turn == nil {
			continue
		}
		results = append(results, &core.SearchResult{
			Turn:      turn,
			Relevance: s.Score(turn, query),
		})
	}
	return results, nil
}

// termOverlap returns the fraction of query terms present in the turn
// text, using case-insensitive substring matching.
func (s *Scorer) termOverlap(loweredText string, terms []string) (float64, int) {
	if len(terms) == 0 {
		return 0, 0
	}
	hits := 0
	for _, term := range terms {
		if strings.Contains(loweredText, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms)), hits
}

// intentMatch returns the fraction of the intent's keyword set present
// in the turn text. General intent has no keyword set and scores zero.
func (s *Scorer) intentMatch(loweredText string, intent core.SearchIntent) (float64, int, int) {
	if intent == core.IntentGeneral {
		return 0, 0, 0
	}
	keywords := s.intentKeywords[intent]
	if len(keywords) == 0 {
		return 0, 0, 0
	}
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(loweredText, kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(keywords)), hits, len(keywords)
}

// modelMatch reports whether any query term is a case-insensitive
// substring of the turn's model identifier.
func (s *Scorer) modelMatch(model string, terms []string) bool {
	if model == "" {
		return false
	}
	lowered := strings.ToLower(model)
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// toolMatch returns the fraction of query terms that case-insensitively
// equal an entry of the turn's tool list.
func (s *Scorer) toolMatch(tools []string, terms []string) (float64, int) {
	if len(tools) == 0 || len(terms) == 0 {
		return 0, 0
	}
	hits := 0
	for _, term := range terms {
		for _, tool := range tools {
			if strings.EqualFold(tool, term) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(terms)), hits
}
