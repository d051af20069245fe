package query

import (
	"testing"

	"github.com/poiesic/recallit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	p, err := NewParser(opts...)
	require.NoError(t, err)
	return p
}

func TestNewParser(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := NewParser()
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("with custom stop words", func(t *testing.T) {
		p, err := NewParser(WithStopWords([]string{"the", "LE"}))
		require.NoError(t, err)

		parsed := p.Parse("the le debug", nil)
		assert.Equal(t, []string{"debug"}, parsed.Terms)
	})

	t.Run("empty stop words rejected", func(t *testing.T) {
		_, err := NewParser(WithStopWords(nil))
		assert.ErrorIs(t, err, ErrEmptyStopWords)
	})

	t.Run("empty rule table rejected", func(t *testing.T) {
		_, err := NewParser(WithRules(nil))
		assert.ErrorIs(t, err, ErrEmptyRules)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		p, err := NewParser(WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, p)
	})
}

func TestParse_IntentClassification(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name          string
		query         string
		wantIntent    core.SearchIntent
		wantProcessed string
	}{
		{
			name:          "how to prefix",
			query:         "how to set up a badger database",
			wantIntent:    core.IntentHowTo,
			wantProcessed: "set up a badger database",
		},
		{
			name:          "what is prefix",
			query:         "what is a bloom filter",
			wantIntent:    core.IntentDefinition,
			wantProcessed: "a bloom filter",
		},
		{
			name:          "error keyword",
			query:         "connection refused error on startup",
			wantIntent:    core.IntentTroubleshooting,
			wantProcessed: "connection refused error on startup",
		},
		{
			name:          "errors plural still matches",
			query:         "debug authentication errors",
			wantIntent:    core.IntentTroubleshooting,
			wantProcessed: "debug authentication errors",
		},
		{
			name:          "example keyword",
			query:         "goroutine pool example",
			wantIntent:    core.IntentExample,
			wantProcessed: "goroutine pool example",
		},
		{
			name:          "compare keyword",
			query:         "compare badger with bolt",
			wantIntent:    core.IntentComparison,
			wantProcessed: "compare badger with bolt",
		},
		{
			name:          "vs token",
			query:         "badger vs bolt",
			wantIntent:    core.IntentComparison,
			wantProcessed: "badger vs bolt",
		},
		{
			name:          "fallback general",
			query:         "badger compaction tuning",
			wantIntent:    core.IntentGeneral,
			wantProcessed: "badger compaction tuning",
		},
		{
			name:          "prefix wins over keyword containment",
			query:         "how to debug authentication errors",
			wantIntent:    core.IntentHowTo,
			wantProcessed: "debug authentication errors",
		},
		{
			name:          "prefix must be a whole phrase",
			query:         "how together works",
			wantIntent:    core.IntentGeneral,
			wantProcessed: "how together works",
		},
		{
			name:          "uppercase input is normalized",
			query:         "HOW TO Debug Authentication ERRORS",
			wantIntent:    core.IntentHowTo,
			wantProcessed: "debug authentication errors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := p.Parse(tt.query, nil)
			assert.Equal(t, tt.wantIntent, parsed.Intent)
			assert.Equal(t, tt.wantProcessed, parsed.ProcessedQuery)
			assert.Equal(t, tt.query, parsed.OriginalQuery)
			assert.NotEmpty(t, parsed.Interpretation)
		})
	}
}

func TestParse_Terms(t *testing.T) {
	p := newTestParser(t)

	t.Run("stop words never appear in terms", func(t *testing.T) {
		parsed := p.Parse("how to find the cause of a panic in my handler", nil)
		for _, term := range parsed.Terms {
			assert.False(t, defaultStopWords[term], "stop word %q leaked into terms", term)
		}
	})

	t.Run("scenario A terms", func(t *testing.T) {
		parsed := p.Parse("how to debug authentication errors", nil)
		assert.Equal(t, core.IntentHowTo, parsed.Intent)
		assert.Equal(t, "debug authentication errors", parsed.ProcessedQuery)
		assert.Subset(t, parsed.Terms, []string{"debug", "authentication", "errors"})
	})

	t.Run("order and duplicates preserved", func(t *testing.T) {
		parsed := p.Parse("debug the debug logger", nil)
		assert.Equal(t, []string{"debug", "debug", "logger"}, parsed.Terms)
	})

	t.Run("quoted phrases broken into terms", func(t *testing.T) {
		parsed := p.Parse(`"context deadline exceeded" timeout`, nil)
		assert.Equal(t, []string{"context", "deadline", "exceeded", "timeout"}, parsed.Terms)
	})

	t.Run("punctuation boundaries split tokens", func(t *testing.T) {
		parsed := p.Parse("http.Client,retry;backoff", nil)
		assert.Equal(t, []string{"http", "client", "retry", "backoff"}, parsed.Terms)
	})
}

func TestParse_Complexity(t *testing.T) {
	p := newTestParser(t)

	t.Run("strictly ordered", func(t *testing.T) {
		simple := p.Parse("badger", nil)
		rich := p.Parse(`"write amplification" AND compaction levels badger tuning`, nil)
		assert.Greater(t, rich.Complexity, simple.Complexity)
	})

	t.Run("monotone in term count", func(t *testing.T) {
		short := p.Parse("badger compaction", nil)
		long := p.Parse("badger compaction tuning for write heavy workloads", nil)
		assert.Greater(t, long.Complexity, short.Complexity)
	})

	t.Run("quoted phrase adds complexity", func(t *testing.T) {
		plain := p.Parse("context deadline exceeded", nil)
		quoted := p.Parse(`"context deadline exceeded"`, nil)
		assert.Greater(t, quoted.Complexity, plain.Complexity)
	})

	t.Run("connector adds complexity", func(t *testing.T) {
		plain := p.Parse("badger bolt", nil)
		connected := p.Parse("badger OR bolt", nil)
		assert.Greater(t, connected.Complexity, plain.Complexity)
	})

	t.Run("lowercase and is not a connector", func(t *testing.T) {
		a := p.Parse("badger and bolt", nil)
		b := p.Parse("badger nor bolt", nil)
		assert.Equal(t, b.Complexity, a.Complexity)
	})
}

func TestParse_DegenerateInput(t *testing.T) {
	p := newTestParser(t)

	for _, q := range []string{"", "   ", "\t\n", "?!...", `""`} {
		t.Run("input "+q, func(t *testing.T) {
			var parsed *core.ParsedQuery
			assert.NotPanics(t, func() {
				parsed = p.Parse(q, nil)
			})
			assert.Equal(t, core.IntentGeneral, parsed.Intent)
			assert.Empty(t, parsed.Terms)
			assert.Zero(t, parsed.Complexity)
		})
	}
}

func TestParse_HintsAccepted(t *testing.T) {
	p := newTestParser(t)

	withHints := p.Parse("how to debug authentication errors", &ParseHints{Version: 1, Locale: "en"})
	withoutHints := p.Parse("how to debug authentication errors", nil)

	assert.Equal(t, withoutHints, withHints)
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser(t)

	first := p.Parse("what is a merkle tree", nil)
	second := p.Parse("what is a merkle tree", nil)
	assert.Equal(t, first, second)
}
