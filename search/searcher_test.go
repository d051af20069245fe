package search

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/scoring"
	"github.com/poiesic/recallit/storage"
	"github.com/poiesic/recallit/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) storage.TurnRepository {
	t.Helper()
	turnRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		turnRepo.Close()
		backend.Close()
	})
	return turnRepo
}

func seedTurns(t *testing.T, repo storage.TurnRepository, turns ...*core.ConversationTurn) []*core.ConversationTurn {
	t.Helper()
	added, err := repo.AddTurns(context.Background(), turns...)
	require.NoError(t, err)
	return added
}

func TestNewSearcher(t *testing.T) {
	turnRepo := newTestRepo(t)

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(turnRepo)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		searcher.Close()
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(turnRepo, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		searcher.Close()
	})

	t.Run("with pool size", func(t *testing.T) {
		searcher, err := NewSearcher(turnRepo, WithPoolSize(4))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
		searcher.Close()
	})

	t.Run("nil turn repository", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrTurnRepositoryRequired, err)
	})

	t.Run("invalid candidate limit", func(t *testing.T) {
		_, err := NewSearcher(turnRepo, WithCandidateLimit(0))
		assert.ErrorIs(t, err, ErrInvalidCandidateLimit)
	})

	t.Run("failing option releases swapped pool", func(t *testing.T) {
		var swapped *ants.Pool
		capturePool := Option(func(s *Searcher) error {
			swapped = s.pool
			return nil
		})

		_, err := NewSearcher(turnRepo, WithPoolSize(2), capturePool, WithCandidateLimit(0))
		assert.ErrorIs(t, err, ErrInvalidCandidateLimit)
		require.NotNil(t, swapped)
		assert.True(t, swapped.IsClosed())
	})
}

func TestSearch_EmptyDatabase(t *testing.T) {
	turnRepo := newTestRepo(t)

	searcher, err := NewSearcher(turnRepo)
	require.NoError(t, err)
	defer searcher.Close()

	results, err := searcher.Search(context.Background(), "how to debug errors", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_RanksByRelevance(t *testing.T) {
	turnRepo := newTestRepo(t)
	now := time.Now().UTC()

	seedTurns(t, turnRepo,
		&core.ConversationTurn{
			ConversationId: "conv-1",
			TurnNumber:     0,
			Timestamp:      now.Add(-2 * time.Hour),
			Prompt:         "My login keeps failing",
			Response:       "To debug authentication errors, first check the log files.",
		},
		&core.ConversationTurn{
			ConversationId: "conv-2",
			TurnNumber:     0,
			Timestamp:      now.Add(-1 * time.Hour),
			Prompt:         "How long do I bake a sponge cake?",
			Response:       "About 25 minutes at 180C.",
		},
		&core.ConversationTurn{
			ConversationId: "conv-3",
			TurnNumber:     0,
			Timestamp:      now.Add(-30 * time.Minute),
			Prompt:         "The auth service returns an error",
			Response:       "Enable debug logging to see why authentication fails.",
		},
	)

	searcher, err := NewSearcher(turnRepo)
	require.NoError(t, err)
	defer searcher.Close()

	results, err := searcher.Search(context.Background(), "debug authentication errors", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Sorted by score descending
	for i := 0; i < len(results)-1; i++ {
		assert.GreaterOrEqual(t, results[i].Relevance.Score, results[i+1].Relevance.Score)
	}

	// The cake turn must rank last and score below the relevant ones
	assert.Equal(t, "conv-2", results[2].Turn.ConversationId)
	assert.Less(t, results[2].Relevance.Score, 0.3)
	assert.Greater(t, results[0].Relevance.Score, 0.5)
}

func TestSearch_TieBreakByRecency(t *testing.T) {
	turnRepo := newTestRepo(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Identical content, different timestamps: scores tie exactly.
	older := &core.ConversationTurn{
		ConversationId: "conv-old",
		TurnNumber:     0,
		Timestamp:      now.Add(-2 * time.Hour),
		Prompt:         "badger compaction",
		Response:       "same response",
	}
	newer := &core.ConversationTurn{
		ConversationId: "conv-new",
		TurnNumber:     0,
		Timestamp:      now.Add(-1 * time.Hour),
		Prompt:         "badger compaction",
		Response:       "same response",
	}
	seedTurns(t, turnRepo, older, newer)

	searcher, err := NewSearcher(turnRepo)
	require.NoError(t, err)
	defer searcher.Close()

	for i := 0; i < 3; i++ {
		results, err := searcher.Search(context.Background(), "badger compaction", 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "conv-new", results[0].Turn.ConversationId,
			"most recent turn must win the tie on every run")
	}
}

func TestSearch_TruncatesToMaxHits(t *testing.T) {
	turnRepo := newTestRepo(t)
	now := time.Now().UTC()

	for i := 0; i < 10; i++ {
		seedTurns(t, turnRepo, &core.ConversationTurn{
			ConversationId: "conv-1",
			TurnNumber:     i,
			Timestamp:      now.Add(time.Duration(i) * time.Second),
			Prompt:         "badger compaction",
		})
	}

	searcher, err := NewSearcher(turnRepo)
	require.NoError(t, err)
	defer searcher.Close()

	results, err := searcher.Search(context.Background(), "badger", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_Cancellation(t *testing.T) {
	turnRepo := newTestRepo(t)
	now := time.Now().UTC()

	for i := 0; i < 20; i++ {
		seedTurns(t, turnRepo, &core.ConversationTurn{
			ConversationId: "conv-1",
			TurnNumber:     i,
			Timestamp:      now.Add(time.Duration(i) * time.Second),
			Prompt:         "some prompt",
		})
	}

	searcher, err := NewSearcher(turnRepo)
	require.NoError(t, err)
	defer searcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := searcher.Search(ctx, "prompt", 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results, "cancelled search must not return partial results")
}

// recordingMonitor captures callback invocations for assertions.
type recordingMonitor struct {
	mu           sync.Mutex
	started      string
	parsed       *core.ParsedQuery
	candidateIds []core.ID
	scored       int
	finished     []*core.SearchResult
}

var _ SearchMonitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) Start(query string) { m.started = query }
func (m *recordingMonitor) AfterParse(parsed *core.ParsedQuery) {
	m.parsed = parsed
}
func (m *recordingMonitor) AfterCandidateRetrieval(ids []core.ID) {
	m.candidateIds = ids
}
func (m *recordingMonitor) TurnScored(_ *core.ConversationTurn, _ core.RelevanceResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scored++
}
func (m *recordingMonitor) Finish(results []*core.SearchResult) {
	m.finished = results
}

func TestSearchWithMonitor(t *testing.T) {
	turnRepo := newTestRepo(t)
	now := time.Now().UTC()

	seedTurns(t, turnRepo,
		&core.ConversationTurn{
			ConversationId: "conv-1",
			Timestamp:      now,
			Prompt:         "how do I tune badger compaction",
			Response:       "Lower the number of levels.",
		},
		&core.ConversationTurn{
			ConversationId: "conv-2",
			Timestamp:      now,
			Prompt:         "unrelated",
			Response:       "also unrelated",
		},
	)

	searcher, err := NewSearcher(turnRepo)
	require.NoError(t, err)
	defer searcher.Close()

	monitor := &recordingMonitor{}
	results, err := searcher.SearchWithMonitor(context.Background(), "how to tune badger compaction", 10, monitor)
	require.NoError(t, err)

	assert.Equal(t, "how to tune badger compaction", monitor.started)
	require.NotNil(t, monitor.parsed)
	assert.Equal(t, core.IntentHowTo, monitor.parsed.Intent)
	assert.Len(t, monitor.candidateIds, 2)
	assert.Equal(t, 2, monitor.scored)
	assert.Equal(t, results, monitor.finished)
}

func TestSearch_CustomScorer(t *testing.T) {
	turnRepo := newTestRepo(t)
	now := time.Now().UTC()

	seedTurns(t, turnRepo, &core.ConversationTurn{
		ConversationId: "conv-1",
		Timestamp:      now,
		Prompt:         "query terms present",
		Model:          "gpt-4",
	})

	scorer, err := scoring.NewScorer(scoring.WithWeights(scoring.Weights{ModelMatch: 1.0}))
	require.NoError(t, err)

	searcher, err := NewSearcher(turnRepo, WithScorer(scorer))
	require.NoError(t, err)
	defer searcher.Close()

	results, err := searcher.Search(context.Background(), "gpt fine tuning", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Relevance.Score, 1e-9)
}
