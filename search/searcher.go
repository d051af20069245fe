package search

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/query"
	"github.com/poiesic/recallit/scoring"
	"github.com/poiesic/recallit/storage"
)

// defaultCandidateLimit bounds how many recent turns one search considers.
const defaultCandidateLimit = 1000

// Searcher provides intent-aware ranked search over conversation turns.
type Searcher struct {
	turnRepository storage.TurnRepository
	parser         *query.Parser
	scorer         *scoring.Scorer
	pool           *ants.Pool
	candidateLimit int
	logger         *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithParser sets a custom query parser.
// Default is query.NewParser() with default rules and stop words.
func WithParser(parser *query.Parser) Option {
	return func(s *Searcher) error {
		if parser != nil {
			s.parser = parser
		}
		return nil
	}
}

// WithScorer sets a custom relevance scorer.
// Default is scoring.NewScorer() with default weights and keyword sets.
func WithScorer(scorer *scoring.Scorer) Option {
	return func(s *Searcher) error {
		if scorer != nil {
			s.scorer = scorer
		}
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent scoring.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithCandidateLimit sets how many recent turns one search considers.
// Default is 1000.
func WithCandidateLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit < 1 {
			return ErrInvalidCandidateLimit
		}
		s.candidateLimit = limit
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher over the given turn repository.
func NewSearcher(turnRepository storage.TurnRepository, opts ...Option) (*Searcher, error) {
	if turnRepository == nil {
		return nil, ErrTurnRepositoryRequired
	}

	parser, err := query.NewParser()
	if err != nil {
		return nil, err
	}
	scorer, err := scoring.NewScorer()
	if err != nil {
		return nil, err
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		turnRepository: turnRepository,
		parser:         parser,
		scorer:         scorer,
		pool:           pool,
		candidateLimit: defaultCandidateLimit,
		logger:         slog.Default(),
	}

	// Apply options. WithPoolSize may have swapped the pool, so release
	// whichever one the searcher currently holds.
	for _, opt := range opts {
		if err := opt(s); err != nil {
			s.pool.Release()
			return nil, err
		}
	}

	return s, nil
}

// Close releases the scoring worker pool.
func (s *Searcher) Close() error {
	s.pool.Release()
	return nil
}

// Search parses the query, scores recent turns against it, and returns
// up to maxHits results ranked by relevance.
func (s *Searcher) Search(ctx context.Context, rawQuery string, maxHits int) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, rawQuery, maxHits, nil)
}

// SearchWithMonitor is Search with observation callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, rawQuery string, maxHits int, monitor SearchMonitor) ([]*core.SearchResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(rawQuery)

	parsed := s.parser.Parse(rawQuery, nil)
	monitor.AfterParse(parsed)

	candidates, err := s.turnRepository.GetRecentTurns(ctx, s.candidateLimit)
	if err != nil {
		s.logger.Error("error loading candidate turns", "err", err)
		return nil, err
	}

	ids := make([]core.ID, 0, len(candidates))
	for _, turn := range candidates {
		ids = append(ids, turn.Id)
	}
	monitor.AfterCandidateRetrieval(ids)

	results, err := s.scoreCandidates(ctx, parsed, candidates, monitor)
	if err != nil {
		return nil, err
	}

	// Sort by score descending; break ties by most recent timestamp,
	// then by ID, so repeated searches are reproducible.
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Relevance.Score != b.Relevance.Score {
			if a.Relevance.Score > b.Relevance.Score {
				return -1
			}
			return 1
		}
		if !a.Turn.Timestamp.Equal(b.Turn.Timestamp) {
			if a.Turn.Timestamp.After(b.Turn.Timestamp) {
				return -1
			}
			return 1
		}
		switch {
		case a.Turn.Id > b.Turn.Id:
			return -1
		case a.Turn.Id < b.Turn.Id:
			return 1
		default:
			return 0
		}
	})

	if maxHits >= 0 && len(results) > maxHits {
		results = results[:maxHits]
	}
	monitor.Finish(results)

	return results, nil
}

// scoreCandidates fans scoring out over the worker pool. Each scoring
// call is independent; the context is checked before every submission
// and a cancelled search returns no partial results.
func (s *Searcher) scoreCandidates(ctx context.Context, parsed *core.ParsedQuery, candidates []*core.ConversationTurn, monitor SearchMonitor) ([]*core.SearchResult, error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]*core.SearchResult, 0, len(candidates))
	)

	for _, turn := range candidates {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		if turn == nil {
			continue
		}

		wg.Add(1)
		turn := turn
		err := s.pool.Submit(func() {
			defer wg.Done()
			relevance := s.scorer.Score(turn, parsed)

			mu.Lock()
			defer mu.Unlock()
			results = append(results, &core.SearchResult{
				Turn:      turn,
				Relevance: relevance,
			})
			monitor.TurnScored(turn, relevance)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
