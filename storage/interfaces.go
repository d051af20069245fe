package storage

import (
	"context"
	"time"

	"github.com/poiesic/recallit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TurnRepository provides operations for managing conversation turns.
type TurnRepository interface {
	Repository

	// AddTurns adds one or more conversation turns to storage.
	// Turns without an ID receive one from a sequence; a caller-provided
	// non-zero ID (e.g. core.IDFromContent) is kept, so deterministic
	// imports can detect already-stored turns. Sets InsertedAt/UpdatedAt.
	// Returns the turns with IDs and timestamps populated.
	AddTurns(ctx context.Context, turns ...*core.ConversationTurn) ([]*core.ConversationTurn, error)

	// UpdateTurns updates existing conversation turns.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any turn doesn't exist.
	UpdateTurns(ctx context.Context, turns ...*core.ConversationTurn) ([]*core.ConversationTurn, error)

	// DeleteTurns removes conversation turns by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any turn doesn't exist.
	DeleteTurns(ctx context.Context, ids ...core.ID) error

	// GetTurn retrieves a single conversation turn by ID.
	// Returns ErrNotFound if the turn doesn't exist.
	GetTurn(ctx context.Context, id core.ID) (*core.ConversationTurn, error)

	// GetTurns retrieves multiple conversation turns by their IDs.
	// Returns only the turns that exist (no error for missing turns).
	GetTurns(ctx context.Context, ids ...core.ID) ([]*core.ConversationTurn, error)

	// GetTurnsByDateRange retrieves conversation turns within a time range.
	// Returns turns where start <= Timestamp < end, ordered by timestamp.
	GetTurnsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ConversationTurn, error)

	// GetRecentTurns retrieves the N most recent turns, ordered by
	// timestamp descending. Returns up to limit turns, most recent first.
	GetRecentTurns(ctx context.Context, limit int) ([]*core.ConversationTurn, error)

	// GetTurnsByConversation retrieves all turns of one conversation,
	// ordered by turn number ascending.
	GetTurnsByConversation(ctx context.Context, conversationId string) ([]*core.ConversationTurn, error)
}
