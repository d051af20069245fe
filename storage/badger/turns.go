package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/recallit/core"
	"github.com/poiesic/recallit/storage"
)

// TurnRepository implements storage.TurnRepository for BadgerDB.
type TurnRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.TurnRepository = (*TurnRepository)(nil)

// NewTurnRepository creates a new TurnRepository.
func NewTurnRepository(backend *Backend) (storage.TurnRepository, error) {
	idSeq, err := backend.GetSequence(turnIDSeq)
	if err != nil {
		return nil, err
	}

	return &TurnRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *TurnRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *TurnRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTurns adds one or more conversation turns to storage.
func (r *TurnRepository) AddTurns(ctx context.Context, turns ...*core.ConversationTurn) ([]*core.ConversationTurn, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, turn := range turns {
			// A caller-provided ID (typically core.IDFromContent for
			// deterministic imports) is kept; otherwise draw from the
			// sequence.
			if turn.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				turn.Id = core.ID(nextID)
			}

			turn.InsertedAt = time.Now().UTC()
			turn.UpdatedAt = turn.InsertedAt

			// Store primary record
			key := makeTurnKey(turn.Id)
			value := storage.MarshalTurn(turn)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeTurnDateKey(turn.Timestamp, turn.Id)
			if err := tx.Set(dateKey, storage.MarshalID(turn.Id)); err != nil {
				return err
			}

			// Update conversation index
			convKey := makeTurnConvKey(turn.ConversationId, turn.TurnNumber, turn.Id)
			if err := tx.Set(convKey, storage.MarshalID(turn.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return turns, err
}

// UpdateTurns updates existing conversation turns.
func (r *TurnRepository) UpdateTurns(ctx context.Context, turns ...*core.ConversationTurn) ([]*core.ConversationTurn, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, turn := range turns {
			key := makeTurnKey(turn.Id)

			// Read old turn to detect index changes
			old, err := r.readTurn(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			turn.UpdatedAt = time.Now().UTC()

			value := storage.MarshalTurn(turn)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index if timestamp changed
			if !old.Timestamp.Equal(turn.Timestamp) {
				oldDateKey := makeTurnDateKey(old.Timestamp, old.Id)
				if err := tx.Delete(oldDateKey); err != nil {
					return err
				}
				newDateKey := makeTurnDateKey(turn.Timestamp, turn.Id)
				if err := tx.Set(newDateKey, storage.MarshalID(turn.Id)); err != nil {
					return err
				}
			}

			// Update conversation index if position changed
			if old.ConversationId != turn.ConversationId || old.TurnNumber != turn.TurnNumber {
				oldConvKey := makeTurnConvKey(old.ConversationId, old.TurnNumber, old.Id)
				if err := tx.Delete(oldConvKey); err != nil {
					return err
				}
				newConvKey := makeTurnConvKey(turn.ConversationId, turn.TurnNumber, turn.Id)
				if err := tx.Set(newConvKey, storage.MarshalID(turn.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return turns, err
}

// DeleteTurns removes conversation turns by their IDs.
func (r *TurnRepository) DeleteTurns(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTurnKey(id)

			// Read turn to get index keys for cleanup
			turn, err := r.readTurn(tx, key)
			if err != nil {
				return err
			}
			if turn == nil {
				return storage.ErrNotFound
			}

			dateKey := makeTurnDateKey(turn.Timestamp, turn.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			convKey := makeTurnConvKey(turn.ConversationId, turn.TurnNumber, turn.Id)
			if err := tx.Delete(convKey); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetTurn retrieves a single conversation turn by ID.
func (r *TurnRepository) GetTurn(ctx context.Context, id core.ID) (*core.ConversationTurn, error) {
	var result *core.ConversationTurn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTurnKey(id)
		var err error
		result, err = r.readTurn(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetTurns retrieves multiple conversation turns by their IDs.
func (r *TurnRepository) GetTurns(ctx context.Context, ids ...core.ID) ([]*core.ConversationTurn, error) {
	var result []*core.ConversationTurn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTurnKey(id)
			turn, err := r.readTurn(tx, key)
			if err != nil {
				return err
			}
			if turn != nil {
				result = append(result, turn)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetTurnsByDateRange retrieves conversation turns within a time range.
func (r *TurnRepository) GetTurnsByDateRange(ctx context.Context, start, end time.Time) ([]*core.ConversationTurn, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.ConversationTurn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTurnDateKey(start)
		endKey := makePartialTurnDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			turn, err := r.readIndexedTurn(tx, iter.Item())
			if err != nil {
				return err
			}
			if turn != nil {
				results = append(results, turn)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentTurns retrieves the N most recent turns, ordered by timestamp descending.
func (r *TurnRepository) GetRecentTurns(ctx context.Context, limit int) ([]*core.ConversationTurn, error) {
	var results []*core.ConversationTurn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent turns first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialTurnDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(turnDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			turn, err := r.readIndexedTurn(tx, iter.Item())
			if err != nil {
				return err
			}
			if turn != nil {
				results = append(results, turn)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// GetTurnsByConversation retrieves all turns of one conversation, ordered
// by turn number ascending.
func (r *TurnRepository) GetTurnsByConversation(ctx context.Context, conversationId string) ([]*core.ConversationTurn, error) {
	var results []*core.ConversationTurn
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTurnConvPrefix(conversationId)

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			turn, err := r.readIndexedTurn(tx, iter.Item())
			if err != nil {
				return err
			}
			if turn != nil {
				results = append(results, turn)
			}
		}
		return nil
	}, false)

	return results, err
}

// readTurn reads and unmarshals a turn by its primary key.
// Returns nil (no error) if the key does not exist.
func (r *TurnRepository) readTurn(tx *badger.Txn, key []byte) (*core.ConversationTurn, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var turn *core.ConversationTurn
	err = item.Value(func(val []byte) error {
		var err error
		turn, err = storage.UnmarshalTurn(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return turn, nil
}

// readIndexedTurn resolves an index entry (whose value is a marshaled ID)
// to the full turn record.
func (r *TurnRepository) readIndexedTurn(tx *badger.Txn, item *badger.Item) (*core.ConversationTurn, error) {
	var turnID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		turnID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}

	return r.readTurn(tx, makeTurnKey(turnID))
}
