// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package recallit stores conversation turns and searches them with
// intent-aware heuristic ranking.
package recallit

import (
	"log/slog"

	"github.com/poiesic/recallit/search"
	"github.com/poiesic/recallit/storage"
	"github.com/poiesic/recallit/storage/badger"
)

// Database bundles the storage backend and the turn repository behind a
// single open/close lifecycle.
type Database struct {
	backend  *badger.Backend
	turnRepo storage.TurnRepository
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
}

// WithInMemory opens the database in memory, discarding all data on
// close. Intended for tests and experiments.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens (or creates) a conversation database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	turnRepo, err := badger.NewTurnRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		turnRepo: turnRepo,
		logger:   slog.Default(),
	}, nil
}

// Close closes the repository and the backing store.
func (db *Database) Close() error {
	if err := db.turnRepo.Close(); err != nil {
		db.logger.Error("error closing turn repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// TurnRepository returns the conversation turn repository.
func (db *Database) TurnRepository() storage.TurnRepository {
	return db.turnRepo
}

// NewSearcher creates a searcher over this database's turns.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.turnRepo, opts...)
}
