package store

import (
	"context"
	"fmt"

	"github.com/mkhasanov/secure-note/internal/config"
	"github.com/mkhasanov/secure-note/internal/logger"
	"github.com/mkhasanov/secure-note/migrations"
)

// Storages aggregates every repository backed by the shared database
// handle. It is constructed once at startup and passed into the service
// layer; there is no ambient global connection.
type Storages struct {
	UserRepository  UserRepository
	NoteRepository  NoteRepository
	GrantRepository GrantRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories onto the shared connection pool.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		NoteRepository:  NewNoteRepository(db, log),
		GrantRepository: NewGrantRepository(db, log),
		db:              db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
