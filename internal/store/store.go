package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/dtex/neuron/internal/store/migrations"
)

// NewDB opens a DuckDB database at path. ":memory:" (or "") opens a private
// in-memory database.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// one connection: statements apply in the order they are issued
	db.SetMaxOpenConns(1)
	return db, nil
}

// Store provides access to all storage repositories.
type Store struct {
	db   *sql.DB
	kv   *KV
	once sync.Once
	err  error
}

func NewStore(db *sql.DB) *Store {
	s := &Store{db: db}
	s.kv = NewKV(NewQueryInterceptor(db), s.Close)
	return s
}

// Open opens the database at path, applies migrations and returns the store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	s := NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, s.db)
}

// KV returns the key-value view backing the cache.
func (s *Store) KV() *KV {
	return s.kv
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.once.Do(func() {
		s.err = s.db.Close()
	})
	return s.err
}
