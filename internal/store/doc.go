// Package store implements the DuckDB backend of the neuron cache.
//
// The cache only needs plain string values and string sets, so the store keeps
// them in two tables and exposes them through KV, which satisfies
// cache.Backend. It lets `neuron serve` keep its durable mirror in a local
// file when no Redis server is available.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                              KV                                 │
//	│               Get/Set/Del            SAdd/SRem/SMembers         │
//	│                   ▼                          ▼                  │
//	│              cache_values                cache_sets             │
//	├─────────────────────────────────────────────────────────────────┤
//	│                 QueryInterceptor (debug logging)                │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Data Sources
//
// Tables created by LOCAL MIGRATIONS (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  cache_values      │  key → serialized job bag or argument list  │
//	│  cache_sets        │  (key, member) pairs: job names, worker ids │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization Flow
//
//	Open(ctx, path)
//	    ├── NewDB(path)       → duckdb connection (":memory:" for tests)
//	    ├── NewStore(db)      → KV wrapped in a QueryInterceptor
//	    └── migrations.Run()  → creates cache_values, cache_sets
//
// # KV
//
// Schema:
//
//	cache_values (
//	    cache_key VARCHAR PRIMARY KEY,
//	    cache_value VARCHAR NOT NULL,
//	    created_at TIMESTAMP,
//	    updated_at TIMESTAMP
//	)
//
//	cache_sets (
//	    cache_key VARCHAR,
//	    member VARCHAR,
//	    seq BIGINT DEFAULT nextval('cache_sets_seq'),
//	    PRIMARY KEY (cache_key, member)
//	)
//
// Methods:
//   - Get(ctx, key) → value, found (squirrel SELECT)
//   - Set(ctx, key, value) → error (uses UPSERT, updates updated_at)
//   - Del(ctx, keys...) → error (values and sets, one transaction)
//   - SAdd/SRem(ctx, key, members...) → error (INSERT ... ON CONFLICT DO NOTHING)
//   - SMembers(ctx, key) → members ordered by seq, i.e. insertion order
//
// # QueryInterceptor
//
// All database operations are wrapped with a QueryInterceptor that provides
// debug logging for all queries, with their arguments and duration.
//
// Logged operations:
//   - QueryRowContext
//   - QueryContext
//   - ExecContext
//
// # Design Patterns
//
// Upserts:
//   - Set uses INSERT ... ON CONFLICT (cache_key) DO UPDATE
//   - SAdd uses ON CONFLICT DO NOTHING so a member keeps its first seq
//
// Query Building:
//   - Reads and deletes are built with squirrel
//   - sq.Eq with a slice expands to IN (...) for multi-key deletes
package store
