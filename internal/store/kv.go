package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/dtex/neuron/pkg/cache"
)

var _ cache.Backend = (*KV)(nil)

// KV implements cache.Backend on two DuckDB tables: cache_values for plain
// values and cache_sets for set members. Members enumerate in insertion
// order.
type KV struct {
	db    QueryInterceptor
	close func() error
}

func NewKV(db QueryInterceptor, close func() error) *KV {
	return &KV{db: db, close: close}
}

func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := sq.Select("cache_value").
		From(tableValues).
		Where(sq.Eq{"cache_key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *KV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, queryUpsertValue, key, value)
	return err
}

func (s *KV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{tableValues, tableSets} {
			query, args, err := sq.Delete(table).Where(sq.Eq{"cache_key": keys}).ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *KV) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	builder := sq.Insert(tableSets).Columns("cache_key", "member")
	for _, m := range members {
		builder = builder.Values(key, m)
	}
	query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *KV) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	query, args, err := sq.Delete(tableSets).
		Where(sq.Eq{"cache_key": key, "member": members}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *KV) SMembers(ctx context.Context, key string) ([]string, error) {
	query, args, err := sq.Select("member").
		From(tableSets).
		Where(sq.Eq{"cache_key": key}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *KV) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *KV) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func (s *KV) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
