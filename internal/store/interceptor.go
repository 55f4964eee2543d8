package store

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// QueryInterceptor is the subset of *sql.DB the stores use.
type QueryInterceptor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	PingContext(ctx context.Context) error
}

type loggingInterceptor struct {
	*sql.DB
	log *zap.SugaredLogger
}

// NewQueryInterceptor wraps db so every statement is logged at debug level.
func NewQueryInterceptor(db *sql.DB) QueryInterceptor {
	return &loggingInterceptor{DB: db, log: zap.S().Named("store")}
}

func (i *loggingInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := i.DB.ExecContext(ctx, query, args...)
	i.log.Debugw("exec", "query", query, "args", args, "duration", time.Since(start), "error", err)
	return res, err
}

func (i *loggingInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.DB.QueryContext(ctx, query, args...)
	i.log.Debugw("query", "query", query, "args", args, "duration", time.Since(start), "error", err)
	return rows, err
}

func (i *loggingInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := i.DB.QueryRowContext(ctx, query, args...)
	i.log.Debugw("query row", "query", query, "args", args, "duration", time.Since(start))
	return row
}
