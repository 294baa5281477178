package store

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

const slowQueryThreshold = 500 * time.Millisecond

// QueryInterceptor is the subset of *sql.DB the repositories use.
type QueryInterceptor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// queryInterceptor logs every statement at debug level and slow ones as warnings.
type queryInterceptor struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func newQueryInterceptor(db *sql.DB) *queryInterceptor {
	return &queryInterceptor{
		db:     db,
		logger: zap.S().Named("store"),
	}
}

func (q *queryInterceptor) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	defer q.observe(time.Now(), "query_row", query, args)
	return q.db.QueryRowContext(ctx, query, args...)
}

func (q *queryInterceptor) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer q.observe(time.Now(), "query", query, args)
	return q.db.QueryContext(ctx, query, args...)
}

func (q *queryInterceptor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer q.observe(time.Now(), "exec", query, args)
	return q.db.ExecContext(ctx, query, args...)
}

func (q *queryInterceptor) observe(start time.Time, op, query string, args []any) {
	elapsed := time.Since(start)
	if elapsed >= slowQueryThreshold {
		q.logger.Warnw("slow "+op, "query", query, "args", args, "elapsed", elapsed)
		return
	}
	q.logger.Debugw(op, "query", query, "args", args, "elapsed", elapsed)
}
