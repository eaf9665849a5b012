package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool wraps pgxpool with squirrel-aware helpers so store code never
// touches raw SQL strings.
type Pool interface {
	Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error)
	Getx(ctx context.Context, dest interface{}, query squirrel.Sqlizer) error
	Selectx(ctx context.Context, dest interface{}, query squirrel.Sqlizer) error
	Close()
}

type pool struct {
	inner *pgxpool.Pool
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err = p.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return &pool{inner: p}, nil
}

func (p *pool) Execx(ctx context.Context, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("query.ToSql: %w", err)
	}

	return p.inner.Exec(ctx, sql, args...)
}

func (p *pool) Getx(ctx context.Context, dest interface{}, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query.ToSql: %w", err)
	}

	return pgxscan.Get(ctx, p.inner, dest, sql, args...)
}

func (p *pool) Selectx(ctx context.Context, dest interface{}, query squirrel.Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("query.ToSql: %w", err)
	}

	return pgxscan.Select(ctx, p.inner, dest, sql, args...)
}

func (p *pool) Close() {
	p.inner.Close()
}
