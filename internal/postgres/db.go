// Package postgres is the PostgreSQL backend: the same document, activity
// and API key repositories as the SQLite backend, over a pgx pool.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ganot/checkvault/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool, verifies connectivity with a ping and
// applies the schema migrations.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := migrate.Postgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
