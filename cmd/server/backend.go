package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/checkvault/internal/config"
	"github.com/ganot/checkvault/internal/domain/activity"
	"github.com/ganot/checkvault/internal/domain/project"
	"github.com/ganot/checkvault/internal/postgres"
	"github.com/ganot/checkvault/internal/sqlite"
)

// apiKeyStore registers and resolves bearer tokens.
type apiKeyStore interface {
	Add(ctx context.Context, token, owner, description string) error
	ResolveOwner(ctx context.Context, token string) (string, error)
}

// backend bundles the repositories of one storage driver.
type backend struct {
	documents project.DocumentStore
	activity  activity.Repository
	apiKeys   apiKeyStore
	close     func()
}

// openBackend connects the configured driver and applies its migrations.
func openBackend(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*backend, error) {
	switch cfg.Driver {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres backend")
		return &backend{
			documents: postgres.NewDocumentRepository(pool),
			activity:  postgres.NewActivityRepository(pool),
			apiKeys:   postgres.NewAPIKeyRepository(pool),
			close:     pool.Close,
		}, nil
	case "sqlite":
		if err := ensureDBDir(cfg.Path); err != nil {
			return nil, fmt.Errorf("prepare database path: %w", err)
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("using sqlite backend", "path", cfg.Path)
		return &backend{
			documents: sqlite.NewDocumentRepository(db),
			activity:  sqlite.NewActivityRepository(db),
			apiKeys:   sqlite.NewAPIKeyRepository(db),
			close:     func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}
