// Package kvstore persists small string values under well-known keys so
// session and preference state survives a process restart.
package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	"harborbank/internal/platform/config"
	"harborbank/internal/platform/postgres"
	"harborbank/internal/platform/redis"
)

// Store is a durable string key-value store.
//
// Get returns sentinel.ErrNotFound when the key is absent. Delete of an
// absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Closer releases the connections held by a backend.
type Closer func() error

// Open builds the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg config.Server, logger *slog.Logger) (Store, Closer, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		return NewMemory(), noop, nil
	case config.StorageFile, "":
		st, err := NewFile(cfg.Storage.FilePath, WithFileLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("storage backend %q requires REDIS_URL", cfg.Storage.Backend)
		}
		return NewRedis(client.Client), client.Close, nil
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if db == nil {
			return nil, nil, fmt.Errorf("storage backend %q requires DATABASE_URL", cfg.Storage.Backend)
		}
		st := NewPostgres(db)
		if err := st.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.InfoContext(ctx, "postgres storage ready")
		return st, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
