package infra

import (
	"context"
	"fmt"

	"github.com/lingofusion/lingofusion/internal/config"
	"github.com/lingofusion/lingofusion/internal/infra/postgres"
	"github.com/lingofusion/lingofusion/internal/infra/sqlite"
	"github.com/lingofusion/lingofusion/internal/storage"
)

// OpenStore opens the key-value store selected by the storage driver.
func OpenStore(ctx context.Context, cfg config.Storage) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		dsn, err := cfg.DSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.MaxConnections),
			MaxConnLifetime: cfg.MaxConnLifetime,
		})
		if err != nil {
			return nil, err
		}
		store, err := postgres.NewStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		return storage.NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Driver)
}
