// Package bootstrap builds the long-lived collaborators shared by the server
// and the CLI from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/waqarniyazi/aiportalx/internal/config"
	"github.com/waqarniyazi/aiportalx/internal/db"
	dbBolt "github.com/waqarniyazi/aiportalx/internal/db/bolt"
	"github.com/waqarniyazi/aiportalx/internal/db/memory"
	dbMongo "github.com/waqarniyazi/aiportalx/internal/db/mongo"
	dbPostgres "github.com/waqarniyazi/aiportalx/internal/db/postgres"
	dbRedis "github.com/waqarniyazi/aiportalx/internal/db/redis"
)

// OpenStore connects the configured driver, waits for it and prepares its
// schema or index. The caller owns the returned store and must Close it.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	store, prepare, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	if prepare != nil {
		if err := prepare(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("prepare %s: %w", cfg.Driver, err)
		}
	}

	logger.Info("Connected to database", zap.String("driver", cfg.Driver))
	return store, nil
}

func newStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, func(context.Context) error, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil, nil
	case config.DriverBolt:
		s, err := dbBolt.Open(dbBolt.Options{Path: cfg.Bolt.Path})
		if err != nil {
			return nil, nil, err //nolint:wrapcheck // wrapped by OpenStore
		}
		return s, nil, nil
	case config.DriverMongo:
		s, err := dbMongo.NewStore(ctx, dbMongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			PoolSize:   cfg.Mongo.PoolSize,
		})
		if err != nil {
			return nil, nil, err //nolint:wrapcheck // wrapped by OpenStore
		}
		return s, s.EnsureIndexes, nil
	case config.DriverPostgres:
		s, err := dbPostgres.NewStore(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, err //nolint:wrapcheck // wrapped by OpenStore
		}
		return s, s.EnsureSchema, nil
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Redis.Addrs,
			Username:  cfg.Redis.Username,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
			IndexName: cfg.Redis.IndexName,
		})
		if err != nil {
			return nil, nil, err //nolint:wrapcheck // wrapped by OpenStore
		}
		return s, s.EnsureIndex, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// CacheStore returns the key-value store backing the facet cache: the
// database itself when it can hold keys, an in-process map otherwise.
func CacheStore(store db.Store) db.KVStore {
	if kv, ok := store.(db.KVStore); ok {
		return kv
	}
	return memory.NewKV()
}
