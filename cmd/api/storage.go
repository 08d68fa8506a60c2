// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/bookshelf/internal/library/book"
	"github.com/taibuivan/bookshelf/internal/platform/config"
	"github.com/taibuivan/bookshelf/internal/platform/migration"
	mongostore "github.com/taibuivan/bookshelf/internal/platform/mongo"
	pgstore "github.com/taibuivan/bookshelf/internal/platform/postgres"
	redisstore "github.com/taibuivan/bookshelf/internal/platform/redis"
)

// storage is the book store selected by the connection string scheme.
type storage struct {
	name  string
	repo  book.Repository
	ping  func(ctx context.Context) error
	close func()
}

// openStorage connects the backend named by cfg and returns a ready repository.
//
// The Postgres backend applies pending migrations before it is returned.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.StorageURL(), log)
		if err != nil {
			return nil, err
		}

		if err := migration.RunUp(cfg.StorageURL(), cfg.MigrationPath, log); err != nil {
			pool.Close()
			return nil, err
		}

		return &storage{
			name: "postgres",
			repo: book.NewPostgresRepository(pool),
			ping: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
			close: func() {
				log.Info("closing postgres pool")
				pool.Close()
			},
		}, nil

	case config.BackendMongo:
		client, db, err := mongostore.NewClient(ctx, cfg.StorageURL(), cfg.MongoDatabase, log)
		if err != nil {
			return nil, err
		}

		return &storage{
			name: "mongodb",
			repo: book.NewMongoRepository(db),
			ping: func(ctx context.Context) error { return mongostore.Ping(ctx, client) },
			close: func() {
				log.Info("closing mongo client")
				if err := client.Disconnect(context.Background()); err != nil {
					log.Error("mongo disconnect error", slog.Any("error", err))
				}
			},
		}, nil

	case config.BackendMemory:
		log.Warn("using in-memory storage; books are lost on restart")
		return &storage{
			name:  "memory",
			repo:  book.NewMemoryRepository(),
			ping:  func(context.Context) error { return nil },
			close: func() {},
		}, nil
	}

	return nil, fmt.Errorf("storage: unhandled backend %q", backend)
}

// withCache wraps the store in the Redis book cache when REDIS_URL is set.
//
// The returned ping is nil when caching is disabled.
func withCache(ctx context.Context, cfg *config.Config, store *storage, log *slog.Logger) (ping func(context.Context) error, closeFn func(), err error) {
	if !cfg.CacheEnabled() {
		return nil, func() {}, nil
	}

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return nil, nil, err
	}

	store.repo = book.NewCachedRepository(store.repo, rdb, cfg.CacheTTL, log)

	ping = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	closeFn = func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}
	return ping, closeFn, nil
}
