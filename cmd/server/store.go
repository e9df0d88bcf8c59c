package main

import (
	"context"
	"fmt"
	"log/slog"

	"countryref/internal/country/service"
	"countryref/internal/country/store"
	"countryref/internal/platform/config"
	"countryref/internal/platform/database"
	"countryref/internal/platform/health"
	"countryref/internal/platform/redis"
)

type openedStore struct {
	versions service.VersionStore
	health   health.Check
	close    func() error
}

// openStore builds the backend named by STORE_BACKEND.
func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (openedStore, error) {
	switch cfg.Store.Backend {
	case config.BackendPebble:
		s, err := store.OpenPebble(cfg.Store.PebbleDir, nil)
		if err != nil {
			return openedStore{}, err
		}
		log.Info("using pebble store", "dir", cfg.Store.PebbleDir)
		return openedStore{versions: s, health: alwaysUp, close: s.Close}, nil

	case config.BackendPostgres:
		db, err := database.Open(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return openedStore{}, err
		}
		s := store.NewPostgres(db)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return openedStore{}, fmt.Errorf("migrate: %w", err)
		}
		log.Info("using postgres store")
		return openedStore{versions: s, health: health.FromError(db.PingContext), close: db.Close}, nil

	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return openedStore{}, err
		}
		log.Info("using redis store")
		return openedStore{versions: store.NewRedis(client.Client), health: health.FromError(client.Health), close: client.Close}, nil

	default:
		log.Info("using in-memory store")
		return openedStore{versions: store.NewInMemory(), health: alwaysUp, close: func() error { return nil }}, nil
	}
}

func alwaysUp(context.Context) health.Result {
	return health.Up(nil)
}
