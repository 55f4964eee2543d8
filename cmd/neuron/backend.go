package main

import (
	"context"
	"fmt"

	"github.com/dtex/neuron/internal/config"
	"github.com/dtex/neuron/internal/store"
	"github.com/dtex/neuron/pkg/cache"
	"github.com/dtex/neuron/pkg/serializer"
)

// openBackend opens the storage selected by cfg.Driver.
func openBackend(ctx context.Context, cfg config.Cache) (cache.Backend, error) {
	switch cfg.Driver {
	case config.DriverRedis:
		return cache.NewRedisBackend(cache.RedisOptions{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		}), nil
	case config.DriverDuckDB:
		s, err := store.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s.KV(), nil
	case config.DriverBadger:
		return cache.NewBadgerBackend(cfg.Path)
	case config.DriverMemory:
		return cache.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

func openCache(ctx context.Context, cfg config.Cache, reg *serializer.Registry) (*cache.Cache, error) {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return cache.New(backend, cache.Options{
		Namespace: cfg.Namespace,
		Serializer: &serializer.Serializer{
			Registry:       reg,
			PersistScripts: cfg.PersistScripts,
		},
	}), nil
}
