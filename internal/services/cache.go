package services

import (
	"context"
	"maps"
	"slices"
	"sort"

	"go.uber.org/zap"

	"github.com/dtex/neuron/internal/models"
	"github.com/dtex/neuron/pkg/cache"
)

// CacheService reads and prunes the durable cache without a running
// scheduler.
type CacheService struct {
	cache *cache.Cache
}

func NewCacheService(c *cache.Cache) *CacheService {
	return &CacheService{cache: c}
}

// Snapshot returns every cached job with its outstanding workers, sorted by
// job name.
func (s *CacheService) Snapshot(ctx context.Context) ([]models.CacheEntry, error) {
	if err := s.cache.Connect(ctx); err != nil {
		return nil, err
	}
	snap, err := s.cache.Load(ctx)
	if err != nil {
		return nil, err
	}

	names := slices.Collect(maps.Keys(snap.Jobs))
	sort.Strings(names)

	entries := make([]models.CacheEntry, 0, len(names))
	for _, name := range names {
		entry := models.CacheEntry{Name: name, Properties: snap.Jobs[name]}
		for _, w := range snap.Workers[name] {
			entry.Workers = append(entry.Workers, models.CachedWorker{ID: w.ID, Args: w.Args})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Purge removes a job and all its workers from the cache.
func (s *CacheService) Purge(ctx context.Context, name string) error {
	if err := s.cache.Connect(ctx); err != nil {
		return err
	}
	if err := s.cache.RemoveAllWorkers(ctx, name); err != nil {
		return err
	}
	if err := s.cache.RemoveJob(ctx, name); err != nil {
		return err
	}
	zap.S().Named("cache_service").Infow("job purged", "job", name, "namespace", s.cache.Namespace())
	return nil
}
