package scheduler

import (
	"go.uber.org/zap"

	"github.com/dtex/neuron/pkg/cache"
	"github.com/dtex/neuron/pkg/serializer"
)

type Option func(*Manager)

// WithConcurrency sets the limit for jobs added without their own.
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithCache mirrors jobs and workers into c. The Manager closes c on Close.
func WithCache(c *cache.Cache) Option {
	return func(m *Manager) {
		m.cache = c
	}
}

// WithEmitErrors delivers cache failures as EventError instead of only
// logging them.
func WithEmitErrors(emit bool) Option {
	return func(m *Manager) {
		m.emitErrors = emit
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// WithRegistry resolves JobOptions.WorkName and work restored from the cache.
func WithRegistry(r *serializer.Registry) Option {
	return func(m *Manager) {
		m.registry = r
	}
}
