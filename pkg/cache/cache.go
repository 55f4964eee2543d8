package cache

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	srvErrors "github.com/dtex/neuron/pkg/errors"
	"github.com/dtex/neuron/pkg/serializer"
)

const (
	DefaultNamespace      = "neuron"
	DefaultHost           = "localhost"
	DefaultPort           = 6379
	DefaultConnectTimeout = 30 * time.Second
)

type Options struct {
	// Namespace prefixes every key. Defaults to "neuron".
	Namespace string
	// Serializer encodes job bags and worker arguments. Defaults to a
	// serializer without registry that drops functions and scripts.
	Serializer *serializer.Serializer
	// ConnectTimeout bounds the retries of Connect.
	ConnectTimeout time.Duration
}

type StoredWorker struct {
	ID   string
	Args []any
}

// Snapshot is everything the cache holds: job definitions by name and the
// outstanding workers of each job.
type Snapshot struct {
	Jobs    map[string]serializer.Bag
	Workers map[string][]StoredWorker
}

// Cache mirrors job definitions and worker arguments into a Backend.
// Membership sets and values are written separately; a crash between the two
// writes can leave a set member without a value, which Load skips.
type Cache struct {
	backend        Backend
	namespace      string
	serializer     *serializer.Serializer
	connectTimeout time.Duration
}

func New(backend Backend, opts Options) *Cache {
	c := &Cache{
		backend:        backend,
		namespace:      opts.Namespace,
		serializer:     opts.Serializer,
		connectTimeout: opts.ConnectTimeout,
	}
	if c.namespace == "" {
		c.namespace = DefaultNamespace
	}
	if c.serializer == nil {
		c.serializer = &serializer.Serializer{}
	}
	if c.connectTimeout <= 0 {
		c.connectTimeout = DefaultConnectTimeout
	}
	return c
}

// Key joins parts under the namespace, e.g. Key("workers", "t") is
// "neuron:workers:t".
func (c *Cache) Key(parts ...string) string {
	return c.namespace + ":" + strings.Join(parts, ":")
}

func (c *Cache) Namespace() string {
	return c.namespace
}

func (c *Cache) Serializer() *serializer.Serializer {
	return c.serializer
}

// Connect pings the backend until it answers, backing off exponentially.
func (c *Cache) Connect(ctx context.Context) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		if err := c.backend.Ping(ctx); err != nil {
			zap.S().Named("cache").Debugw("backend not ready", "attempt", attempt, "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(c.connectTimeout),
	)
	if err != nil {
		return srvErrors.NewCacheIOError("connect", err)
	}

	zap.S().Named("cache").Debugw("connected", "namespace", c.namespace, "attempts", attempt)
	return nil
}

func (c *Cache) Close() error {
	return srvErrors.NewCacheIOError("close", c.backend.Close())
}

func (c *Cache) AddJob(ctx context.Context, name string, bag serializer.Bag) error {
	text, err := c.serializer.Stringify(bag)
	if err != nil {
		return srvErrors.NewCacheIOError("addJob", err)
	}
	if err := c.backend.SAdd(ctx, c.Key("jobs"), name); err != nil {
		return srvErrors.NewCacheIOError("addJob", err)
	}
	return srvErrors.NewCacheIOError("addJob", c.backend.Set(ctx, c.Key("job", name), text))
}

func (c *Cache) GetJob(ctx context.Context, name string) (serializer.Bag, error) {
	text, found, err := c.backend.Get(ctx, c.Key("job", name))
	if err != nil {
		return nil, srvErrors.NewCacheIOError("getJob", err)
	}
	if !found {
		return nil, srvErrors.NewJobNotFoundError(name)
	}
	bag, err := c.serializer.Parse(text)
	if err != nil {
		return nil, srvErrors.NewCacheIOError("getJob", err)
	}
	return bag, nil
}

func (c *Cache) RemoveJob(ctx context.Context, name string) error {
	if err := c.backend.SRem(ctx, c.Key("jobs"), name); err != nil {
		return srvErrors.NewCacheIOError("removeJob", err)
	}
	return srvErrors.NewCacheIOError("removeJob", c.backend.Del(ctx, c.Key("job", name)))
}

func (c *Cache) AddWorker(ctx context.Context, name, id string, args []any) error {
	text, err := c.serializer.StringifyArgs(args)
	if err != nil {
		return srvErrors.NewCacheIOError("addWorker", err)
	}
	if err := c.backend.SAdd(ctx, c.Key("workers", name), id); err != nil {
		return srvErrors.NewCacheIOError("addWorker", err)
	}
	return srvErrors.NewCacheIOError("addWorker", c.backend.Set(ctx, c.Key("workers", name, id), text))
}

func (c *Cache) GetWorker(ctx context.Context, name, id string) ([]any, error) {
	text, found, err := c.backend.Get(ctx, c.Key("workers", name, id))
	if err != nil {
		return nil, srvErrors.NewCacheIOError("getWorker", err)
	}
	if !found {
		return nil, srvErrors.NewWorkerNotFoundError(id)
	}
	args, err := c.serializer.ParseArgs(text)
	if err != nil {
		return nil, srvErrors.NewCacheIOError("getWorker", err)
	}
	return args, nil
}

func (c *Cache) RemoveWorker(ctx context.Context, name, id string) error {
	if err := c.backend.SRem(ctx, c.Key("workers", name), id); err != nil {
		return srvErrors.NewCacheIOError("removeWorker", err)
	}
	return srvErrors.NewCacheIOError("removeWorker", c.backend.Del(ctx, c.Key("workers", name, id)))
}

// RemoveAllWorkers deletes the worker set of a job and every entry in it.
func (c *Cache) RemoveAllWorkers(ctx context.Context, name string) error {
	ids, err := c.backend.SMembers(ctx, c.Key("workers", name))
	if err != nil {
		return srvErrors.NewCacheIOError("removeAllWorkers", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, c.Key("workers", name, id))
	}
	keys = append(keys, c.Key("workers", name))
	return srvErrors.NewCacheIOError("removeAllWorkers", c.backend.Del(ctx, keys...))
}

// Load reads every job definition and outstanding worker. Workers are listed
// in the backend's set enumeration order.
func (c *Cache) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Jobs:    make(map[string]serializer.Bag),
		Workers: make(map[string][]StoredWorker),
	}

	names, err := c.backend.SMembers(ctx, c.Key("jobs"))
	if err != nil {
		return nil, srvErrors.NewCacheIOError("load", err)
	}

	for _, name := range names {
		bag, err := c.GetJob(ctx, name)
		switch {
		case srvErrors.IsNotFoundError(err):
			zap.S().Named("cache").Debugw("job listed without definition", "job", name)
			continue
		case err != nil:
			return nil, err
		}
		snap.Jobs[name] = bag

		workers, err := c.loadWorkers(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(workers) > 0 {
			snap.Workers[name] = workers
		}
	}

	return snap, nil
}

func (c *Cache) loadWorkers(ctx context.Context, name string) ([]StoredWorker, error) {
	ids, err := c.backend.SMembers(ctx, c.Key("workers", name))
	if err != nil {
		return nil, srvErrors.NewCacheIOError("load", err)
	}

	workers := make([]StoredWorker, 0, len(ids))
	for _, id := range ids {
		args, err := c.GetWorker(ctx, name, id)
		switch {
		case srvErrors.IsNotFoundError(err):
			zap.S().Named("cache").Debugw("worker listed without arguments", "job", name, "worker", id)
			continue
		case err != nil:
			return nil, err
		}
		workers = append(workers, StoredWorker{ID: id, Args: args})
	}
	return workers, nil
}
