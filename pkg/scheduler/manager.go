package scheduler

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dtex/neuron/pkg/async"
	"github.com/dtex/neuron/pkg/cache"
	srvErrors "github.com/dtex/neuron/pkg/errors"
	"github.com/dtex/neuron/pkg/serializer"
)

// Manager owns a set of named jobs and, optionally, the cache that mirrors
// them.
type Manager struct {
	id          string
	concurrency int
	emitErrors  bool
	cache       *cache.Cache
	registry    *serializer.Registry
	log         *zap.SugaredLogger

	mu   sync.RWMutex
	jobs map[string]*Job

	// mirror serializes cache writes; order keeps submissions in the same
	// order as the in-memory mutations they follow.
	mirror *async.Pool
	order  sync.Mutex

	loop      *loop
	listeners listeners
	closeOnce sync.Once
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		id:          uuid.NewString(),
		concurrency: DefaultConcurrency,
		jobs:        make(map[string]*Job),
	}
	for _, o := range opts {
		o(m)
	}
	if m.log == nil {
		m.log = zap.S().Named("scheduler")
	}
	m.log = m.log.With("manager_id", m.id)
	if m.registry == nil {
		m.registry = serializer.NewRegistry()
	}
	if m.cache != nil {
		m.mirror = async.NewPool(1)
	}
	m.loop = newLoop("manager")
	return m
}

func (m *Manager) ID() string {
	return m.id
}

func (m *Manager) Registry() *serializer.Registry {
	return m.registry
}

// Subscribe registers fn for every event of every job plus load and error.
func (m *Manager) Subscribe(fn Listener) (cancel func()) {
	return m.listeners.subscribe(fn)
}

// AddJob registers a new job. Concurrency defaults to the manager's limit.
func (m *Manager) AddJob(name string, opts JobOptions) (*Job, error) {
	return m.addJob(name, opts, false)
}

func (m *Manager) addJob(name string, opts JobOptions, cached bool) (*Job, error) {
	if opts.Concurrency == 0 {
		opts.Concurrency = m.concurrency
	}
	if opts.Work != nil && opts.WorkName == "" {
		// only the registered value itself is named, a lookalike closure is not
		if name, ok := m.registry.NameOf(opts.Work); ok {
			opts.WorkName = name
		}
	}
	if opts.Work == nil && opts.WorkName != "" {
		work, err := m.resolveWork(opts.WorkName)
		if err != nil {
			return nil, err
		}
		opts.Work = work
	}

	m.mu.Lock()
	if _, ok := m.jobs[name]; ok {
		m.mu.Unlock()
		return nil, srvErrors.NewDuplicateJobError(name)
	}
	job, err := NewJob(name, opts)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.jobs[name] = job
	m.mu.Unlock()

	job.Subscribe(func(e Event) {
		if e.Type == EventFinish {
			m.forget(name, e.Worker.ID())
		}
		m.listeners.emit(e)
	})

	m.log.Infow("job added", "job", name, "concurrency", job.Concurrency(), "cached", cached)

	if !cached {
		def := job.Definition()
		m.write("addJob", func(ctx context.Context) error {
			return m.cache.AddJob(ctx, name, def)
		})
	}
	return job, nil
}

// RemoveJob drops the queued workers of a job and unregisters it. Running
// workers finish normally. The job and all its workers leave the cache.
func (m *Manager) RemoveJob(name string) error {
	m.mu.Lock()
	job, ok := m.jobs[name]
	if !ok {
		m.mu.Unlock()
		return srvErrors.NewJobNotFoundError(name)
	}
	delete(m.jobs, name)
	m.mu.Unlock()

	dropped := job.retire()
	m.log.Infow("job removed", "job", name, "dropped", len(dropped))

	m.write("removeJob", func(ctx context.Context) error {
		if err := m.cache.RemoveAllWorkers(ctx, name); err != nil {
			return err
		}
		return m.cache.RemoveJob(ctx, name)
	})
	return nil
}

// Enqueue creates a worker of the named job and returns its id.
func (m *Manager) Enqueue(name string, args ...any) (string, error) {
	job, err := m.lookup(name)
	if err != nil {
		return "", err
	}

	m.order.Lock()
	defer m.order.Unlock()

	w, err := job.Enqueue(args...)
	if err != nil {
		return "", err
	}

	id := w.ID()
	m.log.Debugw("worker enqueued", "job", name, "worker", id)
	m.submit("addWorker", func(ctx context.Context) error {
		return m.cache.AddWorker(ctx, name, id, args)
	})
	return id, nil
}

// RemoveWorker removes a waiting worker. It returns false, without error,
// when the worker is already running.
func (m *Manager) RemoveWorker(name, id string) (bool, error) {
	job, err := m.lookup(name)
	if err != nil {
		return false, err
	}

	removed, err := job.RemoveWorker(id)
	if err != nil || !removed {
		return removed, err
	}

	m.forget(name, id)
	return true, nil
}

func (m *Manager) GetWorker(name, id string) (*Worker, error) {
	job, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return job.GetWorker(id)
}

// GetPosition returns the queue index of a worker, -1 when not queued.
func (m *Manager) GetPosition(name, id string) (int, error) {
	job, err := m.lookup(name)
	if err != nil {
		return -1, err
	}
	return job.GetPosition(id), nil
}

func (m *Manager) Job(name string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[name]
	if !ok {
		return nil, srvErrors.NewJobNotFoundError(name)
	}
	return job, nil
}

// Jobs returns the registered jobs sorted by name.
func (m *Manager) Jobs() []*Job {
	m.mu.RLock()
	jobs := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		jobs = append(jobs, j)
	}
	m.mu.RUnlock()

	slices.SortFunc(jobs, func(a, b *Job) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return jobs
}

// Load connects the cache and restores what it holds: jobs not registered
// yet are recreated from their stored definition, and every stored worker is
// enqueued again under its stored id. EventLoad follows once done.
func (m *Manager) Load(ctx context.Context) error {
	if m.cache == nil {
		return srvErrors.NewConfigurationError("load requires a cache")
	}

	if err := m.cache.Connect(ctx); err != nil {
		m.report(err)
		return err
	}

	snap, err := m.cache.Load(ctx)
	if err != nil {
		m.report(err)
		return err
	}

	names := make([]string, 0, len(snap.Jobs))
	for name := range snap.Jobs {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, err := m.Job(name); err == nil {
			continue
		}
		opts, err := m.jobOptions(snap.Jobs[name])
		if err != nil {
			m.log.Errorw("cannot restore job", "job", name, "error", err)
			continue
		}
		if _, err := m.addJob(name, opts, true); err != nil {
			m.log.Errorw("cannot restore job", "job", name, "error", err)
		}
	}

	restored := 0
	for name, workers := range snap.Workers {
		job, err := m.Job(name)
		if err != nil {
			m.log.Debugw("skipping workers of unknown job", "job", name, "count", len(workers))
			continue
		}
		for _, sw := range workers {
			if _, err := job.enqueueWithID(sw.ID, sw.Args); err != nil {
				m.log.Debugw("skipping stored worker", "job", name, "worker", sw.ID, "error", err)
				continue
			}
			restored++
		}
	}

	m.log.Infow("cache loaded", "jobs", len(snap.Jobs), "workers", restored)
	m.loop.schedule(func() {
		m.listeners.emit(Event{Type: EventLoad})
	})
	return nil
}

// Flush waits until every cache write issued so far has been applied.
func (m *Manager) Flush(ctx context.Context) error {
	if m.mirror == nil {
		return nil
	}
	return m.mirror.Drain(ctx)
}

// Close stops every job, applies pending cache writes and closes the cache.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		m.mu.Lock()
		jobs := m.jobs
		m.jobs = make(map[string]*Job)
		m.mu.Unlock()

		for _, j := range jobs {
			j.Close()
		}
		m.loop.close()

		if m.mirror != nil {
			if ferr := m.mirror.Drain(context.Background()); ferr != nil {
				m.log.Debugw("pending cache writes lost", "error", ferr)
			}
			m.mirror.Close()
			err = m.cache.Close()
		}
		m.log.Infow("manager closed", "jobs", len(jobs))
	})
	return err
}

func (m *Manager) lookup(name string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.jobs) == 0 {
		return nil, srvErrors.NewConfigurationError("no jobs registered")
	}
	job, ok := m.jobs[name]
	if !ok {
		return nil, srvErrors.NewJobNotFoundError(name)
	}
	return job, nil
}

// forget removes a worker from the cache.
func (m *Manager) forget(name, id string) {
	m.write("removeWorker", func(ctx context.Context) error {
		return m.cache.RemoveWorker(ctx, name, id)
	})
}

func (m *Manager) write(op string, fn func(ctx context.Context) error) {
	m.order.Lock()
	defer m.order.Unlock()
	m.submit(op, fn)
}

// submit hands fn to the mirror pool. The caller holds m.order.
func (m *Manager) submit(op string, fn func(ctx context.Context) error) {
	if m.mirror == nil {
		return
	}
	m.mirror.Submit(func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	}).Then(func(r async.Result[any]) {
		if r.Err != nil {
			m.report(fmt.Errorf("%s: %w", op, r.Err))
		}
	})
}

func (m *Manager) report(err error) {
	if !m.emitErrors {
		m.log.Debugw("cache error", "error", err)
		return
	}
	m.loop.schedule(func() {
		m.listeners.emit(Event{Type: EventError, Err: err})
	})
}

func (m *Manager) resolveWork(name string) (Work, error) {
	fn, ok := m.registry.Lookup(name)
	if !ok {
		return nil, srvErrors.NewConfigurationError("work `%s` is not registered", name)
	}
	if work, ok := asWork(fn); ok {
		return work, nil
	}
	return nil, srvErrors.NewConfigurationError("work `%s` has type %T", name, fn)
}

// jobOptions rebuilds options from a stored definition.
func (m *Manager) jobOptions(bag serializer.Bag) (JobOptions, error) {
	var opts JobOptions

	switch n := bag["concurrency"].(type) {
	case float64:
		opts.Concurrency = int(n)
	case int:
		opts.Concurrency = n
	case int64:
		opts.Concurrency = int(n)
	}

	switch w := bag["work"].(type) {
	case serializer.Ref:
		return opts, srvErrors.NewConfigurationError("work `%s` is not registered", w.Name)
	case *serializer.Script:
		opts.Script = w
	case nil:
		return opts, srvErrors.NewConfigurationError("stored definition has no work")
	default:
		work, ok := asWork(w)
		if !ok {
			return opts, srvErrors.NewConfigurationError("stored work has type %T", w)
		}
		opts.Work = work
		if name, found := m.registry.NameOf(w); found {
			opts.WorkName = name
		}
	}

	for k, v := range bag {
		if k == "concurrency" || k == "work" {
			continue
		}
		if opts.Properties == nil {
			opts.Properties = make(map[string]any)
		}
		opts.Properties[k] = v
	}
	return opts, nil
}

func asWork(fn any) (Work, bool) {
	switch f := fn.(type) {
	case Work:
		return f, true
	case func(context.Context, *Worker):
		return f, true
	case func(context.Context, []any) (any, error):
		return Func(f), true
	}
	return nil, false
}
