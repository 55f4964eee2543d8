package scheduler

import (
	"context"
	"errors"
	"maps"
	"sync"

	srvErrors "github.com/dtex/neuron/pkg/errors"
	"github.com/dtex/neuron/pkg/serializer"
)

const DefaultConcurrency = 50

// ErrClosed is returned when enqueueing on a job that was closed or removed.
var ErrClosed = errors.New("job is closed")

// JobOptions describe a job. Exactly one of Work, WorkName or Script provides
// the work procedure; WorkName is resolved by the Manager through its
// registry.
type JobOptions struct {
	Concurrency int
	Work        Work
	WorkName    string
	Script      *serializer.Script
	Properties  map[string]any
}

type Stats struct {
	Running int
	Waiting int
}

// Job is a named unit of work with a concurrency limit. Workers beyond the
// limit wait in FIFO order.
type Job struct {
	name        string
	concurrency int
	work        Work
	workName    string
	script      *serializer.Script
	properties  map[string]any

	mu      sync.Mutex
	running map[string]*Worker
	waiting map[string]*Worker
	queue   []string
	drained bool
	retired bool

	loop      *loop
	listeners listeners
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewJob(name string, opts JobOptions) (*Job, error) {
	if name == "" {
		return nil, srvErrors.NewConfigurationError("job name is required")
	}
	if _, ok := opts.Properties["finished"]; ok {
		return nil, srvErrors.NewConfigurationError("`finished` is a reserved property")
	}
	if opts.Concurrency < 0 {
		return nil, srvErrors.NewConfigurationError("job `%s`: concurrency must not be negative, got %d", name, opts.Concurrency)
	}

	work := opts.Work
	if work == nil && opts.Script != nil {
		work = ScriptWork(opts.Script)
	}
	if work == nil {
		return nil, srvErrors.NewConfigurationError("job `%s`: work procedure is required", name)
	}

	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Job{
		name:        name,
		concurrency: concurrency,
		work:        work,
		workName:    opts.WorkName,
		script:      opts.Script,
		properties:  maps.Clone(opts.Properties),
		running:     make(map[string]*Worker),
		waiting:     make(map[string]*Worker),
		loop:        newLoop(name),
		ctx:         ctx,
		cancel:      cancel,
	}, nil
}

// ScriptWork runs a compiled script with the worker's arguments.
func ScriptWork(s *serializer.Script) Work {
	return Func(func(_ context.Context, args []any) (any, error) {
		return s.Call(args...)
	})
}

func (j *Job) Name() string {
	return j.name
}

func (j *Job) Concurrency() int {
	return j.concurrency
}

// Properties returns a copy of the job's custom properties.
func (j *Job) Properties() map[string]any {
	return maps.Clone(j.properties)
}

func (j *Job) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Stats{Running: len(j.running), Waiting: len(j.waiting)}
}

// Definition returns the serializable description of the job: its
// properties plus "concurrency" and "work".
func (j *Job) Definition() serializer.Bag {
	bag := make(serializer.Bag, len(j.properties)+2)
	maps.Copy(bag, j.properties)
	bag["concurrency"] = j.concurrency
	switch {
	case j.workName != "":
		bag["work"] = serializer.Ref{Name: j.workName}
	case j.script != nil:
		bag["work"] = j.script
	default:
		bag["work"] = j.work
	}
	return bag
}

// Subscribe registers fn for start, finish and empty events of this job.
func (j *Job) Subscribe(fn Listener) (cancel func()) {
	return j.listeners.subscribe(fn)
}

// Enqueue creates a worker for args. It runs on a later scheduling turn when
// a slot is free, otherwise it waits at the back of the queue.
func (j *Job) Enqueue(args ...any) (*Worker, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.retired {
		return nil, ErrClosed
	}

	id := RandomString(idBits)
	for j.liveLocked(id) {
		id = RandomString(idBits)
	}
	return j.admitLocked(id, args)
}

func (j *Job) enqueueWithID(id string, args []any) (*Worker, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.retired {
		return nil, ErrClosed
	}
	if j.liveLocked(id) {
		return nil, srvErrors.NewDuplicateWorkerError(id)
	}
	return j.admitLocked(id, args)
}

// RemoveWorker drops a waiting worker from the queue. Running workers cannot
// be removed and yield false without an error.
func (j *Job) RemoveWorker(id string) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.running[id]; ok {
		return false, nil
	}
	if _, ok := j.waiting[id]; !ok {
		return false, srvErrors.NewWorkerNotFoundError(id)
	}

	delete(j.waiting, id)
	for i, qid := range j.queue {
		if qid == id {
			j.queue = append(j.queue[:i], j.queue[i+1:]...)
			break
		}
	}
	return true, nil
}

func (j *Job) GetWorker(id string) (*Worker, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w, ok := j.running[id]; ok {
		return w, nil
	}
	if w, ok := j.waiting[id]; ok {
		return w, nil
	}
	return nil, srvErrors.NewWorkerNotFoundError(id)
}

// GetPosition returns the queue index of id, or -1 when it is not queued.
func (j *Job) GetPosition(id string) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i, qid := range j.queue {
		if qid == id {
			return i
		}
	}
	return -1
}

// Close drops queued workers, cancels the context handed to work and stops
// the scheduling loop once the turns already scheduled have run. Workers that
// finish after Close emit no events, so a mirrored cache keeps them and the
// queued ones for the next Load.
func (j *Job) Close() {
	j.closeOnce.Do(func() {
		j.mu.Lock()
		j.retired = true
		j.queue = nil
		j.waiting = make(map[string]*Worker)
		j.mu.Unlock()

		j.cancel()
		j.loop.close()
	})
}

// retire drops every queued worker and refuses new ones. Running workers
// keep their slots; the loop stops after the last of them finishes.
func (j *Job) retire() []*Worker {
	j.mu.Lock()
	defer j.mu.Unlock()

	dropped := make([]*Worker, 0, len(j.queue))
	for _, id := range j.queue {
		dropped = append(dropped, j.waiting[id])
	}
	j.queue = nil
	j.waiting = make(map[string]*Worker)
	j.retired = true
	if len(j.running) == 0 {
		j.loop.close()
	}
	return dropped
}

func (j *Job) liveLocked(id string) bool {
	_, running := j.running[id]
	_, waiting := j.waiting[id]
	return running || waiting
}

func (j *Job) admitLocked(id string, args []any) (*Worker, error) {
	w, err := newWorker(id, j, args)
	if err != nil {
		return nil, err
	}

	j.drained = false
	if len(j.running) < j.concurrency {
		j.running[id] = w
		j.dispatchLocked(w)
	} else {
		j.waiting[id] = w
		j.queue = append(j.queue, id)
	}
	return w, nil
}

// dispatchLocked defers the start of w to the scheduling loop. Turns are
// scheduled while holding the lock so their order matches admission order.
func (j *Job) dispatchLocked(w *Worker) {
	j.loop.schedule(func() {
		w.start()
		j.listeners.emit(Event{Type: EventStart, Job: j, Worker: w})
		go w.exec(j.ctx, j.work)
	})
}

func (j *Job) complete(w *Worker) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, ok := j.running[w.id]; !ok {
		return
	}
	delete(j.running, w.id)

	j.loop.schedule(func() {
		j.listeners.emit(Event{Type: EventFinish, Job: j, Worker: w})
	})

	if len(j.queue) == 0 && !j.drained {
		j.drained = true
		j.loop.schedule(func() {
			j.listeners.emit(Event{Type: EventEmpty, Job: j})
		})
	}

	if !j.retired {
		j.replenishLocked()
	}

	if j.retired && len(j.running) == 0 {
		j.loop.close()
	}
}

// replenishLocked moves queued workers into running, head first, until the
// limit is reached.
func (j *Job) replenishLocked() {
	for len(j.queue) > 0 && len(j.running) < j.concurrency {
		id := j.queue[0]
		j.queue = j.queue[1:]
		w := j.waiting[id]
		delete(j.waiting, id)
		j.running[id] = w
		j.dispatchLocked(w)
	}
}
