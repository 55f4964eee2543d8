package scheduler

import (
	"context"
	"fmt"
	"sync"

	srvErrors "github.com/dtex/neuron/pkg/errors"
)

type State int

const (
	StateWaiting State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Work is the procedure run for every worker of a job. It reads its input
// from w.Args() and must eventually call w.Finish, from any goroutine.
// ctx is cancelled only when the owning job is closed.
type Work func(ctx context.Context, w *Worker)

// Func adapts a plain function to Work. The worker finishes with whatever fn
// returns.
func Func(fn func(ctx context.Context, args []any) (any, error)) Work {
	return func(ctx context.Context, w *Worker) {
		w.Finish(fn(ctx, w.Args()))
	}
}

// Worker is one instantiation of a Job with its own arguments.
type Worker struct {
	id   string
	job  *Job
	args []any

	mu      sync.Mutex
	state   State
	result  any
	err     error
	started chan struct{}
	done    chan struct{}
}

func newWorker(id string, job *Job, args []any) (*Worker, error) {
	if id == "" {
		return nil, srvErrors.NewConfigurationError("worker id is required")
	}
	if job == nil {
		return nil, srvErrors.NewConfigurationError("worker `%s` has no job", id)
	}
	return &Worker{
		id:      id,
		job:     job,
		args:    args,
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}, nil
}

func (w *Worker) ID() string {
	return w.id
}

func (w *Worker) Job() *Job {
	return w.job
}

func (w *Worker) Args() []any {
	return w.args
}

func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Worker) Running() bool {
	return w.State() == StateRunning
}

func (w *Worker) Finished() bool {
	return w.State() == StateFinished
}

// Result returns what was handed to Finish. Both are nil until the worker
// finishes.
func (w *Worker) Result() (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result, w.err
}

// Started is closed when the worker enters Running.
func (w *Worker) Started() <-chan struct{} {
	return w.started
}

// Done is closed when the worker finishes. A worker removed from the queue
// never finishes.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Finish moves a running worker to Finished and hands its slot back to the
// job. Only the first call on a running worker has an effect; it reports
// whether this call did.
func (w *Worker) Finish(result any, err error) bool {
	w.mu.Lock()
	if w.state != StateRunning {
		w.mu.Unlock()
		return false
	}
	w.state = StateFinished
	w.result = result
	w.err = err
	w.mu.Unlock()

	w.job.complete(w)
	close(w.done)
	return true
}

func (w *Worker) start() {
	w.mu.Lock()
	w.state = StateRunning
	w.mu.Unlock()
	close(w.started)
}

func (w *Worker) exec(ctx context.Context, work Work) {
	defer func() {
		if r := recover(); r != nil {
			w.Finish(nil, fmt.Errorf("work panicked: %v", r))
		}
	}()
	work(ctx, w)
}
