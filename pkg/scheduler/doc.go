// Package scheduler runs named jobs with bounded concurrency.
//
// A Job is a reusable work procedure with a concurrency limit. Every call to
// Enqueue creates a Worker carrying its own arguments. At most Concurrency
// workers run at a time; the rest wait in a FIFO queue and are promoted as
// running workers finish.
//
// # Architecture Overview
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│                              Manager                                 │
//	│                                                                      │
//	│   jobs: name ─► *Job           cache mirror: async.Pool (1 slot)     │
//	│                                        │                             │
//	│  ┌───────────────────────────────┐     ▼                             │
//	│  │              Job              │   ┌───────────────────────────┐   │
//	│  │                               │   │        cache.Cache        │   │
//	│  │  running  {id ─► *Worker}     │   │  {ns}:jobs                │   │
//	│  │  waiting  {id ─► *Worker}     │   │  {ns}:job:{name}          │   │
//	│  │  queue    [id, id, id, ...]   │   │  {ns}:workers:{name}      │   │
//	│  │                               │   │  {ns}:workers:{name}:{id} │   │
//	│  │  loop: turns run in order     │   └───────────────────────────┘   │
//	│  └───────────────────────────────┘                                   │
//	└──────────────────────────────────────────────────────────────────────┘
//
// # Worker Lifecycle
//
//	Enqueue ──► Waiting ──(slot free)──► Running ──(Finish)──► Finished
//	               │
//	               └──(RemoveWorker)──► dropped
//
// A worker admitted while a slot is free goes straight into running, but its
// work only starts on a later turn of the job's loop, never inside Enqueue.
// Callers therefore always get the worker back before anything happens to
// it. Started() and Done() are closed on the matching transitions.
//
// # Scheduling Loop
//
// Each job owns one goroutine that executes deferred turns in the order they
// were scheduled:
//
//	dispatch(w)  → w enters Running, EventStart, work runs on its own goroutine
//	finish(w)    → EventFinish
//	empty        → EventEmpty
//
// Completion runs under the job lock: the worker leaves running, the finish
// and empty turns are scheduled, then the queue head is promoted until the
// limit is reached. Promotion happens in the same critical section so a
// concurrent Enqueue can never take the freed slot ahead of the queue.
//
// EventEmpty is edge triggered. It fires on the first completion that finds
// the queue empty and is armed again by the next Enqueue.
//
// Listeners are called on the loop goroutine. They may call back into the
// Job or Manager but must not block for long.
//
// # Work Procedures
//
//	type Work func(ctx context.Context, w *Worker)
//
// The procedure reads w.Args() and calls w.Finish(result, err) exactly once,
// from any goroutine. A procedure that never finishes holds its slot forever.
// Func adapts a plain function that returns a result; ScriptWork adapts a
// compiled JavaScript function. A panic inside work finishes the worker with
// the panic as its error.
//
// # Cache Mirror
//
// With a cache attached, the Manager writes every job definition, admitted
// worker and removal through a single-slot async.Pool, so writes reach the
// backend in the order they happened in memory without slowing the
// scheduler. Load replays the cache after a restart: unknown jobs are
// recreated from their definitions (work resolved through the registry or a
// persisted script) and stored workers are enqueued again under their ids.
// Cache failures become EventError when WithEmitErrors is set and are only
// logged otherwise.
//
// # Usage Example
//
//	m := scheduler.NewManager(scheduler.WithConcurrency(10))
//	defer m.Close()
//
//	_, err := m.AddJob("listDir", scheduler.JobOptions{
//	    Work: scheduler.Func(func(ctx context.Context, args []any) (any, error) {
//	        return os.ReadDir(args[0].(string))
//	    }),
//	})
//
//	id, err := m.Enqueue("listDir", "/tmp")
package scheduler
