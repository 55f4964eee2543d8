// Package async implements a small worker pool for executing work with futures.
//
// The pool manages a fixed number of slots that execute work functions
// concurrently. Work is submitted via Submit and returns a Future that can be
// used to retrieve the result or cancel the work.
//
// Within neuron the pool is used with a single slot by the job manager to push
// cache writes to the durable store: the in-memory scheduler never waits on the
// store, yet writes reach it in the same order the scheduler produced them.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                              Pool                                   │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │    Slot 1    │      │    Slot 2    │      │    Slot N    │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                        ┌──────┴──────┐                              │
//	│                        │  dispatch() │                              │
//	│                        └──────┬──────┘                              │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                    Pending Queue                        │        │
//	│  │  [work1] [work2] [work3] ...                            │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                          Submit(fn)                                 │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Event Loop (run method)
//
//	for {
//	    select {
//	    case r := <-p.work:       // New work submitted
//	        p.pending.Push(r)
//	        p.dispatch()
//
//	    case <-p.done:            // Slot freed
//	        p.slots.Push(newSlot(...))
//	        p.dispatch()
//
//	    case <-p.close:           // Shutdown requested
//	        cancel pending work, p.wg.Wait()
//	        return
//	    }
//	}
//
// dispatch() is called both when work arrives and when a slot frees up, so
// work starts as soon as a slot is available and always in submission order.
//
// # Future Mechanism
//
//   - C() <-chan Result: receives exactly one result when the work completes
//   - Wait(ctx): blocks for the result or until ctx is done
//   - Stop(): cancels the work's context
//   - Then(fn): hands the result to fn on a separate goroutine
//
// Panics inside work are recovered and reported as the Result error.
//
// # Usage Example
//
//	pool := async.NewPool(1)
//	defer pool.Close()
//
//	future := pool.Submit(func(ctx context.Context) (any, error) {
//	    return nil, store.Set(ctx, key, value)
//	})
//	future.Then(func(r async.Result[any]) {
//	    if r.Err != nil {
//	        log.Printf("write failed: %v", r.Err)
//	    }
//	})
package async
