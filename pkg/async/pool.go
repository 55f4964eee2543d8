package async

import (
	"context"
	"fmt"
	"sync"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	var zero T
	old[0] = zero
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type request struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

type slot struct {
	done chan any
	wg   *sync.WaitGroup
}

func (s slot) Work(r request) {
	defer func() {
		if rec := recover(); rec != nil {
			r.c <- Result[any]{Err: fmt.Errorf("work panicked: %v", rec)}
		}
		s.done <- struct{}{}
		s.wg.Done()
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}

func newSlot(done chan any, wg *sync.WaitGroup) slot {
	return slot{done: done, wg: wg}
}

// Pool runs submitted work on at most size goroutines. Pending work is kept in
// submission order; with size 1 the pool applies work strictly sequentially.
type Pool struct {
	slots      *queue[slot]
	pending    *queue[request]
	close      chan any
	done       chan any
	stopped    chan any
	work       chan request
	mainCtx    context.Context
	mainCancel context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	done := make(chan any, size)
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		slots:      &queue[slot]{},
		pending:    &queue[request]{},
		close:      make(chan any),
		done:       done,
		stopped:    make(chan any),
		work:       make(chan request),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	for range size {
		p.slots.Push(newSlot(done, &p.wg))
	}
	go p.run()
	return p
}

// Submit queues w behind all work submitted before it. With size 1, work
// runs one at a time in exactly that order. After Close the future holds
// context.Canceled right away.
func (p *Pool) Submit(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(p.mainCtx)

	select {
	case <-p.mainCtx.Done():
		// closing, hand back a canceled result
		c <- Result[any]{Err: context.Canceled}
	case p.work <- request{w, c, ctx}:
	}

	return NewFuture(c, cancel)
}

// Close cancels the pool context and waits for in-flight work. Work still
// pending in the queue is answered with context.Canceled. Close is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.mainCancel()
		p.close <- struct{}{}
		<-p.stopped
	})
}

// Drain waits until every piece of work submitted before the call has run,
// or ctx is done. The guarantee only holds for single-slot pools.
func (p *Pool) Drain(ctx context.Context) error {
	r, err := p.Submit(func(context.Context) (any, error) { return nil, nil }).Wait(ctx)
	if err != nil {
		return err
	}
	return r.Err
}

func (p *Pool) run() {
	defer close(p.stopped)
	for {
		select {
		case r := <-p.work:
			p.pending.Push(r)
			p.dispatch()
		case <-p.done:
			p.slots.Push(newSlot(p.done, &p.wg))
			p.dispatch()
		case <-p.close:
			for p.pending.Len() > 0 {
				p.pending.Pop().c <- Result[any]{Err: context.Canceled}
			}
			p.wg.Wait()
			return
		}
	}
}

// dispatch drains the pending queue as much as possible
// based on free slots
func (p *Pool) dispatch() {
	for p.slots.Len() > 0 && p.pending.Len() > 0 {
		r := p.pending.Pop()
		s := p.slots.Pop()
		p.wg.Add(1)
		go s.Work(r)
	}
}
