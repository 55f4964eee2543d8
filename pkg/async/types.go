package async

import (
	"context"
)

// Work is a unit handed to the pool. ctx is canceled by Future.Stop or when
// the pool closes.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the pending outcome of submitted work. Exactly one value is
// delivered on its channel.
type Future[T any] struct {
	value chan T
	stop  context.CancelFunc
}

func NewFuture[T any](value chan T, stop context.CancelFunc) *Future[T] {
	return &Future[T]{value: value, stop: stop}
}

func (f *Future[T]) C() <-chan T {
	return f.value
}

// Stop cancels the context of the work. The result is still delivered.
func (f *Future[T]) Stop() {
	f.stop()
}

// Wait blocks for the value or until ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-f.value:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then calls fn with the value once it is available, on its own goroutine.
func (f *Future[T]) Then(fn func(T)) {
	go func() {
		fn(<-f.value)
	}()
}
