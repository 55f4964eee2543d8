package scheduler

import (
	"sync"

	"go.uber.org/zap"
)

// loop runs deferred turns one at a time, in the order they were scheduled.
// The backlog is unbounded so a turn may schedule further turns without
// blocking.
type loop struct {
	mu     sync.Mutex
	turns  []func()
	wake   chan struct{}
	closed bool
	done   chan struct{}
	name   string
}

func newLoop(name string) *loop {
	l := &loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		name: name,
	}
	go l.run()
	return l
}

// schedule appends fn to the backlog. It returns false once the loop is closed.
func (l *loop) schedule(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.turns = append(l.turns, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// close stops accepting turns. Turns already scheduled still run.
func (l *loop) close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *loop) run() {
	defer close(l.done)
	for {
		l.mu.Lock()
		if len(l.turns) == 0 {
			closed := l.closed
			l.mu.Unlock()
			if closed {
				return
			}
			<-l.wake
			continue
		}
		fn := l.turns[0]
		l.turns[0] = nil
		l.turns = l.turns[1:]
		l.mu.Unlock()

		l.turn(fn)
	}
}

func (l *loop) turn(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Named("scheduler").Errorw("turn panicked", "loop", l.name, "panic", r)
		}
	}()
	fn()
}
