package scheduler

import "sync"

type EventType string

const (
	// EventStart is emitted when a worker enters Running.
	EventStart EventType = "start"
	// EventFinish is emitted when a worker finishes.
	EventFinish EventType = "finish"
	// EventEmpty is emitted when a completion finds the job's queue drained.
	EventEmpty EventType = "empty"
	// EventLoad is emitted by the Manager once a cache replay is done.
	EventLoad EventType = "load"
	// EventError carries cache failures when the Manager emits errors.
	EventError EventType = "error"
)

// Event is delivered to listeners. Job and Worker are set when they apply.
type Event struct {
	Type   EventType
	Job    *Job
	Worker *Worker
	Err    error
}

// Listener receives events on the emitter's scheduling goroutine. It may call
// back into the Job or Manager but must not block for long.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

type listeners struct {
	mu   sync.RWMutex
	next int
	subs []subscription
}

func (l *listeners) subscribe(fn Listener) (cancel func()) {
	l.mu.Lock()
	l.next++
	id := l.next
	l.subs = append(l.subs, subscription{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, s := range l.subs {
				if s.id == id {
					l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (l *listeners) emit(e Event) {
	l.mu.RLock()
	subs := l.subs
	l.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}
