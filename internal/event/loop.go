// Package event provides the cooperative run loop the generation pipeline
// executes on, plus the one-shot continuation used by the compile barrier.
//
// All pipeline stages run on the loop goroutine; external signals (builder
// completion, timers) are delivered by posting tasks from other goroutines.
// This keeps the pipeline single-threaded: stage side effects are fully
// committed before the next posted task observes them.
package event

import (
	"context"
	"sync"
)

// Loop is a single-goroutine task executor. Post is safe from any goroutine;
// posted tasks run in order on the goroutine that called Run.
type Loop struct {
	tasks chan func()

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// NewLoop creates a loop with a bounded pending-task queue.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Post schedules fn to run on the loop goroutine.
// Posting after Stop is a no-op.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Run executes posted tasks until Stop is called or ctx is canceled.
// Returns ctx.Err() on cancellation, nil on Stop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop terminates the loop after the current task. Idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	close(l.done)
}
