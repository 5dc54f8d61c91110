package event

import "sync"

// BuildResult is the payload delivered when the external build step signals
// completion. The barrier only knows "finished"; whether usable types came
// out of the build is discovered downstream.
type BuildResult struct {
	Finished bool
	Signal   string // diagnostic: what produced the signal (file event, timeout, ...)
	Err      error  // set when the wait itself failed (launch failure, timeout)
}

// Subscription is a one-shot continuation registered with the loop.
// Fire posts the continuation exactly once; later Fire or Cancel calls are
// no-ops. Cancel before the first Fire retires the continuation without
// running it.
type Subscription struct {
	mu    sync.Mutex
	loop  *Loop
	fn    func(BuildResult)
	spent bool
}

// NewSubscription registers fn as a pending one-shot continuation on loop.
func NewSubscription(loop *Loop, fn func(BuildResult)) *Subscription {
	return &Subscription{loop: loop, fn: fn}
}

// Fire schedules the continuation on the loop with the given result.
// Exactly one Fire ever takes effect; duplicates are dropped.
func (s *Subscription) Fire(res BuildResult) {
	s.mu.Lock()
	if s.spent {
		s.mu.Unlock()
		return
	}
	s.spent = true
	fn := s.fn
	s.fn = nil
	s.mu.Unlock()

	s.loop.Post(func() { fn(res) })
}

// Cancel retires the continuation. A canceled subscription never runs.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spent = true
	s.fn = nil
}

// Pending reports whether the subscription can still fire.
func (s *Subscription) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.spent
}
