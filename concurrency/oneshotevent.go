package concurrency

import "sync"

// OneShotEvent blocks calling goroutines until it is fired once. Firing is
// idempotent; waiters arriving after the fire return immediately.
//
// This is the thread-blocking flavor used by the blocking future getter;
// the fibers and stackless packages carry their own non-blocking variants.
//
// The zero value is an unfired event.
type OneShotEvent struct {
	mu    sync.Mutex
	fired sync.Cond
	done  bool
}

// Wait blocks until the event has been fired.
func (e *OneShotEvent) Wait() {
	e.mu.Lock()
	if e.fired.L == nil {
		e.fired.L = &e.mu
	}
	for !e.done {
		e.fired.Wait()
	}
	e.mu.Unlock()
}

// Fire releases all current and future waiters.
func (e *OneShotEvent) Fire() {
	e.mu.Lock()
	if e.fired.L == nil {
		e.fired.L = &e.mu
	}
	e.done = true
	e.fired.Broadcast()
	e.mu.Unlock()
}
