package stackless

import (
	"sync/atomic"
)

// eventWaiter is one parked task in the event's wait chain, and the
// awaiter it suspended on.
type eventWaiter struct {
	event  *OneShotEvent
	handle *Handle
	next   *eventWaiter
}

// eventFired is the reserved "fired" state; nil is "no waiters"; any
// other pointer heads the waiter chain.
var eventFired = &eventWaiter{}

// OneShotEvent lets stackless tasks wait for a single occurrence. Fire
// resumes every parked task inline, one after another; tasks arriving
// after the fire continue without suspending. Fire is idempotent.
//
// The zero value is an unfired event.
type OneShotEvent struct {
	state atomic.Pointer[eventWaiter]
}

// Wait suspends the current task until the event fires. Returns
// immediately if it already has.
func (e *OneShotEvent) Wait() {
	Await(&eventWaiter{event: e})
}

// IsReady reports whether the event has fired.
func (e *OneShotEvent) IsReady() bool {
	return e.state.Load() == eventFired
}

// Fire signals the event, resuming every parked task.
func (e *OneShotEvent) Fire() {
	if e.state.CompareAndSwap(nil, eventFired) {
		return
	}
	if e.state.Load() == eventFired {
		return
	}
	head := e.state.Swap(eventFired)
	for w := head; w != nil && w != eventFired; {
		next := w.next
		w.handle.Resume()
		w = next
	}
}

func (w *eventWaiter) AwaitReady() bool {
	return w.event.IsReady()
}

func (w *eventWaiter) AwaitSuspend(h *Handle) bool {
	w.handle = h
	return w.event.tryEnqueue(w)
}

// tryEnqueue installs w in the wait chain. Returns false if the event
// fired in the meantime.
func (e *OneShotEvent) tryEnqueue(w *eventWaiter) bool {
	for {
		state := e.state.Load()
		if state == eventFired {
			return false
		}
		w.next = state
		if e.state.CompareAndSwap(state, w) {
			return true
		}
	}
}
