package fibers

import (
	"sync/atomic"
)

// eventWaitNode is one parked waiter in the event's wait chain, linked
// through the atomic state word. It is also the awaiter the waiting fiber
// suspends on.
type eventWaitNode struct {
	event  *OneShotEvent
	handle FiberHandle
	next   *eventWaitNode
}

// eventSignaled is the reserved "fired" state; nil is "no waiters"; any
// other pointer is the head of the waiter chain.
var eventSignaled = &eventWaitNode{}

// OneShotEvent lets fibers wait for a single occurrence. Waiters arriving
// before Fire are suspended and scheduled by it; waiters arriving after
// return immediately. Fire is idempotent.
//
// The zero value is an unfired event.
type OneShotEvent struct {
	state atomic.Pointer[eventWaitNode]
}

// Wait suspends the calling fiber until the event fires. Returns
// immediately if it already has.
func (e *OneShotEvent) Wait() {
	if e.IsReady() {
		return
	}
	waiter := &eventWaitNode{event: e}
	Suspend(waiter)
}

// IsReady reports whether the event has fired.
func (e *OneShotEvent) IsReady() bool {
	return e.state.Load() == eventSignaled
}

// Fire signals the event, scheduling every parked waiter.
func (e *OneShotEvent) Fire() {
	if e.state.CompareAndSwap(nil, eventSignaled) {
		return
	}
	if e.state.Load() == eventSignaled {
		return
	}
	head := e.state.Swap(eventSignaled)
	for w := head; w != nil && w != eventSignaled; {
		next := w.next
		w.handle.Schedule()
		w = next
	}
}

// OnCompleted enqueues the waiter unless the event fired in the meantime,
// in which case the fiber resumes immediately.
func (w *eventWaitNode) OnCompleted(handle FiberHandle) FiberHandle {
	w.handle = handle
	if w.event.tryEnqueue(w) {
		return InvalidHandle()
	}
	return handle
}

// tryEnqueue installs w in the wait chain. Returns false if the event was
// already signaled.
func (e *OneShotEvent) tryEnqueue(w *eventWaitNode) bool {
	for {
		state := e.state.Load()
		if state == eventSignaled {
			return false
		}
		w.next = state
		if e.state.CompareAndSwap(state, w) {
			return true
		}
	}
}
