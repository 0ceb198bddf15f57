package lockfree

import (
	"sync/atomic"

	"github.com/asorokovikov/magic-core/intrusive"
)

// MPSCStack is an unbounded lock-free intrusive Treiber stack for the
// multi-producer / single-consumer regime. Push may be called from any
// goroutine; ConsumeAll must be called by a single owner at a time.
//
// Restricting consumption to one owner is what makes the plain CAS loop
// safe here: the ABA window on head only matters when two consumers can
// race on the same pop, which this type rules out by contract. Use Stack
// where multiple consumers pop concurrently.
//
// The zero value is an empty stack.
type MPSCStack struct {
	head atomic.Pointer[intrusive.Node]
}

// Push adds item on top of the stack.
func (s *MPSCStack) Push(item intrusive.Item) {
	n := intrusive.ItemNode(item)
	for {
		top := s.head.Load()
		n.SetNext(top)
		if s.head.CompareAndSwap(top, n) {
			return
		}
	}
}

// ConsumeAll detaches the whole stack in one atomic exchange and invokes fn
// for each item, most recently pushed first.
func (s *MPSCStack) ConsumeAll(fn func(intrusive.Item)) {
	top := s.head.Swap(nil)
	for top != nil {
		next := top.Next()
		fn(intrusive.NodeItem(top))
		top = next
	}
}

// IsEmpty reports whether the stack is empty.
func (s *MPSCStack) IsEmpty() bool { return s.head.Load() == nil }

// HasItems reports whether the stack is non-empty.
func (s *MPSCStack) HasItems() bool { return !s.IsEmpty() }

// MPSCQueue is an unbounded lock-free intrusive multi-producer /
// single-consumer queue. It wraps MPSCStack; TakeAll reverses the LIFO
// batch back into submission (FIFO) order.
//
// The zero value is an empty queue.
type MPSCQueue struct {
	stack MPSCStack
}

// Put enqueues item. Safe to call from any goroutine.
func (q *MPSCQueue) Put(item intrusive.Item) {
	q.stack.Push(item)
}

// TakeAll detaches every queued item and returns them in FIFO order.
// Single consumer only.
func (q *MPSCQueue) TakeAll() intrusive.List {
	var reversed intrusive.List
	q.stack.ConsumeAll(func(item intrusive.Item) {
		reversed.PushFront(item)
	})
	return reversed
}

// IsEmpty reports whether the queue is empty.
func (q *MPSCQueue) IsEmpty() bool { return q.stack.IsEmpty() }

// HasItems reports whether the queue is non-empty.
func (q *MPSCQueue) HasItems() bool { return q.stack.HasItems() }
