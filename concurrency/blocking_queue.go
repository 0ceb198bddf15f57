package concurrency

import (
	"sync"

	"github.com/asorokovikov/magic-core/intrusive"
)

// BlockingQueue is an unbounded multi-producer / multi-consumer blocking
// intrusive queue: a mutex-guarded forward list plus a not-empty condition.
//
// It deliberately stays on a mutex rather than a lock-free design: the
// consumers must be able to sleep, and a condition variable is the only
// primitive here that parks a whole OS thread.
type BlockingQueue struct {
	mu       sync.Mutex
	notEmpty sync.Cond
	items    intrusive.List
	closed   bool
}

// NewBlockingQueue returns an empty, open queue.
func NewBlockingQueue() *BlockingQueue {
	q := &BlockingQueue{}
	q.notEmpty.L = &q.mu
	return q
}

// Put enqueues item. Returns false if the queue has been closed, in which
// case ownership of item stays with the caller.
func (q *BlockingQueue) Put(item intrusive.Item) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.items.PushBack(item)
	q.notEmpty.Signal()
	return true
}

// Take blocks until an item is available and dequeues it. Returns nil once
// the queue is closed and drained.
func (q *BlockingQueue) Take() intrusive.Item {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.items.IsEmpty() {
		if q.closed {
			return nil
		}
		q.notEmpty.Wait()
	}
	return q.items.PopFront()
}

// Close closes the queue for producers. Already queued items remain
// takeable.
func (q *BlockingQueue) Close() {
	q.closeImpl(nil)
}

// Shutdown closes the queue for producers and consumers, passing every
// still-queued item to disposer.
func (q *BlockingQueue) Shutdown(disposer func(intrusive.Item)) {
	q.closeImpl(disposer)
}

func (q *BlockingQueue) closeImpl(disposer func(intrusive.Item)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if disposer != nil {
		for q.items.HasItems() {
			disposer(q.items.PopFront())
		}
	}
	q.closed = true
	q.notEmpty.Broadcast()
}
