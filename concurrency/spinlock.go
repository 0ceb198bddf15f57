// Package concurrency provides the thread-blocking building blocks shared
// by the executors and the futures: a spin lock, an outstanding-work
// counter, an unbounded blocking intrusive queue, a one-shot event, and a
// wait-free rendezvous cell.
package concurrency

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a test-and-set spin lock. It is intended for sections that
// are a handful of instructions long (list splicing, epoch bumps); anything
// longer belongs on a sync.Mutex.
//
// The zero value is an unlocked SpinLock.
type SpinLock struct {
	locked atomic.Uint32
}

// Lock acquires the lock, spinning until it is free. While contended the
// waiter yields its processor rather than burning the scheduler quantum.
func (l *SpinLock) Lock() {
	for l.locked.Swap(1) == 1 {
		for l.locked.Load() == 1 {
			runtime.Gosched()
		}
	}
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.locked.Store(0)
}
