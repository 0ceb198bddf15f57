package stackless

import (
	"sync/atomic"
)

// lockerNode is one parked locker in the mutex's wait chain.
type lockerNode struct {
	handle *Handle
	next   *lockerNode
}

// lockerLocked is the reserved "locked, no waiters" state; nil is
// "unlocked"; any other pointer heads the waiter chain.
var lockerLocked = &lockerNode{}

// Mutex is a stackless-task mutex. A contended Lock suspends the calling
// task; Unlock transfers ownership directly to the longest-waiting task
// and resumes it inline — state never passes through Unlocked while
// waiters exist.
//
// The zero value is an unlocked mutex.
type Mutex struct {
	state atomic.Pointer[lockerNode]

	// head is the pre-reversed FIFO batch, touched only by the holder.
	head *lockerNode
}

// Guard releases the mutex once.
type Guard struct {
	mutex *Mutex
}

// Unlock releases the mutex held by this guard.
func (g Guard) Unlock() {
	g.mutex.release()
}

// Lock acquires the mutex, suspending the calling task while another task
// holds it, and returns the releasing guard.
func (m *Mutex) Lock() Guard {
	locker := &mutexLocker{mutex: m}
	Await(locker)
	return Guard{mutex: m}
}

// TryLock acquires the mutex iff it is unlocked with no waiters. Release
// with Unlock.
func (m *Mutex) TryLock() bool {
	return m.state.CompareAndSwap(nil, lockerLocked)
}

// Unlock releases a mutex acquired via TryLock.
func (m *Mutex) Unlock() {
	m.release()
}

// mutexLocker awaits the acquisition: fast path TryLock, slow path
// enqueue-or-acquire under the CAS loop.
type mutexLocker struct {
	node  lockerNode
	mutex *Mutex
}

func (l *mutexLocker) AwaitReady() bool {
	return l.mutex.TryLock()
}

func (l *mutexLocker) AwaitSuspend(h *Handle) bool {
	l.node.handle = h
	return !l.mutex.tryLockOrEnqueue(&l.node)
}

// tryLockOrEnqueue either wins the lock (true) or installs node in the
// wait chain (false).
func (m *Mutex) tryLockOrEnqueue(node *lockerNode) bool {
	for {
		state := m.state.Load()
		if state == nil {
			if m.TryLock() {
				return true
			}
			continue
		}
		if state == lockerLocked {
			node.next = nil
		} else {
			node.next = state
		}
		if m.state.CompareAndSwap(state, node) {
			return false
		}
	}
}

func (m *Mutex) release() {
	if m.head != nil {
		m.resumeNextWaiter()
		return
	}

	for {
		state := m.state.Load()
		if state == lockerLocked {
			if m.state.CompareAndSwap(lockerLocked, nil) {
				return
			}
			continue
		}
		// A wait chain accumulated; claim it and serve FIFO. Ownership
		// passes straight to the resumed waiter.
		waiters := m.state.Swap(lockerLocked)
		m.head = reverseLockerChain(waiters)
		m.resumeNextWaiter()
		return
	}
}

func (m *Mutex) resumeNextWaiter() {
	next := m.head
	m.head = next.next
	next.handle.Resume()
}

func reverseLockerChain(head *lockerNode) *lockerNode {
	prev := head
	curr := prev.next
	for curr != nil {
		next := curr.next
		curr.next = prev
		prev = curr
		curr = next
	}
	head.next = nil
	return prev
}
