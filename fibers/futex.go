package fibers

import (
	"sync/atomic"

	"github.com/asorokovikov/magic-core/concurrency"
	"github.com/asorokovikov/magic-core/intrusive"
)

// futex is the parking structure under CondVar: an epoch counter plus a
// spinlock-guarded intrusive wait list. A waiter samples the epoch, and
// parks only if the epoch is still unchanged once it holds the spinlock —
// the awaiter releases the spinlock after the fiber has fully suspended,
// which makes the park atomic with respect to wakers.
type futex struct {
	spin    concurrency.SpinLock
	waiters intrusive.List
	epoch   atomic.Uint64
}

// futexWaiter parks one fiber. Always-suspend: the spinlock is released
// only once the handle is safely stashed.
type futexWaiter struct {
	intrusive.Node
	spin   *concurrency.SpinLock
	handle FiberHandle
}

func (w *futexWaiter) OnCompleted(handle FiberHandle) FiberHandle {
	w.handle = handle
	w.spin.Unlock()
	return InvalidHandle()
}

func (w *futexWaiter) resume() {
	w.handle.Resume()
}

// prepareWait samples the epoch for a later parkIfEqual.
func (f *futex) prepareWait() uint64 {
	return f.epoch.Load()
}

// parkIfEqual suspends the calling fiber if the epoch still equals old;
// otherwise a wake happened in between and the caller proceeds.
func (f *futex) parkIfEqual(old uint64) {
	f.spin.Lock()
	if f.epoch.Load() == old {
		waiter := &futexWaiter{spin: &f.spin}
		f.waiters.PushBack(waiter)
		Suspend(waiter)
	} else {
		f.spin.Unlock()
	}
}

// wakeOne bumps the epoch and resumes the longest-parked waiter, if any.
func (f *futex) wakeOne() bool {
	var list intrusive.List
	f.spin.Lock()
	f.epoch.Add(1)
	if f.waiters.HasItems() {
		list.PushBack(f.waiters.PopFront())
	}
	f.spin.Unlock()
	return f.wake(&list) > 0
}

// wakeAll bumps the epoch and resumes every parked waiter.
func (f *futex) wakeAll() int {
	var list intrusive.List
	f.spin.Lock()
	f.epoch.Add(1)
	list.Append(&f.waiters)
	f.spin.Unlock()
	return f.wake(&list)
}

func (f *futex) wake(list *intrusive.List) int {
	count := 0
	for list.HasItems() {
		list.PopFront().(*futexWaiter).resume()
		count++
	}
	return count
}
