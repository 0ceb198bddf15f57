// Package fibers provides stackful cooperative threads of execution bound
// to executors, the suspension-awaiter protocol they park on, and the
// fiber-side synchronization primitives: Mutex, CondVar, OneShotEvent,
// WaitGroup, and a fiber-aware future Await.
package fibers

import (
	"sync/atomic"

	"github.com/asorokovikov/magic-core/coroutine"
	"github.com/asorokovikov/magic-core/executors"
	"github.com/asorokovikov/magic-core/internal/local"
	"github.com/asorokovikov/magic-core/intrusive"
)

// FiberID is a stable monotonic fiber identifier.
type FiberID uint64

// FiberState tracks where a fiber is in its run cycle. Only the party
// currently driving the fiber touches it.
type FiberState int32

const (
	// FiberPending: created, not yet scheduled.
	FiberPending FiberState = iota
	// FiberQueued: sitting in an executor's run queue.
	FiberQueued
	// FiberRunning: executing on a worker.
	FiberRunning
	// FiberSuspended: parked on an awaiter.
	FiberSuspended
)

var (
	fiberIDCounter atomic.Uint64
	currentFiber   local.Local[*Fiber]
)

// Fiber is a stackful coroutine bound to an executor. It is itself a task
// node: its Run is the step loop that enters the coroutine and chases
// symmetric transfers until the chain empties.
type Fiber struct {
	intrusive.Node

	stack    *coroutine.Stack
	machine  *coroutine.Machine
	executor executors.Executor

	state   FiberState
	id      FiberID
	awaiter Awaiter
}

var _ executors.TaskNode = (*Fiber)(nil)

// Go starts routine as a new fiber on the current fiber's executor. Panics
// outside a fiber context.
func Go(routine func()) {
	GoOn(mustCurrentFiber().executor, routine)
}

// GoOn starts routine as a new fiber scheduled on executor.
func GoOn(executor executors.Executor, routine func()) {
	newFiber(routine, executor).schedule()
}

// RunScheduler builds a thread pool with the given worker count, runs
// routine as a fiber on it, waits for the pool to drain, and stops it.
func RunScheduler(threads int, routine func()) {
	scheduler := executors.NewThreadPool(threads)
	GoOn(scheduler, routine)
	scheduler.WaitIdle()
	scheduler.Stop()
}

// Yield reschedules the current fiber on its executor, giving other queued
// fibers a turn on the worker.
func Yield() {
	Suspend(yieldAwaiter{})
}

// Suspend parks the current fiber and hands its handle to awaiter once the
// suspension completes. Panics outside a fiber context.
func Suspend(awaiter Awaiter) {
	mustCurrentFiber().suspend(awaiter)
}

// GetFiberID returns the current fiber's id. Panics outside a fiber
// context.
func GetFiberID() FiberID {
	return mustCurrentFiber().id
}

// InFiber reports whether the caller runs inside a fiber.
func InFiber() bool {
	_, ok := currentFiber.Get()
	return ok
}

// CurrentExecutor returns the executor of the current fiber. Panics
// outside a fiber context.
func CurrentExecutor() executors.Executor {
	return mustCurrentFiber().executor
}

func mustCurrentFiber() *Fiber {
	f, ok := currentFiber.Get()
	if !ok {
		panic("fibers: not in a fiber context")
	}
	return f
}

func newFiber(routine func(), executor executors.Executor) *Fiber {
	f := &Fiber{
		stack:    coroutine.AllocateStack(),
		executor: executor,
		state:    FiberPending,
		id:       FiberID(fiberIDCounter.Add(1)),
	}
	f.machine = coroutine.NewMachine(func() {
		currentFiber.Set(f)
		defer currentFiber.Clear()
		routine()
	}, f.stack)
	return f
}

// schedule hands the fiber to its executor.
func (f *Fiber) schedule() {
	f.state = FiberQueued
	f.executor.Execute(f)
}

// resume verifies the fiber is parked and reschedules it.
func (f *Fiber) resume() {
	if f.state != FiberSuspended {
		panic("fibers: resume of a fiber that is not suspended")
	}
	f.schedule()
}

// Run drives the fiber one step, then keeps running whatever successor the
// awaiters hand back on this same worker. Implements the task contract.
func (f *Fiber) Run() {
	next := f
	for next != nil {
		next = next.runFiber()
	}
}

// Discard destroys a fiber the executor will never run, unwinding its
// routine if it had already started.
func (f *Fiber) Discard() {
	f.destroy()
}

func (f *Fiber) runFiber() *Fiber {
	f.step()

	if f.machine.IsCompleted() {
		f.destroy()
		return nil
	}

	if f.state != FiberSuspended {
		panic("fibers: fiber left the coroutine in an unexpected state")
	}

	awaiter := f.awaiter
	f.awaiter = nil
	if awaiter != nil {
		if next := awaiter.OnCompleted(FiberHandle{fiber: f}); next.IsValid() {
			return next.fiber
		}
	}
	return nil
}

func (f *Fiber) step() {
	f.state = FiberRunning
	f.machine.Resume()
}

// suspend runs on the fiber's own stack: record the awaiter, park the
// coroutine. The worker-side step loop consults the awaiter afterwards.
func (f *Fiber) suspend(awaiter Awaiter) {
	f.awaiter = awaiter
	f.state = FiberSuspended
	f.machine.Suspend()
}

func (f *Fiber) destroy() {
	f.machine.Cancel()
	coroutine.ReleaseStack(f.stack)
	f.stack = nil
}
