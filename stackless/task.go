// Package stackless provides cooperative tasks that suspend only at
// well-defined await points, a resumable handle protocol for driving
// them, executor dispatch and yield awaiters, and the task-side
// synchronization primitives: Mutex with a scoped guard, OneShotEvent,
// and WaitGroup.
//
// Unlike a fiber, a stackless task is not bound to an executor: whoever
// resumes its handle runs the task inline until its next suspension.
package stackless

import (
	"errors"
	"sync/atomic"

	"github.com/asorokovikov/magic-core/coroutine"
	"github.com/asorokovikov/magic-core/internal/local"
	"github.com/asorokovikov/magic-core/result"
)

// Standard errors.
var (
	// ErrTaskDestroyed is the status of a task that was destroyed while
	// suspended, e.g. because the executor holding its resume stopped.
	ErrTaskDestroyed = errors.New("stackless: task destroyed before completion")
)

var currentTask local.Local[*Handle]

// Handle is the resumable reference to a suspended task. Resume runs the
// task inline on the calling goroutine until its next suspension or
// completion.
type Handle struct {
	stack   *coroutine.Stack
	machine *coroutine.Machine
	status  result.Status
	done    atomic.Bool

	// selfDestroy is set when Destroy is requested from the task's own
	// goroutine (a synchronous discard inside AwaitSuspend); Await then
	// unwinds in place instead of suspending.
	selfDestroy bool
}

// Resume continues a suspended task on the calling goroutine.
func (h *Handle) Resume() {
	h.machine.Resume()
}

// Done reports whether the task has completed (or been destroyed).
func (h *Handle) Done() bool {
	return h.done.Load()
}

// Destroy abandons a suspended task: its frames unwind, deferred functions
// run, and its status becomes ErrTaskDestroyed. Used by executors
// discarding a queued resume. Safe to call from the task's own goroutine
// (an executor discarding the resume synchronously): the unwind is then
// deferred to the pending await.
func (h *Handle) Destroy() {
	if h.done.Load() {
		return
	}
	if h.machine.IsInside() {
		h.selfDestroy = true
		return
	}
	h.machine.Cancel()
}

// Status returns the task's final status. Valid only once Done.
func (h *Handle) Status() result.Status {
	if !h.done.Load() {
		panic("stackless: status of an unfinished task")
	}
	return h.status
}

func (h *Handle) finish(status result.Status) {
	h.status = status
	if h.stack != nil {
		coroutine.ReleaseStack(h.stack)
		h.stack = nil
	}
	h.done.Store(true)
}

// Task owns a not-yet-detached stackless task. Tasks start suspended; the
// first resume of the released handle enters the routine.
type Task struct {
	handle *Handle
}

// NewTask creates a suspended task over routine. The routine's return (or
// panic, captured as a PanicError) becomes the task's status.
func NewTask(routine func() error) *Task {
	h := &Handle{stack: coroutine.AllocateStack()}
	h.machine = coroutine.NewMachine(func() {
		currentTask.Set(h)
		defer currentTask.Clear()

		status := result.OkStatus()
		defer func() {
			if r := recover(); r != nil {
				if coroutine.IsUnwinding(r) {
					h.finish(result.FailStatus(ErrTaskDestroyed))
					return
				}
				h.finish(result.FailStatus(result.PanicError{Value: r}))
				return
			}
			h.finish(status)
		}()
		if err := routine(); err != nil {
			status = result.FailStatus(err)
		}
	}, h.stack)
	return &Task{handle: h}
}

// ReleaseHandle detaches and returns the task's handle. The task no longer
// owns it.
func (t *Task) ReleaseHandle() *Handle {
	if t.handle == nil {
		panic("stackless: task handle already released")
	}
	h := t.handle
	t.handle = nil
	return h
}

// Close verifies an owned task has run to completion. Dropping an
// unfinished task would leak its suspended frames, so it panics instead.
func (t *Task) Close() {
	if t.handle != nil && !t.handle.Done() {
		panic("stackless: task dropped before completion")
	}
}

// FireAndForget detaches the task and resumes it once; from then on the
// task drives itself through its awaiters.
func FireAndForget(t *Task) {
	t.ReleaseHandle().Resume()
}

// Awaiter is the suspension protocol of a stackless task. AwaitReady is
// the fast path: true skips suspension entirely. Otherwise the runtime
// hands the task's handle to AwaitSuspend, which returns true to leave
// the task suspended or false to resume it immediately (it lost the race
// it was about to wait for).
type Awaiter interface {
	AwaitReady() bool
	AwaitSuspend(h *Handle) bool
}

// Await suspends the current task on awaiter. Must be called from inside
// a task routine.
func Await(awaiter Awaiter) {
	h, ok := currentTask.Get()
	if !ok {
		panic("stackless: await outside of a task")
	}
	if awaiter.AwaitReady() {
		return
	}
	if awaiter.AwaitSuspend(h) {
		if h.selfDestroy {
			coroutine.Unwind()
		}
		h.machine.Suspend()
	}
}
