package stackless

import (
	"github.com/asorokovikov/magic-core/executors"
	"github.com/asorokovikov/magic-core/intrusive"
)

// dispatchAwaiter reschedules the current task onto an executor: the task
// suspends, a resume task is submitted, and whichever worker runs it
// continues the task there.
type dispatchAwaiter struct {
	intrusive.Node
	executor executors.Executor
	handle   *Handle
}

func (d *dispatchAwaiter) AwaitReady() bool { return false }

func (d *dispatchAwaiter) AwaitSuspend(h *Handle) bool {
	d.handle = h
	d.executor.Execute(d)
	return true
}

// ~ executors.TaskNode

func (d *dispatchAwaiter) Run() {
	d.handle.Resume()
}

func (d *dispatchAwaiter) Discard() {
	d.handle.Destroy()
}

// DispatchTo moves the current task to target: it suspends here and
// resumes on one of target's workers.
func DispatchTo(target executors.Executor) {
	Await(&dispatchAwaiter{executor: target})
}

// Yield reschedules the current task on current, letting other queued
// tasks run first. Precondition: the task is running in current.
func Yield(current executors.Executor) {
	DispatchTo(current)
}
