package executors

import (
	"github.com/asorokovikov/magic-core/intrusive"
)

// ManualExecutor is a single-goroutine task queue driven explicitly by the
// caller. It exists for deterministic tests: nothing runs until one of the
// Run methods is invoked, and tasks run in submission order.
//
// Not safe for concurrent use.
//
// The zero value is an empty executor.
type ManualExecutor struct {
	tasks intrusive.List
}

var _ Executor = (*ManualExecutor)(nil)

// Execute queues task without running it.
func (e *ManualExecutor) Execute(task TaskNode) {
	e.tasks.PushBack(task)
}

// RunAll runs queued tasks until the queue is empty, including tasks
// queued by the tasks themselves. Returns the number of completed tasks.
func (e *ManualExecutor) RunAll() int {
	completed := 0
	for e.tasks.HasItems() {
		e.runNextTask()
		completed++
	}
	return completed
}

// RunAtMost runs up to limit queued tasks. Returns the number completed.
func (e *ManualExecutor) RunAtMost(limit int) int {
	completed := 0
	for completed < limit && e.HasTasks() {
		e.runNextTask()
		completed++
	}
	return completed
}

// RunOnce runs a single task if one is queued.
func (e *ManualExecutor) RunOnce() bool {
	return e.RunAtMost(1) == 1
}

// PendingTasks returns the number of queued tasks.
func (e *ManualExecutor) PendingTasks() int {
	return e.tasks.Len()
}

// HasTasks reports whether any task is queued.
func (e *ManualExecutor) HasTasks() bool {
	return e.tasks.HasItems()
}

// Close verifies the queue has been drained. Dropping a manual executor
// with queued tasks would silently break the exactly-once dispatch
// guarantee, so it panics instead.
func (e *ManualExecutor) Close() {
	if e.tasks.HasItems() {
		panic("executors: manual executor closed with non-empty task queue")
	}
}

func (e *ManualExecutor) runNextTask() {
	e.tasks.PopFront().(TaskNode).Run()
}
