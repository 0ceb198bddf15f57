// Package executors provides the task contract and the executors that
// carry all work in the runtime: an inline executor, a deterministic
// manual queue for tests, a fixed thread pool, and a strand that
// serializes tasks over any other executor.
package executors

import (
	"github.com/asorokovikov/magic-core/intrusive"
)

// Task is the unit of work accepted by executors.
//
// Ownership of a submitted task transfers to the executor until it invokes
// exactly one of Run or Discard, exactly once. Neither method may panic
// out: a task is responsible for its own failures.
type Task interface {
	Run()

	// Discard abandons the work and releases its resources without
	// running it. Executors call it when they shut down with the task
	// still queued.
	Discard()
}

// TaskNode is a task that can be linked into intrusive queues without
// allocation. Implementations embed intrusive.Node.
type TaskNode interface {
	Task
	intrusive.Item
}

// Executor accepts task nodes and commits to dispatching each exactly once.
type Executor interface {
	Execute(task TaskNode)
}

// funcTask adapts a plain closure to the TaskNode contract. It is heap
// allocated per submission and unreferenced once dispatched.
type funcTask struct {
	intrusive.Node
	fn func()
}

func (t *funcTask) Run() {
	defer func() {
		if r := recover(); r != nil {
			logTaskPanic(r)
		}
	}()
	t.fn()
}

func (t *funcTask) Discard() {}

// NewTask wraps fn as a TaskNode. A panic escaping fn is caught and
// logged; per the Task contract it must not reach the executor.
func NewTask(fn func()) TaskNode {
	return &funcTask{fn: fn}
}

// Submit wraps fn as a task and hands it to e.
func Submit(e Executor, fn func()) {
	e.Execute(NewTask(fn))
}
