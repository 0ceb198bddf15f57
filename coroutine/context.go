// Package coroutine provides stackful asymmetric coroutines and the
// products built on them: a standalone Coroutine, a Generator, and a
// Processor.
//
// The machinery underneath is an execution-context pair and a pooled
// stack. A context switch parks the current goroutine and wakes the
// target; a fresh context starts at its configured trampoline. The pooled
// "stack" is a parked runner goroutine — its runtime stack is exactly the
// resource being reused.
package coroutine

// Trampoline is the entry point of a fresh execution context. Run finishes
// by calling ExitTo on its context and then returning at once; the hosting
// stack is then free to run the next trampoline.
type Trampoline interface {
	Run()
}

// ExecutionContext is one side of a coroutine switch: an opaque resumption
// point. Exactly one of the two contexts of a coroutine is runnable at any
// instant.
//
// The zero value is a valid caller-side context.
type ExecutionContext struct {
	// resume carries the single wake token for this context. A buffer of
	// one slot makes resumption level-triggered: a resume that races
	// ahead of the matching park is absorbed, not lost.
	resume chan struct{}

	stack   *Stack
	entry   Trampoline
	started bool
}

// Setup binds the context to a stack and a trampoline. The trampoline
// starts running at the first switch into the context.
func (c *ExecutionContext) Setup(stack *Stack, entry Trampoline) {
	c.stack = stack
	c.entry = entry
	c.ensure()
}

// SwitchTo suspends the current execution at from and resumes to. Control
// returns to the caller when something switches back into from.
func (from *ExecutionContext) SwitchTo(to *ExecutionContext) {
	from.ensure()
	to.dispatch()
	<-from.resume
}

// ExitTo resumes to and abandons the current context for good. The caller
// must return immediately afterwards; its stack is logically dead.
func (from *ExecutionContext) ExitTo(to *ExecutionContext) {
	to.dispatch()
}

func (c *ExecutionContext) ensure() {
	if c.resume == nil {
		c.resume = make(chan struct{}, 1)
	}
}

func (c *ExecutionContext) dispatch() {
	c.ensure()
	if !c.started && c.entry != nil {
		c.started = true
		c.stack.start(c.entry)
		return
	}
	c.resume <- struct{}{}
}
