package coroutine

import (
	"github.com/asorokovikov/magic-core/internal/local"
)

// currentCoroutine resolves the package-level Suspend from inside a
// routine. It is registered by the routine wrapper, so nested coroutines
// each see their own innermost instance.
var currentCoroutine local.Local[*Coroutine]

// Coroutine is a standalone stackful coroutine: a Machine plus an owned
// pooled stack and the goroutine-local registration that makes Suspend
// ergonomic.
//
// Single-threaded use: the owner drives Resume; the routine calls Suspend.
type Coroutine struct {
	stack   *Stack
	machine *Machine
}

// NewCoroutine creates a coroutine over routine. The routine does not run
// until the first Resume.
func NewCoroutine(routine func()) *Coroutine {
	c := &Coroutine{stack: AllocateStack()}
	c.machine = NewMachine(func() {
		currentCoroutine.Set(c)
		defer currentCoroutine.Clear()
		routine()
	}, c.stack)
	return c
}

// Resume runs the coroutine until its next Suspend or completion. Panics
// raised by the routine resurface here. The stack returns to the pool when
// the routine completes.
func (c *Coroutine) Resume() {
	defer c.releaseIfCompleted()
	c.machine.Resume()
}

// Suspend suspends the innermost coroutine of the calling context. Panics
// when not called from inside a coroutine.
func Suspend() {
	c, ok := currentCoroutine.Get()
	if !ok {
		panic("coroutine: Suspend outside of a coroutine")
	}
	c.machine.Suspend()
}

// IsCompleted reports whether the routine has returned.
func (c *Coroutine) IsCompleted() bool {
	return c.machine.IsCompleted()
}

// Cancel unwinds an unfinished coroutine and releases its stack. No-op if
// already completed.
func (c *Coroutine) Cancel() {
	defer c.releaseIfCompleted()
	c.machine.Cancel()
}

func (c *Coroutine) releaseIfCompleted() {
	if c.stack != nil && c.machine.IsCompleted() {
		ReleaseStack(c.stack)
		c.stack = nil
	}
}
