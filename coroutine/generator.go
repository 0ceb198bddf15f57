package coroutine

import (
	"github.com/asorokovikov/magic-core/internal/local"
)

// currentGenerator resolves the package-level Send from inside a producer
// routine. Stored untyped so generators of different element types share
// one registry.
var currentGenerator local.Local[any]

// Generator produces a lazy, finite sequence of T. The consumer pulls with
// Receive; the producer routine pushes with Send, suspending after each
// value.
//
// Single-threaded use: not safe to drive from multiple goroutines
// simultaneously.
type Generator[T any] struct {
	stack   *Stack
	machine *Machine
	value   T
}

// NewGenerator creates a generator over the producer routine. The routine
// does not run until the first Receive.
func NewGenerator[T any](routine func()) *Generator[T] {
	g := &Generator[T]{stack: AllocateStack()}
	g.machine = NewMachine(func() {
		currentGenerator.Set(g)
		defer currentGenerator.Clear()
		routine()
	}, g.stack)
	return g
}

// Receive resumes the producer and returns its next value. Returns false
// once the producer routine has completed.
func (g *Generator[T]) Receive() (T, bool) {
	if !g.generateNextValue() {
		var zero T
		return zero, false
	}
	return g.value, true
}

// Send delivers value from inside the producer routine of the innermost
// Generator[T] and suspends until the next Receive.
func Send[T any](value T) {
	g := getCurrentGenerator[T]()
	g.setValue(value)
}

// Close unwinds an unfinished producer and releases its stack. Call when
// abandoning a generator before exhausting it; exhausted generators clean
// up on their own.
func (g *Generator[T]) Close() {
	defer g.releaseIfCompleted()
	g.machine.Cancel()
}

func getCurrentGenerator[T any]() *Generator[T] {
	v, ok := currentGenerator.Get()
	if !ok {
		panic("coroutine: Send outside of a generator")
	}
	g, ok := v.(*Generator[T])
	if !ok {
		panic("coroutine: Send value type does not match the generator")
	}
	return g
}

func (g *Generator[T]) setValue(value T) {
	g.value = value
	g.machine.Suspend()
}

func (g *Generator[T]) generateNextValue() bool {
	if g.machine.IsCompleted() {
		return false
	}
	defer g.releaseIfCompleted()
	g.machine.Resume()
	return !g.machine.IsCompleted()
}

func (g *Generator[T]) releaseIfCompleted() {
	if g.stack != nil && g.machine.IsCompleted() {
		ReleaseStack(g.stack)
		g.stack = nil
	}
}
