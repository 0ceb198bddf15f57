package coroutine

import (
	"github.com/asorokovikov/magic-core/internal/local"
)

// currentProcessor resolves the package-level Receive from inside a
// consumer routine.
var currentProcessor local.Local[any]

// Processor inverts the generator: the routine is the consumer, pulling
// values with Receive, while the owner pushes with Send and terminates the
// stream with Close.
//
// Single-threaded use: not safe to drive from multiple goroutines
// simultaneously.
type Processor[T any] struct {
	stack   *Stack
	machine *Machine

	value   T
	closed  bool
	hasNext bool
}

// NewProcessor creates a processor over the consumer routine. The routine
// does not run until the first Send or Close.
func NewProcessor[T any](routine func()) *Processor[T] {
	p := &Processor[T]{stack: AllocateStack()}
	p.machine = NewMachine(func() {
		currentProcessor.Set(p)
		defer currentProcessor.Clear()
		routine()
	}, p.stack)
	return p
}

// Send delivers value to the consumer routine, resuming it. Values sent
// after the routine has finished are dropped.
func (p *Processor[T]) Send(value T) {
	p.deliver(value, false)
}

// Close delivers the terminal no-value: the routine's pending Receive
// reports false. If the routine is still suspended afterwards it is
// unwound, and the stack returns to the pool.
func (p *Processor[T]) Close() {
	var zero T
	p.deliver(zero, true)
	if !p.machine.IsCompleted() {
		p.machine.Cancel()
	}
	p.releaseIfCompleted()
}

// Receive suspends the consumer routine of the innermost Processor[T]
// until its owner Sends a value or Closes the stream. Returns false on
// close.
func Receive[T any]() (T, bool) {
	p := getCurrentProcessor[T]()
	for !p.hasNext {
		p.machine.Suspend()
	}
	return p.takeValue()
}

func getCurrentProcessor[T any]() *Processor[T] {
	v, ok := currentProcessor.Get()
	if !ok {
		panic("coroutine: Receive outside of a processor")
	}
	p, ok := v.(*Processor[T])
	if !ok {
		panic("coroutine: Receive value type does not match the processor")
	}
	return p
}

func (p *Processor[T]) deliver(value T, closed bool) {
	if p.machine.IsCompleted() {
		return
	}
	p.value = value
	p.closed = closed
	p.hasNext = true
	defer p.releaseIfCompleted()
	p.machine.Resume()
}

func (p *Processor[T]) takeValue() (T, bool) {
	p.hasNext = false
	if p.closed {
		var zero T
		return zero, false
	}
	return p.value, true
}

func (p *Processor[T]) releaseIfCompleted() {
	if p.stack != nil && p.machine.IsCompleted() {
		ReleaseStack(p.stack)
		p.stack = nil
	}
}
