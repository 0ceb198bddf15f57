package coroutine

import (
	"github.com/asorokovikov/magic-core/internal/local"
)

// Machine is the stackful asymmetric coroutine core: two execution
// contexts, a routine, the pending failure slot, and the completion flag.
// It does not manage stacks and exposes an unguarded Suspend; the
// standalone Coroutine, the Generator/Processor, and fibers each wrap it
// with their own ownership discipline.
type Machine struct {
	routine  func()
	context  ExecutionContext
	external ExecutionContext

	panicValue any
	panicked   bool
	unwinding  bool
	completed  bool

	// gid identifies the goroutine hosting the routine while it runs;
	// zero outside that window.
	gid uint64
}

// unwindToken is the panic value used to force-unwind a suspended routine
// during cancellation. It never escapes the trampoline.
type unwindToken struct{}

// IsUnwinding reports whether a recovered value is the forced-unwind
// token of a Cancel in progress. Wrappers that recover around a routine
// must not treat it as a routine failure.
func IsUnwinding(recovered any) bool {
	_, ok := recovered.(unwindToken)
	return ok
}

// Unwind force-unwinds the calling routine from the current point, as
// Cancel would from outside. Must be called from inside a coroutine.
func Unwind() {
	panic(unwindToken{})
}

// NewMachine creates a coroutine running routine on stack. The routine
// does not start until the first Resume.
func NewMachine(routine func(), stack *Stack) *Machine {
	m := &Machine{routine: routine}
	m.context.Setup(stack, m)
	return m
}

// Run is the trampoline entry. It captures any panic escaping the routine,
// marks the coroutine completed, and exits to the caller's context.
func (m *Machine) Run() {
	m.gid = local.GoroutineID()
	func() {
		defer func() {
			if r := recover(); r != nil {
				if _, forced := r.(unwindToken); !forced {
					m.panicValue = r
					m.panicked = true
				}
			}
		}()
		m.routine()
	}()

	m.gid = 0
	m.completed = true
	m.context.ExitTo(&m.external)
}

// Resume switches from the caller into the coroutine, returning at its
// next suspension or completion. A panic captured inside the routine is
// re-raised here, in the caller's frame.
//
// Resume is illegal after completion and panics.
func (m *Machine) Resume() {
	if m.completed {
		panic("coroutine: resume of completed coroutine")
	}

	m.external.SwitchTo(&m.context)

	if m.panicked {
		m.panicked = false
		value := m.panicValue
		m.panicValue = nil
		panic(value)
	}
}

// Suspend switches from inside the coroutine back to the caller. Must be
// called from the routine.
func (m *Machine) Suspend() {
	m.context.SwitchTo(&m.external)
	if m.unwinding {
		panic(unwindToken{})
	}
}

// IsCompleted reports whether the routine has returned. Owner-side only.
func (m *Machine) IsCompleted() bool {
	return m.completed
}

// IsInside reports whether the caller is running on this coroutine's own
// goroutine. Destruction requested from inside must unwind in place (via
// Unwind) rather than Cancel, which switches contexts.
func (m *Machine) IsInside() bool {
	return m.gid != 0 && m.gid == local.GoroutineID()
}

// Cancel force-unwinds a suspended, unfinished coroutine so its stack can
// be reclaimed: the routine's next (virtual) resumption panics through its
// frames, deferred functions run, and the coroutine completes without a
// pending failure. No-op on a completed machine.
func (m *Machine) Cancel() {
	if m.completed {
		return
	}
	if !m.context.started {
		// Never entered: there are no frames to unwind.
		m.completed = true
		return
	}
	m.unwinding = true
	m.external.SwitchTo(&m.context)
	if !m.completed {
		panic("coroutine: cancel did not unwind the routine")
	}
}
