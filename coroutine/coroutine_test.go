package coroutine

import (
	"errors"
	"testing"
)

func TestCoroutineSuspendResume(t *testing.T) {
	step := 0
	c := NewCoroutine(func() {
		step = 1
		Suspend()
		step = 2
		Suspend()
		step = 3
	})

	if c.IsCompleted() {
		t.Fatal(`not started yet`)
	}

	c.Resume()
	if step != 1 || c.IsCompleted() {
		t.Fatal(step)
	}
	c.Resume()
	if step != 2 || c.IsCompleted() {
		t.Fatal(step)
	}
	c.Resume()
	if step != 3 || !c.IsCompleted() {
		t.Fatal(step)
	}
}

func TestCoroutineResumeAfterCompletedPanics(t *testing.T) {
	c := NewCoroutine(func() {})
	c.Resume()
	if !c.IsCompleted() {
		t.Fatal(`expected completion`)
	}
	defer func() {
		if recover() == nil {
			t.Fatal(`expected panic`)
		}
	}()
	c.Resume()
}

func TestCoroutinePanicPropagation(t *testing.T) {
	sentinel := errors.New(`sentinel`)
	c := NewCoroutine(func() {
		Suspend()
		panic(sentinel)
	})

	c.Resume() // runs to the suspend, no panic yet

	func() {
		defer func() {
			if r := recover(); r != sentinel {
				t.Fatal(r)
			}
		}()
		c.Resume()
	}()

	if !c.IsCompleted() {
		t.Fatal(`panicked coroutine must be completed`)
	}
}

// A deferred function in the routine observes the panic before it crosses
// back into the caller.
func TestCoroutinePanicRunsDefers(t *testing.T) {
	deferred := false
	c := NewCoroutine(func() {
		defer func() { deferred = true }()
		panic(`boom`)
	})

	func() {
		defer func() { _ = recover() }()
		c.Resume()
	}()

	if !deferred {
		t.Fatal(`expected the routine's defers to run`)
	}
}

func TestCoroutineSuspendOutsidePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal(`expected panic`)
		}
	}()
	Suspend()
}

// Nested suspend targets the innermost coroutine.
func TestCoroutineNested(t *testing.T) {
	var trace []string

	var inner *Coroutine
	outer := NewCoroutine(func() {
		trace = append(trace, `outer:1`)
		inner = NewCoroutine(func() {
			trace = append(trace, `inner:1`)
			Suspend()
			trace = append(trace, `inner:2`)
		})
		inner.Resume()
		trace = append(trace, `outer:2`)
		Suspend()
		inner.Resume()
		trace = append(trace, `outer:3`)
	})

	outer.Resume()
	outer.Resume()

	want := []string{`outer:1`, `inner:1`, `outer:2`, `inner:2`, `outer:3`}
	if len(trace) != len(want) {
		t.Fatal(trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatal(trace)
		}
	}
	if !outer.IsCompleted() || !inner.IsCompleted() {
		t.Fatal(`expected both completed`)
	}
}

func TestCoroutineCancelUnwinds(t *testing.T) {
	deferred := false
	c := NewCoroutine(func() {
		defer func() { deferred = true }()
		Suspend()
		t.Error(`must not run past the suspend`)
	})

	c.Resume()
	c.Cancel()

	if !deferred || !c.IsCompleted() {
		t.Fatal(deferred, c.IsCompleted())
	}
}

func TestStackPoolReuse(t *testing.T) {
	before := StackPoolMetrics()

	c := NewCoroutine(func() {})
	c.Resume()

	c2 := NewCoroutine(func() {})
	c2.Resume()

	after := StackPoolMetrics()
	if after.TotalAllocations-before.TotalAllocations != 2 {
		t.Fatal(before, after)
	}
	if after.Releases-before.Releases != 2 {
		t.Fatal(before, after)
	}
	// the second coroutine reuses the stack released by the first
	if after.Reuses == before.Reuses {
		t.Fatal(before, after)
	}
}
