package stackless

import (
	"testing"

	"github.com/asorokovikov/magic-core/executors"
)

func TestMutexUncontended(t *testing.T) {
	var manual executors.ManualExecutor
	var mutex Mutex
	counter := 0

	FireAndForget(NewTask(func() error {
		for i := 0; i < 10; i++ {
			guard := mutex.Lock()
			counter++
			guard.Unlock()
			Yield(&manual)
		}
		return nil
	}))

	manual.RunAll()
	if counter != 10 {
		t.Fatal(counter)
	}
}

// A holder suspended inside the critical section hands the lock to the
// parked contender on unlock; the contender resumes inline.
func TestMutexHandOff(t *testing.T) {
	var manual executors.ManualExecutor
	var mutex Mutex
	var trace []string

	FireAndForget(NewTask(func() error {
		guard := mutex.Lock()
		Yield(&manual) // hold across a suspension
		trace = append(trace, `holder`)
		guard.Unlock()
		return nil
	}))
	FireAndForget(NewTask(func() error {
		guard := mutex.Lock() // parks: the first task holds the lock
		trace = append(trace, `contender`)
		guard.Unlock()
		return nil
	}))

	manual.RunAll()

	if len(trace) != 2 || trace[0] != `holder` || trace[1] != `contender` {
		t.Fatal(trace)
	}
}

func TestMutexSerializesCounter(t *testing.T) {
	pool := executors.NewThreadPool(4)

	var mutex Mutex
	var wg WaitGroup
	counter := 0 // protected by mutex

	const tasks = 8
	const sections = 200

	wg.Add(tasks)
	for i := 0; i < tasks; i++ {
		FireAndForget(NewTask(func() error {
			DispatchTo(pool)
			for j := 0; j < sections; j++ {
				guard := mutex.Lock()
				counter++
				guard.Unlock()
			}
			wg.Done()
			return nil
		}))
	}

	waited := make(chan struct{})
	FireAndForget(NewTask(func() error {
		wg.Wait()
		close(waited)
		return nil
	}))

	<-waited
	pool.WaitIdle()
	pool.Stop()

	if counter != tasks*sections {
		t.Fatal(counter)
	}
}

func TestMutexTryLock(t *testing.T) {
	var mutex Mutex
	if !mutex.TryLock() {
		t.Fatal(`expected acquisition`)
	}
	if mutex.TryLock() {
		t.Fatal(`expected failure while held`)
	}
	mutex.Unlock()
	if !mutex.TryLock() {
		t.Fatal(`expected acquisition after unlock`)
	}
	mutex.Unlock()
}
