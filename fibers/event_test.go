package fibers

import (
	"sync/atomic"
	"testing"

	"github.com/asorokovikov/magic-core/concurrency"
	"github.com/asorokovikov/magic-core/executors"
)

func TestOneShotEventWaiters(t *testing.T) {
	var event OneShotEvent
	var woken atomic.Int64

	RunScheduler(4, func() {
		for i := 0; i < 3; i++ {
			Go(func() {
				event.Wait()
				woken.Add(1)
			})
		}
		Go(func() {
			for i := 0; i < 10; i++ {
				Yield() // give waiters time to park
			}
			event.Fire()
		})
	})

	if woken.Load() != 3 {
		t.Fatal(woken.Load())
	}
}

func TestOneShotEventWaitAfterFire(t *testing.T) {
	var event OneShotEvent
	done := false

	RunScheduler(1, func() {
		event.Fire()
		event.Wait() // returns immediately
		done = true
	})

	if !done {
		t.Fatal(`expected immediate return after fire`)
	}
}

func TestOneShotEventFireIdempotent(t *testing.T) {
	var event OneShotEvent
	RunScheduler(1, func() {
		event.Fire()
		event.Fire()
		if !event.IsReady() {
			t.Error(`expected ready event`)
		}
	})
}

func TestOneShotEventFireFromPlainGoroutine(t *testing.T) {
	pool := executors.NewThreadPool(2)

	var event OneShotEvent
	var released concurrency.OneShotEvent

	GoOn(pool, func() {
		event.Wait()
		released.Fire()
	})

	go event.Fire()

	released.Wait()
	pool.WaitIdle()
	pool.Stop()
}
