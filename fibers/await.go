package fibers

import (
	"github.com/asorokovikov/magic-core/futures"
	"github.com/asorokovikov/magic-core/intrusive"
	"github.com/asorokovikov/magic-core/result"
)

// futureAwaiter parks a fiber on a future: always-suspend, with the
// future's callback resuming the fiber once the result lands.
type futureAwaiter[T any] struct {
	intrusive.Node
	future *futures.Future[T]
	handle FiberHandle
	res    result.Result[T]
}

// awaitReady consumes the result on the fast path, skipping suspension.
func (a *futureAwaiter[T]) awaitReady() bool {
	if a.future.IsReady() {
		a.res = a.future.GetResult()
		return true
	}
	return false
}

// OnCompleted subscribes after the fiber has fully suspended; the handle
// is stashed first so a racing producer finds it in place.
func (a *futureAwaiter[T]) OnCompleted(handle FiberHandle) FiberHandle {
	a.handle = handle
	a.future.SubscribeCallback(a)
	return InvalidHandle()
}

// ~ futures.Callback

func (a *futureAwaiter[T]) SetResult(res result.Result[T]) { a.res = res }

func (a *futureAwaiter[T]) Run() { a.handle.Resume() }

func (a *futureAwaiter[T]) Discard() {
	// Executor stopped with the resume still queued; the fiber stays
	// parked, matching the documented discard semantics of unfulfilled
	// subscriptions.
}

// AwaitResult waits for the future's result, consuming the future. Inside
// a fiber it suspends the fiber, freeing the worker; outside it falls back
// to the thread-blocking getter.
func AwaitResult[T any](f *futures.Future[T]) result.Result[T] {
	if !InFiber() {
		return futures.WaitResult(f)
	}
	awaiter := &futureAwaiter[T]{future: f}
	if !awaiter.awaitReady() {
		Suspend(awaiter)
	}
	return awaiter.res
}

// Await waits for the future's result and unwraps it, consuming the
// future. Fiber-aware like AwaitResult.
func Await[T any](f *futures.Future[T]) (T, error) {
	return AwaitResult(f).Unwrap()
}
