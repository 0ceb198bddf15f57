package futures

import (
	"github.com/asorokovikov/magic-core/concurrency"
	"github.com/asorokovikov/magic-core/intrusive"
	"github.com/asorokovikov/magic-core/result"
)

// blockingGetter parks the calling goroutine on a one-shot event until the
// subscribed future delivers its result.
type blockingGetter[T any] struct {
	intrusive.Node
	event concurrency.OneShotEvent
	res   result.Result[T]
}

func (g *blockingGetter[T]) SetResult(res result.Result[T]) { g.res = res }

func (g *blockingGetter[T]) Run() { g.event.Fire() }

func (g *blockingGetter[T]) Discard() {
	// Executor stopped with the callback still queued; release the waiter
	// so it does not block forever. The result slot stays failed.
	g.res = result.Fail[T](ErrDiscarded)
	g.event.Fire()
}

// WaitResult blocks the calling goroutine until the future's result is
// available and returns it, consuming the future.
//
// Blocking-aware callers inside fibers should use the fibers package
// Await, which suspends the fiber instead of occupying its worker.
func WaitResult[T any](f *Future[T]) result.Result[T] {
	getter := &blockingGetter[T]{}
	f.SubscribeCallback(getter)
	getter.event.Wait()
	return getter.res
}

// WaitValue blocks until the future's result is available and unwraps it.
func WaitValue[T any](f *Future[T]) (T, error) {
	return WaitResult(f).Unwrap()
}
