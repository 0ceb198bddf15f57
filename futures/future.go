package futures

import (
	"github.com/asorokovikov/magic-core/executors"
	"github.com/asorokovikov/magic-core/intrusive"
	"github.com/asorokovikov/magic-core/result"
)

// Future is the consumer half of a contract: a read-once handle on a value
// being produced elsewhere.
//
// Consuming operations (GetResult, Subscribe, the combinators) release the
// shared state: the future becomes invalid and further use panics.
type Future[T any] struct {
	state *sharedState[T]
}

// Promise is the producer half of a contract. Setting a result consumes
// the promise.
type Promise[T any] struct {
	state *sharedState[T]
}

// Contract is a future/promise pair sharing one state.
type Contract[T any] struct {
	Future  *Future[T]
	Promise *Promise[T]
}

// MakeContractVia creates a connected future/promise pair whose callback
// dispatch runs on executor.
func MakeContractVia[T any](executor executors.Executor) Contract[T] {
	state := newSharedState[T](executor)
	return Contract[T]{
		Future:  &Future[T]{state: state},
		Promise: &Promise[T]{state: state},
	}
}

// MakeContract creates a connected future/promise pair over the inline
// executor.
func MakeContract[T any]() Contract[T] {
	return MakeContractVia[T](executors.Inline())
}

// ~ Future

// IsValid reports whether the future still holds its shared state.
func (f *Future[T]) IsValid() bool {
	return f.state != nil
}

// IsReady reports whether a result is already available. Non-blocking, any
// thread.
func (f *Future[T]) IsReady() bool {
	return f.accessState().hasResult()
}

// GetResult consumes the future and returns the stored result. Call only
// when IsReady.
func (f *Future[T]) GetResult() result.Result[T] {
	return f.releaseState().getResult()
}

// Via rebinds the executor used for callback dispatch and returns the
// future for chaining. Later Via calls override earlier ones.
func (f *Future[T]) Via(executor executors.Executor) *Future[T] {
	f.accessState().setExecutor(executor)
	return f
}

// Executor returns the executor callbacks will be dispatched on.
func (f *Future[T]) Executor() executors.Executor {
	return f.accessState().executor
}

// Subscribe consumes the future, arranging for fn to receive the final
// result. The callback is always submitted to the future's executor;
// whichever side arrives second (the producer's Set or this call) submits
// it. With the inline executor it therefore runs on that side's goroutine.
func (f *Future[T]) Subscribe(fn func(result.Result[T])) {
	f.SubscribeCallback(&uniqueCallback[T]{fn: fn})
}

// SubscribeCallback consumes the future, installing callback as the
// terminal continuation.
func (f *Future[T]) SubscribeCallback(callback Callback[T]) {
	f.releaseState().setCallback(callback)
}

func (f *Future[T]) accessState() *sharedState[T] {
	if f.state == nil {
		panic("futures: no shared state")
	}
	return f.state
}

func (f *Future[T]) releaseState() *sharedState[T] {
	state := f.accessState()
	f.state = nil
	return state
}

// ~ Promise

// Set consumes the promise, storing res as the future's result.
func (p *Promise[T]) Set(res result.Result[T]) {
	p.releaseState().setResult(res)
}

// SetValue consumes the promise, fulfilling the future with value.
func (p *Promise[T]) SetValue(value T) {
	p.Set(result.Ok(value))
}

// SetError consumes the promise, failing the future with err.
func (p *Promise[T]) SetError(err error) {
	p.Set(result.Fail[T](err))
}

func (p *Promise[T]) releaseState() *sharedState[T] {
	if p.state == nil {
		panic("futures: no shared state")
	}
	state := p.state
	p.state = nil
	return state
}

// uniqueCallback adapts a closure to the Callback contract. Discard drops
// the closure without running it, leaving the promise unresolved — the
// documented outcome for subscriptions discarded by a stopping executor.
type uniqueCallback[T any] struct {
	intrusive.Node
	fn  func(result.Result[T])
	res result.Result[T]
}

func (c *uniqueCallback[T]) SetResult(res result.Result[T]) { c.res = res }

func (c *uniqueCallback[T]) Run() { c.fn(c.res) }

func (c *uniqueCallback[T]) Discard() {}
