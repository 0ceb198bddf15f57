// Package futures provides a future/promise pair with synchronous and
// asynchronous continuations, error recovery, a blocking getter, and
// executor-directed callback dispatch.
package futures

import (
	"sync/atomic"

	"github.com/asorokovikov/magic-core/executors"
	"github.com/asorokovikov/magic-core/result"
)

// Shared state rendezvous phases. Whichever side arrives second observes
// the other's phase and performs the delivery.
const (
	stateInitial int32 = iota
	stateOnlyResult
	stateOnlyCallback
	stateFinish
)

// Callback is the task form of a future continuation: the shared state
// stores the result into it, then submits it to the configured executor.
// Discard follows the task contract — abandon the work without running;
// the promise side is left unresolved in that case.
type Callback[T any] interface {
	executors.TaskNode
	SetResult(result.Result[T])
}

// sharedState is the rendezvous between the producer (SetResult) and the
// consumer (SetCallback / GetResult) of one future value.
//
// The executor field is written by Via before the state is shared with a
// producer; it is not synchronized on its own.
type sharedState[T any] struct {
	executor executors.Executor
	res      result.Result[T]
	callback Callback[T]
	state    atomic.Int32
}

func newSharedState[T any](executor executors.Executor) *sharedState[T] {
	return &sharedState[T]{executor: executor}
}

// hasResult reports whether a result has been stored.
func (s *sharedState[T]) hasResult() bool {
	state := s.state.Load()
	return state == stateOnlyResult || state == stateFinish
}

// hasCallback reports whether a callback has been installed.
func (s *sharedState[T]) hasCallback() bool {
	state := s.state.Load()
	return state == stateOnlyCallback || state == stateFinish
}

// getResult consumes the stored result. Call only after hasResult.
func (s *sharedState[T]) getResult() result.Result[T] {
	return s.res
}

func (s *sharedState[T]) setExecutor(executor executors.Executor) {
	s.executor = executor
}

// setResult stores the result and, if a callback is already installed,
// delivers it through the executor. At most one result may ever be set.
func (s *sharedState[T]) setResult(res result.Result[T]) {
	if s.hasResult() {
		panic("futures: result is already set")
	}
	s.res = res

	state := s.state.Load()
	if state == stateInitial {
		if s.state.CompareAndSwap(stateInitial, stateOnlyResult) {
			return
		}
		state = s.state.Load()
	}

	if state == stateOnlyCallback {
		s.state.Store(stateFinish)
		s.invokeCallback()
		return
	}

	panic("futures: unexpected shared state")
}

// setCallback installs the callback and, if the result is already present,
// delivers it now. At most one callback may ever be installed.
func (s *sharedState[T]) setCallback(callback Callback[T]) {
	if s.hasCallback() {
		panic("futures: callback is already set")
	}
	s.callback = callback

	state := s.state.Load()
	if state == stateInitial {
		if s.state.CompareAndSwap(stateInitial, stateOnlyCallback) {
			return
		}
		state = s.state.Load()
	}

	if state == stateOnlyResult {
		s.state.Store(stateFinish)
		s.invokeCallback()
		return
	}

	panic("futures: unexpected shared state")
}

// invokeCallback runs on whichever side arrived second: the callback
// receives the result and is submitted to the state's executor.
func (s *sharedState[T]) invokeCallback() {
	s.callback.SetResult(s.res)
	s.executor.Execute(s.callback)
}
