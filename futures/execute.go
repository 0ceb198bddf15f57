package futures

import (
	"github.com/asorokovikov/magic-core/executors"
	"github.com/asorokovikov/magic-core/result"
)

// Execute runs fn on executor and returns a future for its outcome.
//
// Usage:
//
//	f := futures.Execute(pool, func() (int, error) {
//	    return 42, nil // runs on the pool
//	})
func Execute[T any](executor executors.Executor, fn func() (T, error)) *Future[T] {
	contract := MakeContractVia[T](executor)
	promise := contract.Promise

	executors.Submit(executor, func() {
		promise.Set(result.Capture(fn))
	})

	return contract.Future
}
