package futures

import (
	"github.com/asorokovikov/magic-core/result"
)

// Then chains a synchronous continuation: the returned future carries
// fn(value) once f fulfills. On failure fn is skipped and the error
// propagates. A panic inside fn fails the downstream future with a
// captured PanicError.
//
// The downstream contract inherits f's executor.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	contract := MakeContractVia[U](f.Executor())
	promise := contract.Promise

	f.Subscribe(func(res result.Result[T]) {
		if res.IsOk() {
			promise.Set(result.Capture(func() (U, error) {
				return fn(res.ValueUnsafe())
			}))
		} else {
			promise.SetError(res.Err())
		}
	})

	return contract.Future
}

// ThenAsync chains an asynchronous continuation: fn returns a future whose
// result is forwarded downstream. On failure fn is skipped and the error
// propagates.
func ThenAsync[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	contract := MakeContractVia[U](f.Executor())
	promise := contract.Promise

	f.Subscribe(func(res result.Result[T]) {
		if res.IsOk() {
			inner := fn(res.ValueUnsafe())
			inner.Subscribe(func(innerRes result.Result[U]) {
				promise.Set(innerRes)
			})
		} else {
			promise.SetError(res.Err())
		}
	})

	return contract.Future
}

// Recover turns failures back into results: on error the handler produces
// the downstream result; fulfilled values propagate untouched. Recover is
// the only combinator that consumes an error.
func (f *Future[T]) Recover(handler func(error) result.Result[T]) *Future[T] {
	contract := MakeContractVia[T](f.Executor())
	promise := contract.Promise

	f.Subscribe(func(res result.Result[T]) {
		if res.IsOk() {
			promise.Set(res)
		} else {
			promise.Set(handler(res.Err()))
		}
	})

	return contract.Future
}
