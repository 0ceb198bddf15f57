package futures_test

import (
	"fmt"

	"github.com/asorokovikov/magic-core/executors"
	"github.com/asorokovikov/magic-core/futures"
	"github.com/asorokovikov/magic-core/result"
)

func Example() {
	pool := executors.NewThreadPool(4)

	f := futures.Execute(pool, func() (int, error) {
		return 1, nil
	})
	f = futures.Then(f, func(v int) (int, error) { return v + 1, nil })
	f = futures.Then(f, func(v int) (int, error) { return v + 2, nil })
	f = futures.Then(f, func(v int) (int, error) { return v + 3, nil })

	v, err := futures.WaitValue(f)
	fmt.Println(v, err)

	pool.WaitIdle()
	pool.Stop()

	// Output:
	// 7 <nil>
}

func ExampleFuture_Recover() {
	var manual executors.ManualExecutor

	f := futures.Execute(&manual, func() (int, error) {
		panic(`unreachable backend`)
	})
	f = f.Recover(func(err error) result.Result[int] {
		return result.Ok(7)
	})

	var got int
	f.Subscribe(func(res result.Result[int]) {
		got, _ = res.Unwrap()
	})

	manual.RunAll()
	fmt.Println(got)

	// Output:
	// 7
}
