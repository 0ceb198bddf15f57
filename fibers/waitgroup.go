package fibers

import (
	"sync/atomic"
)

// WaitGroup lets fibers wait for a counted set of operations to finish.
// The counter's transition to zero fires a one-shot event, so a WaitGroup
// covers one Add/Done cycle; it is not reusable after Wait returns.
//
// The zero value is ready to use.
type WaitGroup struct {
	event   OneShotEvent
	counter atomic.Int64
}

// Add increments the outstanding-operation counter by count.
func (wg *WaitGroup) Add(count int64) {
	wg.counter.Add(count)
}

// Done marks one operation finished, releasing waiters when the counter
// reaches zero.
func (wg *WaitGroup) Done() {
	if wg.counter.Add(-1) == 0 {
		wg.event.Fire()
	}
}

// Wait suspends the calling fiber until the counter has reached zero.
func (wg *WaitGroup) Wait() {
	wg.event.Wait()
}
