package stackless

import (
	"sync/atomic"
)

// WaitGroup lets stackless tasks wait for a counted set of operations to
// finish. The transition to zero fires a one-shot event, so a WaitGroup
// covers one Add/Done cycle.
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

// Done marks one operation finished, firing the event when the counter
// reaches zero.
func (wg *WaitGroup) Done() {
	if wg.counter.Add(-1) == 0 {
		wg.event.Fire()
	}
}

// Wait suspends the current task until the counter has reached zero.
func (wg *WaitGroup) Wait() {
	wg.event.Wait()
}
