package futures

import "errors"

// Standard errors.
var (
	// ErrDiscarded is the failure observed by a blocking waiter whose
	// subscription was discarded by a stopping executor before the result
	// was delivered.
	ErrDiscarded = errors.New("futures: subscription discarded by executor")
)
