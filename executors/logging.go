// Package-level structured logging configuration.
//
// The logger is a cross-cutting concern shared by all executors in the
// process, so it is configured once at the package level rather than per
// instance. Integration is through the type-erased logiface logger, which
// any backend can produce.

package executors

import (
	"sync"
	"time"

	catrate "github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

var packageLogger struct {
	sync.RWMutex
	logger *logiface.Logger[logiface.Event]
}

// SetLogger installs the structured logger used by this package. Pass nil
// to disable logging (the default).
func SetLogger(logger *logiface.Logger[logiface.Event]) {
	packageLogger.Lock()
	defer packageLogger.Unlock()
	packageLogger.logger = logger
}

func getLogger() *logiface.Logger[logiface.Event] {
	packageLogger.RLock()
	defer packageLogger.RUnlock()
	return packageLogger.logger
}

// discardLimiter rate-limits discard warnings: a stopped pool receiving a
// burst of submissions would otherwise flood the log with identical lines.
var discardLimiter = sync.OnceValue(func() *catrate.Limiter {
	return catrate.NewLimiter(map[time.Duration]int{
		time.Second: 1,
		time.Minute: 10,
	})
})

// logDiscardedTask warns that a submitted task was discarded, rate-limited
// per reason.
func logDiscardedTask(reason string) {
	logger := getLogger()
	if logger == nil {
		return
	}
	if _, ok := discardLimiter().Allow(reason); !ok {
		return
	}
	logger.Warning().
		Str(`reason`, reason).
		Log(`executors: task discarded`)
}

// logTaskPanic records a panic that escaped a submitted closure. Per the
// task contract the panic stops at the task boundary.
func logTaskPanic(value any) {
	logger := getLogger()
	if logger == nil {
		return
	}
	logger.Err().
		Any(`panic`, value).
		Log(`executors: panic in submitted task`)
}
