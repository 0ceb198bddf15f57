// Package-level structured logging configuration, mirroring the executors
// package: one process-wide hook, type-erased logiface logger.

package coroutine

import (
	"sync"

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

// logStackAllocated records pool growth: a fresh stack, not a reuse.
func logStackAllocated() {
	logger := getLogger()
	if logger == nil {
		return
	}
	logger.Debug().
		Int(`size`, DefaultStackSize).
		Log(`coroutine: allocated new stack`)
}
