// Package local provides goroutine-local storage keyed by goroutine id.
//
// It backs the "current coroutine", "current fiber", and "current thread
// pool" registries. Values are visible only to the goroutine that set them,
// so nested cooperative primitives each resolve their own context without
// ambient parameters.
package local

import (
	"runtime"
	"sync"
)

// GoroutineID returns the current goroutine's id, parsed from the header
// line of runtime.Stack output.
func GoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}

// Local is a goroutine-local slot of T. The zero value is ready to use.
//
// Set and Clear must be called from the goroutine the value belongs to;
// Get resolves the calling goroutine's value.
type Local[T any] struct {
	m sync.Map // goroutine id -> T
}

// Get returns the calling goroutine's value, if set.
func (l *Local[T]) Get() (T, bool) {
	if v, ok := l.m.Load(GoroutineID()); ok {
		return v.(T), true
	}
	var zero T
	return zero, false
}

// Set installs v as the calling goroutine's value.
func (l *Local[T]) Set(v T) {
	l.m.Store(GoroutineID(), v)
}

// Exchange installs v and returns the previously installed value, if any.
func (l *Local[T]) Exchange(v T) (T, bool) {
	id := GoroutineID()
	var zero T
	prev, had := l.m.Load(id)
	l.m.Store(id, v)
	if had {
		return prev.(T), true
	}
	return zero, false
}

// Restore reinstates a value previously returned by Exchange, removing the
// slot entirely when had is false.
func (l *Local[T]) Restore(v T, had bool) {
	if had {
		l.m.Store(GoroutineID(), v)
	} else {
		l.m.Delete(GoroutineID())
	}
}

// Clear removes the calling goroutine's value.
func (l *Local[T]) Clear() {
	l.m.Delete(GoroutineID())
}
