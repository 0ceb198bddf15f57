package fibers

// FiberHandle is an opaque reference to a suspended fiber, handed to
// awaiters. The zero value is the invalid handle.
type FiberHandle struct {
	fiber *Fiber
}

// InvalidHandle returns the handle no fiber is behind. Awaiters return it
// to keep the caller suspended.
func InvalidHandle() FiberHandle {
	return FiberHandle{}
}

// IsValid reports whether the handle refers to a fiber.
func (h FiberHandle) IsValid() bool {
	return h.fiber != nil
}

// Schedule queues the fiber on its own executor.
func (h FiberHandle) Schedule() {
	h.mustFiber().schedule()
}

// Resume reschedules a suspended fiber; the next available worker picks it
// up. Panics if the fiber is not suspended.
func (h FiberHandle) Resume() {
	h.mustFiber().resume()
}

func (h FiberHandle) mustFiber() *Fiber {
	if h.fiber == nil {
		panic("fibers: invalid fiber handle")
	}
	return h.fiber
}
