package fibers

// CondVar is a fiber condition variable paired with a fibers Mutex.
//
// The zero value is ready to use.
type CondVar struct {
	futex futex
}

// Wait atomically releases m and parks the calling fiber until notified,
// then reacquires m before returning. The caller must hold m.
func (cv *CondVar) Wait(m *Mutex) {
	epoch := cv.futex.prepareWait()
	m.Unlock()
	cv.futex.parkIfEqual(epoch)
	m.Lock()
}

// NotifyOne wakes one parked fiber, if any.
func (cv *CondVar) NotifyOne() {
	cv.futex.wakeOne()
}

// NotifyAll wakes every parked fiber.
func (cv *CondVar) NotifyAll() {
	cv.futex.wakeAll()
}
