package lockfree

import (
	"sync"
	"sync/atomic"
)

// Stack is an unbounded lock-free Treiber stack safe for multiple
// producers and multiple consumers.
//
// The ABA hazard between loading head and CASing it out is mitigated by
// the stamp in the packed head word: every reader first publishes its
// presence by incrementing the head stamp. A successful popper folds the
// stamp it observed into the node's global count; every reader that lost
// the race decrements it. The node is reclaimed only when the global count
// returns to zero, i.e. when no reader can still hold a packed reference
// to it.
//
// Reclamation note: packed words hide pointers from the garbage collector,
// so live nodes are additionally pinned in a registry. Unpinning when the
// global count hits zero is the moral equivalent of the deferred delete,
// and doubles as the quiescence leak check in tests.
//
// The zero value is an empty stack.
type Stack[T any] struct {
	head AtomicStampedPtr[stackNode[T]]
	pins sync.Map // *stackNode[T] -> struct{}
}

type stackNode[T any] struct {
	value  T
	next   StampedPtr[stackNode[T]]
	global atomic.Int32
}

// Push adds value on top of the stack.
func (s *Stack[T]) Push(value T) {
	n := &stackNode[T]{value: value}
	s.pins.Store(n, struct{}{})
	desired := StampedPtr[stackNode[T]]{Ptr: n}
	for !s.head.CompareExchange(&n.next, desired) {
	}
}

// TryPop removes and returns the top value. Returns false if the stack was
// observed empty.
func (s *Stack[T]) TryPop() (T, bool) {
	for {
		current := s.acquireRef()
		if current.IsNil() {
			var zero T
			return zero, false
		}

		head := current
		if s.head.CompareExchange(&head, current.Ptr.next) {
			value := current.Ptr.value
			s.releaseRef(current.Ptr, int32(current.Stamp)-1)
			return value, true
		}

		s.releaseRef(current.Ptr, -1)
	}
}

// ConsumeAll detaches the whole stack in one step and invokes fn for each
// value, most recently pushed first.
func (s *Stack[T]) ConsumeAll(fn func(T)) {
	current := s.head.Load()
	for !s.head.CompareExchange(&current, StampedPtr[stackNode[T]]{}) {
	}

	for !current.IsNil() {
		next := current.Ptr.next
		fn(current.Ptr.value)
		s.releaseRef(current.Ptr, int32(current.Stamp))
		current = next
	}
}

// IsEmpty reports whether the stack was observed empty.
func (s *Stack[T]) IsEmpty() bool { return s.head.Load().IsNil() }

// LiveNodes returns the number of nodes not yet reclaimed. At quiescence
// (no concurrent operations) it equals the number of values still on the
// stack.
func (s *Stack[T]) LiveNodes() int {
	count := 0
	s.pins.Range(func(any, any) bool {
		count++
		return true
	})
	return count
}

// acquireRef publishes this reader by bumping the head stamp, then returns
// the bumped head.
func (s *Stack[T]) acquireRef() StampedPtr[stackNode[T]] {
	current := s.head.Load()
	for {
		if current.IsNil() {
			return current
		}
		if s.head.CompareExchange(&current, current.IncrementStamp()) {
			return current.IncrementStamp()
		}
	}
}

// releaseRef adjusts the node's global count; the node is reclaimed when
// the count returns to zero.
func (s *Stack[T]) releaseRef(n *stackNode[T], delta int32) {
	if n.global.Add(delta) == 0 {
		s.pins.Delete(n)
	}
}
