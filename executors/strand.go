package executors

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/asorokovikov/magic-core/intrusive"
	"github.com/asorokovikov/magic-core/lockfree"
)

// Strand is a serial executor (asynchronous mutex) layered over another
// executor. Tasks submitted to a strand run in submission order with no
// two running concurrently, yet the strand never occupies an upstream
// worker while its inbox is empty.
//
// The strand is itself a task node: when the inbox transitions from empty
// to non-empty it submits itself to the upstream executor, drains the
// inbox as one batch, and resubmits only if more work arrived during the
// batch. At most one batch is in flight at any time.
type Strand struct {
	intrusive.Node

	executor Executor
	tasks    lockfree.MPSCQueue

	_       cpu.CacheLinePad
	counter atomic.Int64
	_       cpu.CacheLinePad
}

var _ Executor = (*Strand)(nil)
var _ TaskNode = (*Strand)(nil)

// NewStrand returns a serial executor over executor.
func NewStrand(executor Executor) *Strand {
	return &Strand{executor: executor}
}

// Executor returns the upstream executor the strand batches onto.
func (s *Strand) Executor() Executor {
	return s.executor
}

// Execute enqueues task into the strand's inbox. The first task of an
// empty inbox schedules a batch on the upstream executor.
func (s *Strand) Execute(task TaskNode) {
	s.tasks.Put(task)
	if s.counter.Add(1) == 1 {
		s.runNextBatch()
	}
}

// Run drains the inbox and runs the batch in FIFO order. Implements the
// task contract for the upstream executor.
func (s *Strand) Run() {
	completed := int64(0)
	items := s.tasks.TakeAll()

	for items.HasItems() {
		items.PopFront().(TaskNode).Run()
		completed++
	}

	if s.counter.Add(-completed) > 0 {
		s.runNextBatch()
	}
}

// Discard drains the inbox and discards every pending task. Called by the
// upstream executor when it shuts down with the batch still queued.
func (s *Strand) Discard() {
	items := s.tasks.TakeAll()
	for items.HasItems() {
		items.PopFront().(TaskNode).Discard()
	}
}

func (s *Strand) runNextBatch() {
	s.executor.Execute(s)
}
