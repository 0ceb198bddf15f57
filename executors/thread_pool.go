package executors

import (
	"sync"

	"github.com/asorokovikov/magic-core/concurrency"
	"github.com/asorokovikov/magic-core/internal/local"
	"github.com/asorokovikov/magic-core/intrusive"
)

// currentPool resolves ThreadPool.Current from worker goroutines.
var currentPool local.Local[*ThreadPool]

// ThreadPool executes independent CPU-bound tasks on a fixed set of worker
// goroutines fed from a shared unbounded blocking queue.
//
// Tasks are dequeued in FIFO order; run order across workers is otherwise
// unordered. Stop discards still-queued tasks via their Discard method.
type ThreadPool struct {
	counter concurrency.AtomicCounter
	tasks   *concurrency.BlockingQueue
	workers sync.WaitGroup
}

var _ Executor = (*ThreadPool)(nil)

// NewThreadPool starts a pool with the given number of worker goroutines.
func NewThreadPool(threads int) *ThreadPool {
	if threads <= 0 {
		panic("executors: thread pool needs at least one worker")
	}
	pool := &ThreadPool{
		tasks: concurrency.NewBlockingQueue(),
	}
	pool.startWorkers(threads)
	return pool
}

// Current returns the pool owning the calling worker goroutine, or nil
// when not called from a pool worker.
func Current() *ThreadPool {
	pool, _ := currentPool.Get()
	return pool
}

// Execute submits task to the pool. If the pool has been stopped the task
// is discarded.
func (p *ThreadPool) Execute(task TaskNode) {
	p.counter.Add(1)
	if !p.tasks.Put(task) {
		task.Discard()
		p.counter.Done()
		logDiscardedTask("thread pool stopped")
	}
}

// WaitIdle blocks until the outstanding-work counter reaches zero. It does
// not stop the workers; more work may be submitted afterwards.
func (p *ThreadPool) WaitIdle() {
	p.counter.WaitZero()
}

// Stop closes the queue, discards pending tasks, and joins the workers.
func (p *ThreadPool) Stop() {
	p.tasks.Shutdown(func(item intrusive.Item) {
		item.(TaskNode).Discard()
		p.counter.Done()
	})
	p.workers.Wait()
}

func (p *ThreadPool) startWorkers(count int) {
	p.workers.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer p.workers.Done()
			currentPool.Set(p)
			defer currentPool.Clear()
			p.workerRoutine()
		}()
	}
}

func (p *ThreadPool) workerRoutine() {
	for {
		item := p.tasks.Take()
		if item == nil {
			return
		}
		item.(TaskNode).Run()
		p.counter.Done()
	}
}
