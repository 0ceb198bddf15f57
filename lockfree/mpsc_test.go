package lockfree

import (
	"sync"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/asorokovikov/magic-core/intrusive"
)

type queueItem struct {
	intrusive.Node
	value int
}

func TestMPSCStackLIFO(t *testing.T) {
	var s MPSCStack
	if !s.IsEmpty() || s.HasItems() {
		t.Fatal(`expected empty stack`)
	}

	for i := 0; i < 3; i++ {
		s.Push(&queueItem{value: i})
	}

	var got []int
	s.ConsumeAll(func(item intrusive.Item) {
		got = append(got, item.(*queueItem).value)
	})
	for i, want := range []int{2, 1, 0} {
		if got[i] != want {
			t.Fatal(got)
		}
	}
	if !s.IsEmpty() {
		t.Fatal(`expected drained stack`)
	}
}

func TestMPSCQueueFIFO(t *testing.T) {
	var q MPSCQueue
	for i := 0; i < 5; i++ {
		q.Put(&queueItem{value: i})
	}

	items := q.TakeAll()
	if items.Len() != 5 {
		t.Fatal(items.Len())
	}
	for i := 0; i < 5; i++ {
		if items.PopFront().(*queueItem).value != i {
			t.Fatal(`expected FIFO order`)
		}
	}
	if !q.IsEmpty() {
		t.Fatal(`expected drained queue`)
	}
}

func TestMPSCQueueConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 1000

	var q MPSCQueue
	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Put(&queueItem{value: base + i})
			}
		}(p * perProducer)
	}
	wg.Wait()

	var got []int
	for {
		items := q.TakeAll()
		if items.IsEmpty() {
			break
		}
		for items.HasItems() {
			got = append(got, items.PopFront().(*queueItem).value)
		}
	}

	if len(got) != producers*perProducer {
		t.Fatal(len(got))
	}
	slices.Sort(got)
	for i, v := range got {
		if v != i {
			t.Fatalf(`missing or duplicated value at %d: %d`, i, v)
		}
	}
}
