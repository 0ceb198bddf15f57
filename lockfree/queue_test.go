package lockfree

import (
	"sync"
	"testing"

	"golang.org/x/exp/slices"
)

func TestQueueFIFO(t *testing.T) {
	var q Queue[int]
	if !q.IsEmpty() {
		t.Fatal(`expected empty queue`)
	}

	for i := 0; i < 5; i++ {
		q.Put(i)
	}
	for i := 0; i < 5; i++ {
		v, ok := q.TryTake()
		if !ok || v != i {
			t.Fatal(v, ok)
		}
	}
	if _, ok := q.TryTake(); ok {
		t.Fatal(`expected drained queue`)
	}
}

func TestQueueTakeAll(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 4; i++ {
		q.Put(i)
	}
	got := q.TakeAll()
	for i, want := range []int{0, 1, 2, 3} {
		if got[i] != want {
			t.Fatal(got)
		}
	}
	if !q.IsEmpty() {
		t.Fatal(`expected drained queue`)
	}
}

func TestQueueInterleaved(t *testing.T) {
	var q Queue[int]
	q.Put(1)
	q.Put(2)
	if v, _ := q.TryTake(); v != 1 {
		t.Fatal(v)
	}
	q.Put(3)
	if v, _ := q.TryTake(); v != 2 {
		t.Fatal(v)
	}
	if v, _ := q.TryTake(); v != 3 {
		t.Fatal(v)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	const producers = 4
	const perProducer = 500

	var q Queue[int]
	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Put(base + i)
			}
		}(p * perProducer)
	}
	wg.Wait()

	got := q.TakeAll()
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
