package intrusive

import (
	"testing"
)

type testItem struct {
	Node
	value int
}

func values(l *List) []int {
	var out []int
	for l.HasItems() {
		out = append(out, l.PopFront().(*testItem).value)
	}
	return out
}

func TestListPushPop(t *testing.T) {
	var l List
	if !l.IsEmpty() || l.HasItems() || l.Len() != 0 {
		t.Fatal(`expected empty list`)
	}

	l.PushBack(&testItem{value: 1})
	l.PushBack(&testItem{value: 2})
	l.PushFront(&testItem{value: 0})

	if l.Len() != 3 {
		t.Fatal(l.Len())
	}
	got := values(&l)
	for i, want := range []int{0, 1, 2} {
		if got[i] != want {
			t.Fatal(got)
		}
	}
	if !l.IsEmpty() {
		t.Fatal(`expected drained list`)
	}
}

func TestListPopEmpty(t *testing.T) {
	var l List
	if l.PopFront() != nil {
		t.Fatal(`expected nil from empty list`)
	}
}

func TestListAppend(t *testing.T) {
	var a, b List
	a.PushBack(&testItem{value: 1})
	b.PushBack(&testItem{value: 2})
	b.PushBack(&testItem{value: 3})

	a.Append(&b)

	if !b.IsEmpty() || b.Len() != 0 {
		t.Fatal(`append should empty the source`)
	}
	got := values(&a)
	for i, want := range []int{1, 2, 3} {
		if got[i] != want {
			t.Fatal(got)
		}
	}

	// appending an empty list is a no-op
	var c List
	a.PushBack(&testItem{value: 9})
	a.Append(&c)
	if a.Len() != 1 {
		t.Fatal(a.Len())
	}
}

func TestNodeReuseAcrossLists(t *testing.T) {
	item := &testItem{value: 5}
	var a, b List
	a.PushBack(item)
	if a.PopFront() != item {
		t.Fatal(`expected same item back`)
	}
	b.PushBack(item)
	if b.PopFront().(*testItem).value != 5 {
		t.Fatal(`expected item to survive requeue`)
	}
}
