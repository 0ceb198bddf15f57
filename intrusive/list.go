// Package intrusive provides a singly linked list whose links live inside
// the stored values. Containers built on it never allocate on the hot path:
// pushing an item only rewires the node the item already carries.
//
// A type becomes linkable by embedding Node:
//
//	type task struct {
//	    intrusive.Node
//	    // ...
//	}
//
// Each node may belong to at most one container at a time.
package intrusive

// Node is the embeddable link. The zero value is ready to use.
type Node struct {
	next *Node
	item Item
}

// intrusiveNode anchors the Item interface; embedding Node promotes it.
func (n *Node) intrusiveNode() *Node { return n }

// Next returns the node linked after n, or nil.
func (n *Node) Next() *Node { return n.next }

// SetNext links next after n.
func (n *Node) SetNext(next *Node) { n.next = next }

// ResetNext unlinks any node after n.
func (n *Node) ResetNext() { n.next = nil }

// Item is satisfied by any type embedding Node.
type Item interface {
	intrusiveNode() *Node
}

// ItemNode returns item's node, binding the back-reference used to recover
// the item from a node on pop.
func ItemNode(item Item) *Node {
	n := item.intrusiveNode()
	n.item = item
	return n
}

// NodeItem recovers the stored item from a node previously bound via
// ItemNode.
func NodeItem(n *Node) Item { return n.item }

// List is an intrusive forward list. The zero value is an empty list.
type List struct {
	head *Node
	tail *Node
	size int
}

// PushBack appends item to the list.
func (l *List) PushBack(item Item) {
	n := ItemNode(item)
	n.next = nil
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// PushFront prepends item to the list.
func (l *List) PushFront(item Item) {
	n := ItemNode(item)
	n.next = l.head
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.size++
}

// PopFront removes and returns the first item, or nil if the list is empty.
func (l *List) PopFront() Item {
	n := l.head
	if n == nil {
		return nil
	}
	l.head = n.next
	if l.head == nil {
		l.tail = nil
	}
	n.next = nil
	l.size--
	return n.item
}

// Append splices all items of other onto the back of l, leaving other empty.
func (l *List) Append(other *List) {
	if other.head == nil {
		return
	}
	if l.tail == nil {
		l.head = other.head
	} else {
		l.tail.next = other.head
	}
	l.tail = other.tail
	l.size += other.size
	other.head = nil
	other.tail = nil
	other.size = 0
}

// HasItems reports whether the list is non-empty.
func (l *List) HasItems() bool { return l.head != nil }

// IsEmpty reports whether the list is empty.
func (l *List) IsEmpty() bool { return l.head == nil }

// Len returns the number of items in the list.
func (l *List) Len() int { return l.size }
