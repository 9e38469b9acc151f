// Package tree implements an in-memory, unbalanced binary search tree
// of ordered values.
//
// A Tree is meant to be owned by a single goroutine. None of its methods
// are safe for concurrent use, and callers that share a tree need to
// provide their own synchronization. Modifying a tree while one of its
// traversals is being consumed gives unspecified results.
package tree

import (
	"golang.org/x/exp/constraints"
)

// node of a tree. A node is owned by its parent, or by the tree in the
// case of the root, and it is never shared.
type node[T any] struct {
	value T
	left  *node[T]
	right *node[T]
}

// min returns the node in the subtree of the lowest order
func (n *node[T]) min() *node[T] {
	curr := n
	for curr.left != nil {
		curr = curr.left
	}

	return curr
}

// max returns the node in the subtree of the highest order
func (n *node[T]) max() *node[T] {
	curr := n
	for curr.right != nil {
		curr = curr.right
	}

	return curr
}

// Tree represents a binary search tree. The zero value is an empty tree
// that uses the natural order of T, see New.
type Tree[T any] struct {
	root    *node[T]
	cmp     CompareFunc[T]
	len     int
	added   observers[T]
	removed observers[T]
}

// New creates a tree ordered by cmp. If cmp is nil the natural order
// of T is used, and ErrNoOrdering is returned if T has none.
func New[T any](cmp CompareFunc[T]) (*Tree[T], error) {
	if cmp == nil {
		cmp = naturalOrder[T]()
	}

	if cmp == nil {
		return nil, ErrNoOrdering
	}

	return &Tree[T]{cmp: cmp}, nil
}

// NewOrdered creates a tree for a builtin ordered type
func NewOrdered[T constraints.Ordered]() *Tree[T] {
	return &Tree[T]{cmp: Compare[T]}
}

// OnAdded registers an observer called after each successful Add
func (t *Tree[T]) OnAdded(o Observer[T]) {
	t.added = append(t.added, o)
}

// OnRemoved registers an observer called after each successful Remove
func (t *Tree[T]) OnRemoved(o Observer[T]) {
	t.removed = append(t.removed, o)
}

// Len returns the number of values in the tree
func (t *Tree[T]) Len() int {
	return t.len
}

// Empty returns true if the tree has no values
func (t *Tree[T]) Empty() bool {
	return t.root == nil
}

// Add inserts v into the tree. Values equal to one already in the tree
// are kept alongside it. An error is returned without modifying the tree
// if v is nil; an error returned by an observer is returned after v has
// been inserted.
func (t *Tree[T]) Add(v T) error {
	if isAbsent(v) {
		return ErrAbsentItem
	}

	// only a zero value tree gets here without an order, and until its
	// first value is added no other operation compares values
	if t.cmp == nil {
		if t.cmp = naturalOrder[T](); t.cmp == nil {
			return ErrNoOrdering
		}
	}

	t.insert(&node[T]{value: v})
	t.len++

	return t.added.notify(ElementAdded, v)
}

// Contains returns true if the tree contains at least one value
// equal to v
func (t *Tree[T]) Contains(v T) bool {
	if isAbsent(v) {
		return false
	}

	return t.find(v) != nil
}

// Remove deletes one value equal to v from the tree. It returns false
// if there is no such value. An error returned by an observer is
// returned after the value has been deleted.
func (t *Tree[T]) Remove(v T) (bool, error) {
	if isAbsent(v) {
		return false, nil
	}

	slot := t.find(v)
	if slot == nil {
		return false, nil
	}

	t.delete(slot)
	t.len--

	return true, t.removed.notify(ElementRemoved, v)
}

// Min returns the lowest value in the tree
func (t *Tree[T]) Min() (T, error) {
	if t.root == nil {
		var zero T
		return zero, ErrEmptyTree
	}

	return t.root.min().value, nil
}

// Max returns the highest value in the tree
func (t *Tree[T]) Max() (T, error) {
	if t.root == nil {
		var zero T
		return zero, ErrEmptyTree
	}

	return t.root.max().value, nil
}

// Higher returns the lowest value in the tree that is
// higher than or equal to v
func (t *Tree[T]) Higher(v T) (res T, ok bool) {
	if isAbsent(v) {
		return res, false
	}

	for curr := t.root; curr != nil; {
		if t.cmp(v, curr.value) <= 0 {
			res, ok = curr.value, true
			curr = curr.left
		} else {
			curr = curr.right
		}
	}

	return res, ok
}

// Lower returns the highest value in the tree that is
// lower than or equal to v
func (t *Tree[T]) Lower(v T) (res T, ok bool) {
	if isAbsent(v) {
		return res, false
	}

	for curr := t.root; curr != nil; {
		if t.cmp(v, curr.value) < 0 {
			curr = curr.left
		} else {
			res, ok = curr.value, true
			curr = curr.right
		}
	}

	return res, ok
}

// Occurrences returns the number of values in the tree equal to v
func (t *Tree[T]) Occurrences(v T) (count int) {
	if isAbsent(v) {
		return 0
	}

	// every value equal to v was inserted following the same path, so
	// they all lie on the path v would follow
	for curr := t.root; curr != nil; {
		c := t.cmp(v, curr.value)
		if c < 0 {
			curr = curr.left
			continue
		}

		if c == 0 {
			count++
		}
		curr = curr.right
	}

	return count
}

// Height returns the number of nodes in the longest path from
// the root to a leaf
func (t *Tree[T]) Height() int {
	if t.root == nil {
		return 0
	}

	height := 0
	level := []*node[T]{t.root}
	for len(level) > 0 {
		height++

		var next []*node[T]
		for _, n := range level {
			if n.left != nil {
				next = append(next, n.left)
			}
			if n.right != nil {
				next = append(next, n.right)
			}
		}
		level = next
	}

	return height
}

// Clear removes all values from the tree without notifying observers
func (t *Tree[T]) Clear() {
	t.root = nil
	t.len = 0
}
