package tree

import (
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Order is the order in which a traversal visits the values of a tree
type Order int

const (
	// InOrder visits the left subtree, the node and the right subtree.
	// Values are visited sorted.
	InOrder Order = iota

	// PreOrder visits the node, the left subtree and the right subtree
	PreOrder

	// PostOrder visits the left subtree, the right subtree and the node
	PostOrder
)

func (o Order) String() string {
	switch o {
	case InOrder:
		return "in"
	case PreOrder:
		return "pre"
	case PostOrder:
		return "post"
	default:
		return "unknown"
	}
}

// ParseOrder parses the name of a traversal order. It accepts in, pre
// and post, optionally followed by "order"
func ParseOrder(s string) (Order, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "order") {
	case "in", "":
		return InOrder, nil
	case "pre":
		return PreOrder, nil
	case "post":
		return PostOrder, nil
	default:
		return InOrder, errors.Wrapf(ErrUnknownOrder, "failed to parse %q", s)
	}
}

// Walk calls fn for each value of the tree in the given order until fn
// returns false. An unknown order visits no values.
func (t *Tree[T]) Walk(order Order, fn func(T) bool) {
	switch order {
	case InOrder:
		inOrderWalk(t.root, fn)
	case PreOrder:
		preOrderWalk(t.root, fn)
	case PostOrder:
		postOrderWalk(t.root, fn)
	}
}

// Traverse returns a sequence with the values of the tree in the given
// order. Each iteration walks the tree as it is when the iteration starts.
func (t *Tree[T]) Traverse(order Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		t.Walk(order, yield)
	}
}

// All returns a sequence with the values of the tree sorted
func (t *Tree[T]) All() iter.Seq[T] {
	return t.Traverse(InOrder)
}

// Values returns the values of the tree in the given order
func (t *Tree[T]) Values(order Order) []T {
	values := make([]T, 0, t.len)
	t.Walk(order, func(v T) bool {
		values = append(values, v)
		return true
	})

	return values
}

// The walks below keep the pending nodes in an explicit stack instead
// of recursing, so their depth is not bounded by the call stack.

func inOrderWalk[T any](root *node[T], fn func(T) bool) {
	var stack []*node[T]

	for curr := root; curr != nil || len(stack) > 0; {
		for curr != nil {
			stack = append(stack, curr)
			curr = curr.left
		}

		curr = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(curr.value) {
			return
		}

		curr = curr.right
	}
}

func preOrderWalk[T any](root *node[T], fn func(T) bool) {
	if root == nil {
		return
	}

	stack := []*node[T]{root}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(curr.value) {
			return
		}

		// right goes first so that the left subtree is visited first
		if curr.right != nil {
			stack = append(stack, curr.right)
		}
		if curr.left != nil {
			stack = append(stack, curr.left)
		}
	}
}

func postOrderWalk[T any](root *node[T], fn func(T) bool) {
	var stack []*node[T]
	var last *node[T]

	for curr := root; curr != nil || len(stack) > 0; {
		if curr != nil {
			stack = append(stack, curr)
			curr = curr.left
			continue
		}

		top := stack[len(stack)-1]
		if top.right != nil && top.right != last {
			curr = top.right
			continue
		}

		if !fn(top.value) {
			return
		}

		last = top
		stack = stack[:len(stack)-1]
	}
}
