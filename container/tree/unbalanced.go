package tree

// The algorithms below insert and delete nodes preserving the Binary
// Search Tree properties but without applying any balancing strategy.
// How balanced the branches of the tree are depends exclusively on the
// order of the insert and delete operations performed on the tree.
//
// Nodes are reached through the slot that owns them, either the root
// of the tree or the left or right field of their parent, so that no
// parent pointers are needed. Both algorithms are iterative, which keeps
// the call stack flat on skewed trees.

// insert attaches n as a leaf. Values lower than a node go to its left,
// the rest, duplicates included, go to its right.
func (t *Tree[T]) insert(n *node[T]) {
	slot := &t.root

	for *slot != nil {
		if t.cmp(n.value, (*slot).value) < 0 {
			slot = &(*slot).left
		} else {
			slot = &(*slot).right
		}
	}

	*slot = n
}

// find returns the slot that owns the first node holding a value equal
// to v, or nil if there is none
func (t *Tree[T]) find(v T) **node[T] {
	slot := &t.root

	for *slot != nil {
		c := t.cmp(v, (*slot).value)
		switch {
		case c == 0:
			return slot
		case c < 0:
			slot = &(*slot).left
		default:
			slot = &(*slot).right
		}
	}

	return nil
}

// delete unlinks the node owned by slot. A node with two children is not
// unlinked, it takes the value of its in-order successor and the
// successor, which has no left child, is unlinked instead.
func (t *Tree[T]) delete(slot **node[T]) {
	n := *slot

	switch {
	case n.left == nil:
		*slot = n.right
	case n.right == nil:
		*slot = n.left
	default:
		succ := minSlot(&n.right)
		n.value = (*succ).value
		*succ = (*succ).right
	}
}

// minSlot returns the slot of the node with the lowest value in the
// subtree owned by slot
func minSlot[T any](slot **node[T]) **node[T] {
	for (*slot).left != nil {
		slot = &(*slot).left
	}

	return slot
}
