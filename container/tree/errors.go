package tree

import errs "github.com/lopatinaanna/binarytree/errors"

var (
	// ErrNoOrdering is returned when creating a tree for a type that has
	// no natural order without providing a compare function
	ErrNoOrdering = errs.New(errs.CodeConfiguration,
		"type has no natural order and no compare function was provided")

	// ErrAbsentItem is returned when adding a nil value to the tree
	ErrAbsentItem = errs.New(errs.CodeInvalidArgument, "cannot add an absent item to the tree")

	// ErrEmptyTree is returned when querying the extremes of a tree
	// with no elements
	ErrEmptyTree = errs.New(errs.CodeEmptyContainer, "tree is empty")

	// ErrUnknownOrder is returned when parsing a traversal order that
	// does not exist
	ErrUnknownOrder = errs.New(errs.CodeInvalidArgument, "unknown traversal order")
)
