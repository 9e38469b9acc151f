package tree

import (
	"context"

	"github.com/lopatinaanna/binarytree/logs"
	"github.com/pkg/errors"
)

// EventKind identifies the structural change that triggered an event
type EventKind int

const (
	// ElementAdded is fired after a value is inserted
	ElementAdded EventKind = iota

	// ElementRemoved is fired after a value is removed
	ElementRemoved
)

func (k EventKind) String() string {
	switch k {
	case ElementAdded:
		return "element added"
	case ElementRemoved:
		return "element removed"
	default:
		return "unknown"
	}
}

// Event describes a change in the tree
type Event[T any] struct {
	Kind EventKind

	// Value is the value inserted, or the value requested for removal
	Value T

	// Tag is a human-readable description of the change
	Tag string
}

// Log implementation of logs.Loggable
func (e Event[T]) Log(fields logs.Fields) {
	fields.Add("event", e.Tag)
	fields.Add("value", e.Value)
}

// Observer is notified synchronously of changes in a tree. The change
// has already been applied when Observe is called, so a returned error
// does not roll it back. The error is returned to the caller that
// performed the change.
type Observer[T any] interface {
	Observe(e Event[T]) error
}

// ObserverFunc allows functions to act as an Observer
type ObserverFunc[T any] func(e Event[T]) error

// Observe is the implementation of Observer for ObserverFunc
func (f ObserverFunc[T]) Observe(e Event[T]) error {
	return f(e)
}

// LogObserver returns an observer that writes every event to the logger
// at debug level
func LogObserver[T any](logger logs.Logger) ObserverFunc[T] {
	return func(e Event[T]) error {
		logger.Debug(context.Background(), "tree changed", e)
		return nil
	}
}

type observers[T any] []Observer[T]

// notify calls the observers in registration order and stops at the
// first one that fails
func (o observers[T]) notify(kind EventKind, v T) error {
	e := Event[T]{Kind: kind, Value: v, Tag: kind.String()}
	for i, observer := range o {
		if err := observer.Observe(e); err != nil {
			return errors.Wrapf(err, "observer %d failed on %s", i, e.Tag)
		}
	}

	return nil
}
