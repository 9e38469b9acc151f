package tree

import (
	"bytes"
	stderr "errors"
	"testing"

	"github.com/lopatinaanna/binarytree/logs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []Event[int]
}

func (r *recorder) Observe(e Event[int]) error {
	r.events = append(r.events, e)
	return nil
}

func TestObserverAdded(t *testing.T) {
	tree := NewOrdered[int]()
	rec := &recorder{}
	tree.OnAdded(rec)

	assert.Nil(t, tree.Add(5))
	assert.Nil(t, tree.Add(3))

	assert.Equal(t, []Event[int]{
		{Kind: ElementAdded, Value: 5, Tag: "element added"},
		{Kind: ElementAdded, Value: 3, Tag: "element added"},
	}, rec.events)
}

func TestObserverRemoved(t *testing.T) {
	tree := newTree(5, 3, 8)
	rec := &recorder{}
	tree.OnRemoved(rec)

	removed, err := tree.Remove(3)
	assert.True(t, removed)
	assert.Nil(t, err)

	removed, err = tree.Remove(42)
	assert.False(t, removed)
	assert.Nil(t, err)

	assert.Equal(t, []Event[int]{
		{Kind: ElementRemoved, Value: 3, Tag: "element removed"},
	}, rec.events)
}

func TestObserverRemovedCarriesRequestedValue(t *testing.T) {
	// 2 and 3 are equal under this order, the node holding 2 is removed
	tree, err := New(func(a, b int) int { return Compare(a/2, b/2) })
	assert.Nil(t, err)
	assert.Nil(t, tree.Add(2))

	rec := &recorder{}
	tree.OnRemoved(rec)

	removed, err := tree.Remove(3)
	assert.True(t, removed)
	assert.Nil(t, err)
	assert.Equal(t, 3, rec.events[0].Value)
	assert.True(t, tree.Empty())
}

func TestObserverRegistrationOrder(t *testing.T) {
	tree := NewOrdered[int]()
	var calls []string

	tree.OnAdded(ObserverFunc[int](func(Event[int]) error {
		calls = append(calls, "first")
		return nil
	}))
	tree.OnAdded(ObserverFunc[int](func(Event[int]) error {
		calls = append(calls, "second")
		return nil
	}))

	assert.Nil(t, tree.Add(1))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestObserverFailurePropagates(t *testing.T) {
	tree := NewOrdered[int]()
	failure := stderr.New("observer failed")
	called := false

	tree.OnAdded(ObserverFunc[int](func(Event[int]) error {
		return failure
	}))
	tree.OnAdded(ObserverFunc[int](func(Event[int]) error {
		called = true
		return nil
	}))
	tree.OnRemoved(ObserverFunc[int](func(Event[int]) error {
		return failure
	}))

	err := tree.Add(1)
	assert.ErrorIs(t, err, failure)
	assert.False(t, called)
	// the mutation is committed before observers run
	assert.True(t, tree.Contains(1))
	assert.Equal(t, 1, tree.Len())

	removed, err := tree.Remove(1)
	assert.True(t, removed)
	assert.ErrorIs(t, err, failure)
	assert.True(t, tree.Empty())
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := logs.NewLogrus(logs.LogrusLoggerProperties{
		Level:  logrus.DebugLevel,
		Output: &buf,
	})

	tree := NewOrdered[int]()
	tree.OnAdded(LogObserver[int](logger))

	assert.Nil(t, tree.Add(7))
	assert.Contains(t, buf.String(), "element added")
	assert.Contains(t, buf.String(), "value=7")
}

func TestEventLog(t *testing.T) {
	fields := logs.MapFields{}
	Event[int]{Kind: ElementRemoved, Value: 4, Tag: ElementRemoved.String()}.Log(fields)

	assert.Equal(t, "element removed", fields["event"])
	assert.Equal(t, 4, fields["value"])
}
