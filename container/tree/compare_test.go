package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type version struct {
	major, minor int
}

func (v version) Compare(other version) int {
	if c := Compare(v.major, other.major); c != 0 {
		return c
	}
	return Compare(v.minor, other.minor)
}

type priority uint8

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare(1, 2))
	assert.Equal(t, 0, Compare("a", "a"))
	assert.Equal(t, 1, Compare(2.5, -1.0))
}

func TestCompareNaN(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, -1, Compare(nan, 1.0))
	assert.Equal(t, 1, Compare(math.Inf(-1), nan))
	assert.Equal(t, 0, Compare(nan, nan))

	cmp := naturalOrder[float32]()
	assert.Equal(t, -1, cmp(float32(nan), float32(math.Inf(-1))))
}

func TestNaturalOrderComparable(t *testing.T) {
	cmp := naturalOrder[version]()
	assert.NotNil(t, cmp)

	assert.Equal(t, -1, cmp(version{1, 2}, version{1, 3}))
	assert.Equal(t, 1, cmp(version{2, 0}, version{1, 9}))
	assert.Equal(t, 0, cmp(version{1, 1}, version{1, 1}))
}

func TestNaturalOrderKinds(t *testing.T) {
	assert.Equal(t, -1, naturalOrder[int8]()(-3, 4))
	assert.Equal(t, 1, naturalOrder[priority]()(200, 3))
	assert.Equal(t, -1, naturalOrder[float32]()(1.5, 2.5))
	assert.Equal(t, 0, naturalOrder[string]()("tree", "tree"))
}

func TestNaturalOrderMissing(t *testing.T) {
	assert.Nil(t, naturalOrder[struct{}]())
	assert.Nil(t, naturalOrder[[]int]())
	assert.Nil(t, naturalOrder[any]())
	assert.Nil(t, naturalOrder[bool]())
}

func TestIsAbsent(t *testing.T) {
	var p *int
	var m map[string]int
	var s []int
	var i any

	assert.True(t, isAbsent(p))
	assert.True(t, isAbsent(m))
	assert.True(t, isAbsent(s))
	assert.True(t, isAbsent(i))

	v := 0
	assert.False(t, isAbsent(&v))
	assert.False(t, isAbsent(0))
	assert.False(t, isAbsent(""))
	assert.False(t, isAbsent(struct{}{}))
}

func TestTreeWithComparableValues(t *testing.T) {
	tree, err := New[version](nil)
	assert.Nil(t, err)

	for _, v := range []version{{1, 4}, {0, 9}, {1, 0}, {2, 1}} {
		assert.Nil(t, tree.Add(v))
	}

	assert.Equal(t, []version{{0, 9}, {1, 0}, {1, 4}, {2, 1}}, tree.Values(InOrder))
}
