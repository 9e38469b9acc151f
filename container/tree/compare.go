package tree

import (
	"cmp"
	"reflect"

	"golang.org/x/exp/constraints"
)

// CompareFunc defines a total order over T. It returns
//
//	-1 if a < b
//	 0 if a == b
//	 1 if a > b
//
// Any negative or positive value is accepted in place of -1 and 1.
type CompareFunc[T any] func(a, b T) int

// Comparable is implemented by types that carry their own natural order,
// time.Time being one of them
type Comparable[T any] interface {
	Compare(other T) int
}

// Compare is the natural order of the builtin ordered types. NaN is
// lower than any other float and equal to itself.
func Compare[T constraints.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

// naturalOrder returns the comparer for T when T is ordered by itself,
// either by implementing Comparable or by having an ordered kind. It
// returns nil when T has no natural order.
func naturalOrder[T any]() CompareFunc[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Implements(reflect.TypeOf((*Comparable[T])(nil)).Elem()) {
		return func(a, b T) int {
			return any(a).(Comparable[T]).Compare(b)
		}
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b T) int {
			return Compare(reflect.ValueOf(a).Int(), reflect.ValueOf(b).Int())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b T) int {
			return Compare(reflect.ValueOf(a).Uint(), reflect.ValueOf(b).Uint())
		}
	case reflect.Float32, reflect.Float64:
		return func(a, b T) int {
			return Compare(reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float())
		}
	case reflect.String:
		return func(a, b T) int {
			return Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
		}
	default:
		return nil
	}
}

// isAbsent reports whether v is the nil value of a nilable kind
func isAbsent[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
