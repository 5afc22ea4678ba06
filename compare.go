package jsonkit

import (
	"cmp"
	"math"
)

// NumberTolerance is the absolute difference below which two numbers are
// considered equal by Equal.
const NumberTolerance = 1e-4

// FloatEqual reports whether a and b differ by less than NumberTolerance.
func FloatEqual(a, b float64) bool { return math.Abs(a-b) < NumberTolerance }

// Equal reports whether a and b hold the same JSON datum. Numbers compare
// with FloatEqual regardless of their integer or double backing.
//
// Note that Equal is not consistent with Less for numbers: Less compares
// exactly, so Equal(a, b) may hold while Less(a, b) is also true.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.v.(type) {
	case nil:
		return true
	case numberNode:
		return FloatEqual(x.f, b.v.(numberNode).f)
	case boolNode:
		return x == b.v.(boolNode)
	case stringNode:
		return x == b.v.(stringNode)
	case arrayNode:
		y := b.v.(arrayNode)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *objectNode:
		y := b.v.(*objectNode)
		if x == y {
			return true
		}
		if len(x.keys) != len(y.keys) {
			return false
		}
		for i, k := range x.keys {
			if y.keys[i] != k || !Equal(x.vals[k], y.vals[k]) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal is shorthand for Equal(v, o).
func (v Value) Equal(o Value) bool { return Equal(v, o) }

// Less orders values first by Kind, then by their natural order: numbers by
// exact float comparison, false before true, strings bytewise, arrays and
// objects lexicographically (objects as sorted key/value pairs).
func Less(a, b Value) bool { return Compare(a, b) < 0 }

// Compare returns -1, 0 or +1 following the order of Less. A result of 0 means
// neither value is Less than the other; it does not imply Equal.
func Compare(a, b Value) int {
	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch x := a.v.(type) {
	case nil:
		return 0
	case numberNode:
		y := b.v.(numberNode)
		switch {
		case x.f < y.f:
			return -1
		case y.f < x.f:
			return 1
		}
		return 0
	case boolNode:
		y := b.v.(boolNode)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case stringNode:
		return cmp.Compare(x, b.v.(stringNode))
	case arrayNode:
		y := b.v.(arrayNode)
		for i := 0; i < len(x) && i < len(y); i++ {
			if c := Compare(x[i], y[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x), len(y))
	case *objectNode:
		y := b.v.(*objectNode)
		for i := 0; i < len(x.keys) && i < len(y.keys); i++ {
			if c := cmp.Compare(x.keys[i], y.keys[i]); c != 0 {
				return c
			}
			if c := Compare(x.vals[x.keys[i]], y.vals[y.keys[i]]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(x.keys), len(y.keys))
	}
	return 0
}
