package jsonkit

import (
	"iter"
	"math"
	"slices"
	"sort"
)

// Kind identifies the variant held by a Value. The declaration order is also
// the cross-kind ordering used by Less.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindString
	KindArray
	KindObject
)

// String returns the JSON-Schema type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable JSON datum. The zero Value is null.
//
// Values are cheap to copy: containers share their children, so slicing a
// sub-tree out of a document (for example schema.Get("properties").Get("age"))
// never copies the tree.
type Value struct {
	v node
}

// node is the closed set of variants. Only the types in this file implement it.
type node interface {
	kind() Kind
}

type numberNode struct {
	f     float64
	i     int64
	isInt bool
}

type boolNode bool

type stringNode string

type arrayNode []Value

// objectNode keeps keys sorted; vals holds the members.
type objectNode struct {
	keys []string
	vals map[string]Value
}

func (numberNode) kind() Kind  { return KindNumber }
func (boolNode) kind() Kind    { return KindBool }
func (stringNode) kind() Kind  { return KindString }
func (arrayNode) kind() Kind   { return KindArray }
func (*objectNode) kind() Kind { return KindObject }

var (
	trueValue  = Value{v: boolNode(true)}
	falseValue = Value{v: boolNode(false)}
	emptyArray = Value{v: arrayNode(nil)}
	emptyObj   = Value{v: &objectNode{vals: map[string]Value{}}}
)

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Int returns an integer-backed number.
func Int(i int64) Value { return Value{v: numberNode{f: float64(i), i: i, isInt: true}} }

// Float returns a double-backed number.
func Float(f float64) Value { return Value{v: numberNode{f: f}} }

// Bool returns a boolean value. The two results are shared singletons.
func Bool(b bool) Value {
	if b {
		return trueValue
	}
	return falseValue
}

// String returns a string value holding s as-is.
func String(s string) Value { return Value{v: stringNode(s)} }

// Array returns an array of the given items. The slice is copied.
func Array(items ...Value) Value {
	if len(items) == 0 {
		return emptyArray
	}
	return Value{v: arrayNode(slices.Clone(items))}
}

// Object returns an object with the members of m.
func Object(m map[string]Value) Value {
	if len(m) == 0 {
		return emptyObj
	}
	o := &objectNode{keys: make([]string, 0, len(m)), vals: make(map[string]Value, len(m))}
	for k, v := range m {
		o.keys = append(o.keys, k)
		o.vals[k] = v
	}
	sort.Strings(o.keys)
	return Value{v: o}
}

// ObjectFromPairs builds an object from pairs. On duplicate keys the last
// pair wins.
func ObjectFromPairs(pairs ...Member) Value {
	if len(pairs) == 0 {
		return emptyObj
	}
	m := make(map[string]Value, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return Object(m)
}

// arrayOwned wraps items without copying; callers must not retain items.
func arrayOwned(items []Value) Value {
	if len(items) == 0 {
		return emptyArray
	}
	return Value{v: arrayNode(items)}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind {
	if v.v == nil {
		return KindNull
	}
	return v.v.kind()
}

func (v Value) IsNull() bool   { return v.Kind() == KindNull }
func (v Value) IsNumber() bool { return v.Kind() == KindNumber }
func (v Value) IsBool() bool   { return v.Kind() == KindBool }
func (v Value) IsString() bool { return v.Kind() == KindString }
func (v Value) IsArray() bool  { return v.Kind() == KindArray }
func (v Value) IsObject() bool { return v.Kind() == KindObject }

// Float returns the number as a float64, or 0 for non-numbers.
func (v Value) Float() float64 {
	if n, ok := v.v.(numberNode); ok {
		return n.f
	}
	return 0
}

// Int returns the number as an int64, truncating toward zero. Non-numbers
// yield 0.
func (v Value) Int() int64 {
	n, ok := v.v.(numberNode)
	if !ok {
		return 0
	}
	if n.isInt {
		return n.i
	}
	if math.IsNaN(n.f) {
		return 0
	}
	return int64(n.f)
}

// Bool returns the boolean, or false for non-booleans.
func (v Value) Bool() bool {
	b, _ := v.v.(boolNode)
	return bool(b)
}

// Str returns the string contents, or "" for non-strings.
func (v Value) Str() string {
	s, _ := v.v.(stringNode)
	return string(s)
}

// Len returns the number of array items or object members; 0 otherwise.
func (v Value) Len() int {
	switch n := v.v.(type) {
	case arrayNode:
		return len(n)
	case *objectNode:
		return len(n.keys)
	}
	return 0
}

// Items returns a copy of the array items (nil for non-arrays).
func (v Value) Items() []Value {
	if a, ok := v.v.(arrayNode); ok {
		return slices.Clone([]Value(a))
	}
	return nil
}

// Keys returns the object keys in sorted order (nil for non-objects).
func (v Value) Keys() []string {
	if o, ok := v.v.(*objectNode); ok {
		return slices.Clone(o.keys)
	}
	return nil
}

// Members returns a copy of the object members as a map.
func (v Value) Members() map[string]Value {
	o, ok := v.v.(*objectNode)
	if !ok {
		return nil
	}
	m := make(map[string]Value, len(o.vals))
	for k, x := range o.vals {
		m[k] = x
	}
	return m
}

// All iterates over object members in key order.
func (v Value) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		o, ok := v.v.(*objectNode)
		if !ok {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}

// Elements iterates over array items in order.
func (v Value) Elements() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		a, ok := v.v.(arrayNode)
		if !ok {
			return
		}
		for i, x := range a {
			if !yield(i, x) {
				return
			}
		}
	}
}

// At returns the i-th array item, or null when v is not an array or i is out
// of range.
func (v Value) At(i int) Value {
	a, ok := v.v.(arrayNode)
	if !ok || i < 0 || i >= len(a) {
		return Value{}
	}
	return a[i]
}

// Get returns the member named key, or null when absent.
func (v Value) Get(key string) Value {
	x, _ := v.Lookup(key)
	return x
}

// Lookup returns the member named key and whether it is present.
func (v Value) Lookup(key string) (Value, bool) {
	o, ok := v.v.(*objectNode)
	if !ok {
		return Value{}, false
	}
	x, ok := o.vals[key]
	return x, ok
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// isIntegral reports whether the number has no fractional part.
func (v Value) isIntegral() bool {
	n, ok := v.v.(numberNode)
	if !ok {
		return false
	}
	return n.isInt || (!math.IsInf(n.f, 0) && n.f == math.Trunc(n.f))
}

// IsIntegral reports whether v is a number without a fractional part.
func (v Value) IsIntegral() bool { return v.isIntegral() }
