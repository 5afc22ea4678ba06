package jsonkit

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// JSONer is implemented by types that know their own JSON representation.
type JSONer interface {
	ToJSON() Value
}

// From converts a Go value into a Value.
//
// Supported inputs are nil, Value, JSONer, booleans, strings, all integer and
// float kinds, json.Number, slices and arrays of convertible elements, and
// maps whose key kind is string. Anything else (structs, types implementing
// json.Marshaler) is marshaled with go-json and parsed back.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Value{}, nil
		}
		return *t, nil
	case JSONer:
		return t.ToJSON(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return fromNumberText(string(t))
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			v, err := From(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return arrayOwned(items), nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := From(e)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Object(m), nil
	}
	return fromReflect(reflect.ValueOf(x))
}

// MustFrom is like From but panics on error.
func MustFrom(x any) Value {
	v, err := From(x)
	if err != nil {
		panic(err)
	}
	return v
}

// FromSlice converts each element of xs with From and returns an array.
func FromSlice[T any](xs []T) (Value, error) {
	items := make([]Value, len(xs))
	for i, x := range xs {
		v, err := From(x)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return arrayOwned(items), nil
}

// FromMap converts each value of m with From and returns an object.
func FromMap[K ~string, V any](m map[K]V) (Value, error) {
	out := make(map[string]Value, len(m))
	for k, x := range m {
		v, err := From(x)
		if err != nil {
			return Value{}, err
		}
		out[string(k)] = v
	}
	return Object(out), nil
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

func fromNumberText(s string) (Value, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, &ConversionError{Type: "number " + strconv.Quote(s), Cause: err}
	}
	return Float(f), nil
}

var marshalerType = reflect.TypeFor[json.Marshaler]()

func fromReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return Value{}, nil
	}
	t := rv.Type()
	if t.Implements(marshalerType) {
		return fromMarshal(rv)
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Value{}, nil
		}
		return From(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Value{}, nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			// []byte keeps its encoding/json (base64) representation.
			return fromMarshal(rv)
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			v, err := From(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return arrayOwned(items), nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Value{}, &ConversionError{Type: t.String(), Cause: fmt.Errorf("map key kind %s is not string", t.Key().Kind())}
		}
		if rv.IsNil() {
			return Value{}, nil
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			v, err := From(iter.Value().Interface())
			if err != nil {
				return Value{}, err
			}
			m[iter.Key().String()] = v
		}
		return Object(m), nil
	case reflect.Struct:
		return fromMarshal(rv)
	}
	return Value{}, &ConversionError{Type: t.String()}
}

func fromMarshal(rv reflect.Value) (Value, error) {
	b, err := gojson.Marshal(rv.Interface())
	if err != nil {
		return Value{}, &ConversionError{Type: rv.Type().String(), Cause: err}
	}
	p := NewParser(string(b), AllowScalar())
	v := p.Parse()
	if err := p.Err(); err != nil {
		return Value{}, &ConversionError{Type: rv.Type().String(), Cause: err}
	}
	return v, nil
}

// ToAny converts v to plain Go values: nil, int64 or float64, bool, string,
// []any and map[string]any.
func (v Value) ToAny() any {
	switch n := v.v.(type) {
	case numberNode:
		if n.isInt {
			return n.i
		}
		return n.f
	case boolNode:
		return bool(n)
	case stringNode:
		return string(n)
	case arrayNode:
		out := make([]any, len(n))
		for i, x := range n {
			out[i] = x.ToAny()
		}
		return out
	case *objectNode:
		out := make(map[string]any, len(n.keys))
		for k, x := range n.vals {
			out[k] = x.ToAny()
		}
		return out
	}
	return nil
}

// MarshalJSON implements json.Marshaler with the canonical Dump form.
func (v Value) MarshalJSON() ([]byte, error) { return v.AppendDump(nil), nil }

// UnmarshalJSON implements json.Unmarshaler. Unlike Parse it accepts a bare
// scalar.
func (v *Value) UnmarshalJSON(b []byte) error {
	p := NewParser(string(b), AllowScalar())
	x := p.Parse()
	if err := p.Err(); err != nil {
		return err
	}
	*v = x
	return nil
}
