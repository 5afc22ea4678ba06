// Package jsonkit provides:
//
// - An immutable JSON value model (Value) with tolerant numeric equality and a total ordering
// - A recursive-descent parser with positioned, first-failure diagnostics (Parse, Parser)
// - A canonical serializer with sorted keys and round-trip float formatting (Dump, AppendDump)
// - Conversions from Go values and YAML documents (From, FromYAML)
// - A pull-based byte Source abstraction for bulk input (BytesSource, ReaderSource, OpenFileSource)
//
// Schema validation lives in the schema subpackage.
//
// Design policy:
// - Keep only public APIs in the root package.
// - Values never change after construction; containers share children instead of copying.
// - Errors are typed (*SyntaxError, *ConversionError) and returned, never panicked, except by Must* helpers.
//
// Typical usage:
//
//	v, err := jsonkit.Parse(`{"k1":"v1","k3":["a",123,true,false,null]}`)
//	n := v.Get("k3").At(1).Float() // 123
//	s := v.Get("k3").Dump()        // ["a", 123, true, false, null]
package jsonkit
