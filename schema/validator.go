package schema

import (
	"context"
	"errors"
	"maps"
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/reoring/jsonkit"
)

// DefaultMaxDepth bounds nested validate frames in one run. Recursive $ref
// definitions that do not consume data hit this limit instead of the host
// stack limit.
const DefaultMaxDepth = 1000

// Validator checks data against JSON-Schema (draft-4 era) documents. It holds
// no per-run state and is safe for concurrent use.
type Validator struct {
	resolver Resolver
	maxDepth int
	formats  map[string]Format
	patterns *patternCache
}

// Option configures a Validator.
type Option func(*Validator)

// WithResolver sets the resolver used by the "hostname" format.
func WithResolver(r Resolver) Option {
	return func(v *Validator) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxDepth = n
		}
	}
}

// WithFormat registers or replaces a semantic format.
func WithFormat(name string, f Format) Option {
	return func(v *Validator) { v.formats[name] = f }
}

// New returns a Validator with the built-in formats and net.DefaultResolver.
func New(opts ...Option) *Validator {
	v := &Validator{
		resolver: net.DefaultResolver,
		maxDepth: DefaultMaxDepth,
		formats:  make(map[string]Format),
		patterns: newPatternCache(),
	}
	for _, o := range opts {
		o(v)
	}
	builtin := builtinFormats(v.resolver)
	for name, f := range builtin {
		if _, overridden := v.formats[name]; !overridden {
			v.formats[name] = f
		}
	}
	return v
}

// Formats returns the sorted names of the registered semantic formats.
func (v *Validator) Formats() []string {
	return slices.Sorted(maps.Keys(v.formats))
}

var defaultValidator = New()

// Validate checks data against schema with a default Validator and a
// background context.
func Validate(data, schema jsonkit.Value) error {
	return defaultValidator.Validate(context.Background(), data, schema)
}

// Validate checks data against schema. It returns nil on success, a
// *ValidationError for the first violated constraint, or a *SchemaError when
// the schema itself cannot be applied. ctx is only consulted by formats that
// perform I/O.
func (v *Validator) Validate(ctx context.Context, data, schema jsonkit.Value) error {
	if !schema.IsObject() {
		return malformed("", "Schema must be an object, got %s", schema.Dump())
	}
	r := &run{ctx: ctx, v: v, root: schema}
	return r.validate(data, schema, "")
}

// run carries the state of one Validate call. root is the top-level schema
// and is never modified; $ref paths resolve against it.
type run struct {
	ctx   context.Context
	v     *Validator
	root  jsonkit.Value
	refs  map[string]jsonkit.Value
	depth int
}

// combinatorKeywords are checked independently of "type" and "$ref"; every
// one that is present must pass.
var combinatorKeywords = []string{"allOf", "anyOf", "oneOf", "not", "enum"}

func (r *run) combinator(keyword string, data, arg jsonkit.Value, path string) error {
	switch keyword {
	case "allOf":
		return r.allOf(data, arg, path)
	case "anyOf":
		return r.anyOf(data, arg, path)
	case "oneOf":
		return r.oneOf(data, arg, path)
	case "not":
		return r.not(data, arg, path)
	case "enum":
		return r.enum(data, arg, path)
	}
	return nil
}

func (r *run) validate(data, schema jsonkit.Value, path string) error {
	if !schema.IsObject() {
		return malformed("", "Schema must be an object, got %s", schema.Dump())
	}
	r.depth++
	defer func() { r.depth-- }()
	if r.depth > r.v.maxDepth {
		return malformed("$ref", "Exceeded maximum validation depth")
	}

	for _, kw := range combinatorKeywords {
		if arg, ok := schema.Lookup(kw); ok {
			if err := r.combinator(kw, data, arg, path); err != nil {
				return err
			}
		}
	}

	if t, ok := schema.Lookup("type"); ok {
		return r.validateType(data, schema, t, path)
	}
	if ref, ok := schema.Lookup("$ref"); ok {
		target, err := r.resolveRef(ref)
		if err != nil {
			return err
		}
		return r.validate(data, target, path)
	}
	return nil
}

// try runs a nested validation and reports whether it passed. Validation
// failures become false; schema errors are returned.
func (r *run) try(data, schema jsonkit.Value, path string) (bool, error) {
	err := r.validate(data, schema, path)
	if err == nil {
		return true, nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false, nil
	}
	return false, err
}

func (r *run) validateType(data, schema, t jsonkit.Value, path string) error {
	if t.IsString() {
		p, err := primitiveFor(t.Str())
		if err != nil {
			return err
		}
		return r.checkPrimitive(p, data, schema, path)
	}
	if !t.IsArray() || t.Len() == 0 {
		return malformed("type", "Invalid type %s", t.Dump())
	}
	// Union of types: the first candidate of the data's own kind decides the
	// reported error.
	var kindErr error
	for _, name := range t.Elements() {
		if !name.IsString() {
			return malformed("type", "Invalid type %s", name.Dump())
		}
		p, err := primitiveFor(name.Str())
		if err != nil {
			return err
		}
		err = r.checkPrimitive(p, data, schema, path)
		if err == nil {
			return nil
		}
		if _, ok := AsSchemaError(err); ok {
			return err
		}
		if kindErr == nil && p.kind() == data.Kind() {
			kindErr = err
		}
	}
	if kindErr != nil {
		return kindErr
	}
	return invalid("type", path, "Invalid type for %s", data.Dump())
}

// checkPrimitive applies the shared type and format checks, then the
// primitive's own keywords.
func (r *run) checkPrimitive(p primitive, data, schema jsonkit.Value, path string) error {
	if !p.accepts(data) {
		return invalid("type", path, "Invalid type for %s", data.Dump())
	}
	if f, ok := schema.Lookup("format"); ok {
		if err := r.checkFormat(f, data, path); err != nil {
			return err
		}
	}
	return p.validate(r, data, schema, path)
}

// childPath appends a JSON Pointer reference token to path.
func childPath(path, token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return path + "/" + token
}

func indexPath(path string, i int) string { return path + "/" + strconv.Itoa(i) }
