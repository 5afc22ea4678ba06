package schema

import (
	"math"
	"slices"

	"github.com/reoring/jsonkit"
)

// primitive is the keyword checker selected by a "type" name.
type primitive interface {
	kind() jsonkit.Kind
	accepts(data jsonkit.Value) bool
	validate(r *run, data, schema jsonkit.Value, path string) error
}

var primitives = map[string]primitive{
	"array":   arrayType{},
	"boolean": plainType{k: jsonkit.KindBool},
	"integer": numberType{integer: true},
	"number":  numberType{},
	"null":    plainType{k: jsonkit.KindNull},
	"object":  objectType{},
	"string":  stringType{},
}

func primitiveFor(name string) (primitive, error) {
	p, ok := primitives[name]
	if !ok {
		return nil, malformed("type", "Unknown type %q", name)
	}
	return p, nil
}

// plainType covers boolean and null, which have no keywords of their own.
type plainType struct{ k jsonkit.Kind }

func (t plainType) kind() jsonkit.Kind              { return t.k }
func (t plainType) accepts(data jsonkit.Value) bool { return data.Kind() == t.k }

func (plainType) validate(*run, jsonkit.Value, jsonkit.Value, string) error {
	return nil
}

// count reads a non-negative integer keyword.
func count(schema jsonkit.Value, keyword string) (int, bool, error) {
	v, ok := schema.Lookup(keyword)
	if !ok {
		return 0, false, nil
	}
	if !v.IsNumber() || !v.IsIntegral() || v.Float() < 0 {
		return 0, false, malformed(keyword, "%s must be a non-negative integer, got %s", keyword, v.Dump())
	}
	if v.Float() >= math.MaxInt {
		return math.MaxInt, true, nil
	}
	return int(v.Int()), true, nil
}

// number reads a numeric keyword.
func number(schema jsonkit.Value, keyword string) (jsonkit.Value, bool, error) {
	v, ok := schema.Lookup(keyword)
	if !ok {
		return jsonkit.Value{}, false, nil
	}
	if !v.IsNumber() {
		return jsonkit.Value{}, false, malformed(keyword, "%s must be a number, got %s", keyword, v.Dump())
	}
	return v, true, nil
}

// flag reads a boolean keyword; absent means false.
func flag(schema jsonkit.Value, keyword string) (bool, error) {
	v, ok := schema.Lookup(keyword)
	if !ok {
		return false, nil
	}
	if !v.IsBool() {
		return false, malformed(keyword, "%s must be a boolean, got %s", keyword, v.Dump())
	}
	return v.Bool(), nil
}

// disallows reports whether an additionalItems/additionalProperties value
// forbids extra entries: false, or an empty schema object.
func disallows(v jsonkit.Value) bool {
	switch {
	case v.IsBool():
		return !v.Bool()
	case v.IsObject():
		return v.Len() == 0
	}
	return false
}

// ---- array ----

type arrayType struct{}

func (arrayType) kind() jsonkit.Kind              { return jsonkit.KindArray }
func (arrayType) accepts(data jsonkit.Value) bool { return data.IsArray() }

func (arrayType) validate(r *run, data, schema jsonkit.Value, path string) error {
	if items, ok := schema.Lookup("items"); ok {
		switch {
		case items.IsObject():
			for i, e := range data.Elements() {
				if err := r.validate(e, items, indexPath(path, i)); err != nil {
					return err
				}
			}
		case items.IsArray():
			for i, s := range items.Elements() {
				if i >= data.Len() {
					break
				}
				if err := r.validate(data.At(i), s, indexPath(path, i)); err != nil {
					return err
				}
			}
			if extra, ok := schema.Lookup("additionalItems"); ok && data.Len() > items.Len() && disallows(extra) {
				return invalid("additionalItems", path, "Array %s has additional items not allowed by schema", data.Dump())
			}
		default:
			return malformed("items", "items must be a schema or an array of schemas, got %s", items.Dump())
		}
	}

	if n, ok, err := count(schema, "maxItems"); err != nil {
		return err
	} else if ok && data.Len() > n {
		return invalid("maxItems", path, "Array %s has more than %d items", data.Dump(), n)
	}
	if n, ok, err := count(schema, "minItems"); err != nil {
		return err
	} else if ok && data.Len() < n {
		return invalid("minItems", path, "Array %s has fewer than %d items", data.Dump(), n)
	}

	unique, err := flag(schema, "uniqueItems")
	if err != nil {
		return err
	}
	if unique && !distinct(data.Items()) {
		return invalid("uniqueItems", path, "Array %s does not have unique items", data.Dump())
	}
	return nil
}

// distinct reports whether no two items are equivalent under jsonkit.Compare,
// i.e. the ordered set of the items is as large as the slice.
func distinct(items []jsonkit.Value) bool {
	slices.SortFunc(items, jsonkit.Compare)
	for i := 1; i < len(items); i++ {
		if jsonkit.Compare(items[i-1], items[i]) == 0 {
			return false
		}
	}
	return true
}

// ---- integer / number ----

type numberType struct{ integer bool }

func (numberType) kind() jsonkit.Kind { return jsonkit.KindNumber }

func (t numberType) accepts(data jsonkit.Value) bool {
	if t.integer {
		return data.IsNumber() && data.IsIntegral()
	}
	return data.IsNumber()
}

func (t numberType) validate(r *run, data, schema jsonkit.Value, path string) error {
	if m, ok, err := number(schema, "multipleOf"); err != nil {
		return err
	} else if ok {
		if err := t.multipleOf(data, m, path); err != nil {
			return err
		}
	}
	if err := checkUpper(data, schema, path); err != nil {
		return err
	}
	return checkLower(data, schema, path)
}

// multipleOf uses integer remainder when both operands fit in int64 and
// the divisor is integral; otherwise it falls back to math.Mod.
func (t numberType) multipleOf(data, m jsonkit.Value, path string) error {
	if m.Float() == 0 {
		return malformed("multipleOf", "multipleOf must not be zero, got %s", m.Dump())
	}
	var rem bool
	if t.integer && fitsInt64(data) && fitsInt64(m) && m.IsIntegral() {
		rem = data.Int()%m.Int() != 0
	} else {
		rem = math.Mod(data.Float(), m.Float()) != 0
	}
	if rem {
		return invalid("multipleOf", path, "Value %s is not a multiple of %s", data.Dump(), m.Dump())
	}
	return nil
}

func fitsInt64(v jsonkit.Value) bool {
	f := v.Float()
	return f >= math.MinInt64 && f < math.MaxInt64
}

// checkUpper applies maximum and exclusiveMaximum. A boolean
// exclusiveMaximum modifies maximum (draft 4); a numeric one is a bound of
// its own (draft 6).
func checkUpper(data, schema jsonkit.Value, path string) error {
	x := data.Float()
	exclusive := false
	if ex, ok := schema.Lookup("exclusiveMaximum"); ok {
		switch {
		case ex.IsBool():
			exclusive = ex.Bool()
		case ex.IsNumber():
			if x >= ex.Float() {
				return invalid("exclusiveMaximum", path, "Value %s is greater than or equal to exclusive maximum %s", data.Dump(), ex.Dump())
			}
		default:
			return malformed("exclusiveMaximum", "exclusiveMaximum must be a boolean or a number, got %s", ex.Dump())
		}
	}
	bound, ok, err := number(schema, "maximum")
	if err != nil || !ok {
		return err
	}
	if exclusive && x >= bound.Float() {
		return invalid("maximum", path, "Value %s is greater than or equal to exclusive maximum %s", data.Dump(), bound.Dump())
	}
	if x > bound.Float() {
		return invalid("maximum", path, "Value %s is greater than maximum %s", data.Dump(), bound.Dump())
	}
	return nil
}

// checkLower mirrors checkUpper for minimum and exclusiveMinimum.
func checkLower(data, schema jsonkit.Value, path string) error {
	x := data.Float()
	exclusive := false
	if ex, ok := schema.Lookup("exclusiveMinimum"); ok {
		switch {
		case ex.IsBool():
			exclusive = ex.Bool()
		case ex.IsNumber():
			if x <= ex.Float() {
				return invalid("exclusiveMinimum", path, "Value %s is less than or equal to exclusive minimum %s", data.Dump(), ex.Dump())
			}
		default:
			return malformed("exclusiveMinimum", "exclusiveMinimum must be a boolean or a number, got %s", ex.Dump())
		}
	}
	bound, ok, err := number(schema, "minimum")
	if err != nil || !ok {
		return err
	}
	if exclusive && x <= bound.Float() {
		return invalid("minimum", path, "Value %s is less than or equal to exclusive minimum %s", data.Dump(), bound.Dump())
	}
	if x < bound.Float() {
		return invalid("minimum", path, "Value %s is less than minimum %s", data.Dump(), bound.Dump())
	}
	return nil
}

// ---- string ----

type stringType struct{}

func (stringType) kind() jsonkit.Kind              { return jsonkit.KindString }
func (stringType) accepts(data jsonkit.Value) bool { return data.IsString() }

// Lengths are counted in bytes, not code points.
func (stringType) validate(r *run, data, schema jsonkit.Value, path string) error {
	s := data.Str()
	if n, ok, err := count(schema, "maxLength"); err != nil {
		return err
	} else if ok && len(s) > n {
		return invalid("maxLength", path, "String %s is longer than %d bytes", data.Dump(), n)
	}
	if n, ok, err := count(schema, "minLength"); err != nil {
		return err
	} else if ok && len(s) < n {
		return invalid("minLength", path, "String %s is shorter than %d bytes", data.Dump(), n)
	}
	if p, ok := schema.Lookup("pattern"); ok {
		if !p.IsString() {
			return malformed("pattern", "pattern must be a string, got %s", p.Dump())
		}
		re, err := r.v.patterns.full(p.Str())
		if err != nil {
			return err
		}
		ok, err := re.match(s)
		if err != nil {
			return err
		}
		if !ok {
			return invalid("pattern", path, "String %s does not match pattern %s", data.Dump(), p.Dump())
		}
	}
	return nil
}

// ---- object ----

type objectType struct{}

func (objectType) kind() jsonkit.Kind              { return jsonkit.KindObject }
func (objectType) accepts(data jsonkit.Value) bool { return data.IsObject() }

func (objectType) validate(r *run, data, schema jsonkit.Value, path string) error {
	if n, ok, err := count(schema, "maxProperties"); err != nil {
		return err
	} else if ok && data.Len() > n {
		return invalid("maxProperties", path, "Object %s has more than %d properties", data.Dump(), n)
	}
	if n, ok, err := count(schema, "minProperties"); err != nil {
		return err
	} else if ok && data.Len() < n {
		return invalid("minProperties", path, "Object %s has fewer than %d properties", data.Dump(), n)
	}

	if req, ok := schema.Lookup("required"); ok {
		if !req.IsArray() {
			return malformed("required", "required must be an array, got %s", req.Dump())
		}
		for _, name := range req.Elements() {
			if !name.IsString() {
				return malformed("required", "required entries must be strings, got %s", name.Dump())
			}
			if !data.Has(name.Str()) {
				return invalid("required", path, "Object %s does not have unique property %s", data.Dump(), name.Dump())
			}
		}
	}

	props, hasProps := schema.Lookup("properties")
	if hasProps && !props.IsObject() {
		return malformed("properties", "properties must be an object, got %s", props.Dump())
	}
	for key, sub := range props.All() {
		if v, ok := data.Lookup(key); ok {
			if err := r.validate(v, sub, childPath(path, key)); err != nil {
				return err
			}
		}
	}

	patterns, err := compilePatternProperties(r, schema)
	if err != nil {
		return err
	}
	matched := make(map[string]bool)
	for key, v := range data.All() {
		for _, pp := range patterns {
			ok, err := pp.re.match(key)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			matched[key] = true
			if err := r.validate(v, pp.schema, childPath(path, key)); err != nil {
				return err
			}
		}
	}

	if extra, ok := schema.Lookup("additionalProperties"); ok && disallows(extra) {
		var leftover []jsonkit.Value
		for key := range data.All() {
			if props.Has(key) || matched[key] {
				continue
			}
			leftover = append(leftover, jsonkit.String(key))
		}
		if len(leftover) > 0 {
			return invalid("additionalProperties", path, "Object %s has additional properties not allowed by schema: %s", data.Dump(), jsonkit.Array(leftover...).Dump())
		}
	}
	return nil
}
