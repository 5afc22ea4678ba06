package schema

import (
	"github.com/reoring/jsonkit"
)

// schemaList returns the sub-schemas of a combinator keyword, which must be a
// non-empty array.
func schemaList(keyword string, arg jsonkit.Value) ([]jsonkit.Value, error) {
	if !arg.IsArray() || arg.Len() == 0 {
		return nil, malformed(keyword, "%s must be a non-empty array, got %s", keyword, arg.Dump())
	}
	return arg.Items(), nil
}

// countValid reports how many of schemas validate data.
func (r *run) countValid(data jsonkit.Value, schemas []jsonkit.Value, path string) (int, error) {
	n := 0
	for _, s := range schemas {
		ok, err := r.try(data, s, path)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

func (r *run) allOf(data, arg jsonkit.Value, path string) error {
	schemas, err := schemaList("allOf", arg)
	if err != nil {
		return err
	}
	n, err := r.countValid(data, schemas, path)
	if err != nil {
		return err
	}
	if n != len(schemas) {
		return invalid("allOf", path, "Data %s does not validate against all schemas in allOf", data.Dump())
	}
	return nil
}

func (r *run) anyOf(data, arg jsonkit.Value, path string) error {
	schemas, err := schemaList("anyOf", arg)
	if err != nil {
		return err
	}
	for _, s := range schemas {
		ok, err := r.try(data, s, path)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return invalid("anyOf", path, "Data %s does not validate against any schema in anyOf", data.Dump())
}

func (r *run) oneOf(data, arg jsonkit.Value, path string) error {
	schemas, err := schemaList("oneOf", arg)
	if err != nil {
		return err
	}
	n, err := r.countValid(data, schemas, path)
	if err != nil {
		return err
	}
	if n != 1 {
		return invalid("oneOf", path, "Data %s validates against %d schemas in oneOf, expected exactly one", data.Dump(), n)
	}
	return nil
}

func (r *run) not(data, arg jsonkit.Value, path string) error {
	ok, err := r.try(data, arg, path)
	if err != nil {
		return err
	}
	if ok {
		return invalid("not", path, "Data %s validates against schema in not", data.Dump())
	}
	return nil
}

func (r *run) enum(data, arg jsonkit.Value, path string) error {
	if !arg.IsArray() {
		return malformed("enum", "enum must be an array, got %s", arg.Dump())
	}
	for _, candidate := range arg.Elements() {
		if jsonkit.Equal(data, candidate) {
			return nil
		}
	}
	return invalid("enum", path, "Data %s is not one of the enum values %s", data.Dump(), arg.Dump())
}
