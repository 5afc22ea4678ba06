package schema_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/schema"
)

// check validates data against sch and returns the error.
func check(t *testing.T, sch, data string, opts ...schema.Option) error {
	t.Helper()
	return schema.New(opts...).Validate(context.Background(), jsonkit.MustParse(data), jsonkit.MustParse(sch))
}

// checkValue is check for a scalar document.
func checkValue(t *testing.T, sch string, data jsonkit.Value, opts ...schema.Option) error {
	t.Helper()
	return schema.New(opts...).Validate(context.Background(), data, jsonkit.MustParse(sch))
}

func wantValid(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected data to validate, got %v", err)
	}
}

func wantInvalid(t *testing.T, err error, keyword, msg string) *schema.ValidationError {
	t.Helper()
	ve, ok := schema.AsValidationError(err)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if !errors.Is(err, schema.ErrValidation) {
		t.Fatalf("error should match ErrValidation")
	}
	if keyword != "" && ve.Keyword != keyword {
		t.Fatalf("keyword = %q, want %q (%s)", ve.Keyword, keyword, ve.Message)
	}
	if msg != "" && ve.Message != msg {
		t.Fatalf("message = %q\n           want %q", ve.Message, msg)
	}
	return ve
}

func wantMalformed(t *testing.T, err error, msg string) *schema.SchemaError {
	t.Helper()
	se, ok := schema.AsSchemaError(err)
	if !ok {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if !errors.Is(err, schema.ErrMalformedSchema) {
		t.Fatalf("error should match ErrMalformedSchema")
	}
	if msg != "" && se.Message != msg {
		t.Fatalf("message = %q, want %q", se.Message, msg)
	}
	return se
}

func TestValidate_TypeMismatch(t *testing.T) {
	err := schema.Validate(jsonkit.String("true"), jsonkit.MustParse(`{"type": "boolean"}`))
	wantInvalid(t, err, "type", `Invalid type for "true"`)
	if got := err.Error(); got != `JSON validation error: Invalid type for "true"` {
		t.Fatalf("Error() = %q", got)
	}
	wantValid(t, schema.Validate(jsonkit.Bool(true), jsonkit.MustParse(`{"type": "boolean"}`)))
	wantValid(t, schema.Validate(jsonkit.Null(), jsonkit.MustParse(`{"type": "null"}`)))
}

func TestValidate_EmptySchemaAcceptsAnything(t *testing.T) {
	for _, doc := range []string{`[]`, `{"a": [1, {"b": null}]}`} {
		wantValid(t, check(t, `{}`, doc))
	}
	wantValid(t, checkValue(t, `{"description": "anything"}`, jsonkit.Float(2.5)))
}

func TestValidate_SchemaMustBeObject(t *testing.T) {
	err := schema.Validate(jsonkit.Int(1), jsonkit.MustParse(`[true]`))
	wantMalformed(t, err, "Schema must be an object, got [true]")
	if !strings.HasPrefix(err.Error(), "malformed JSON schema: ") {
		t.Fatalf("Error() = %q", err.Error())
	}
	wantMalformed(t, check(t, `{"type": "object", "properties": {"a": 1}}`, `{"a": 2}`), "Schema must be an object, got 1")
}

func TestValidate_TypeUnion(t *testing.T) {
	sch := `{"type": ["string", "null"], "maxLength": 2}`
	wantValid(t, checkValue(t, sch, jsonkit.Null()))
	wantValid(t, checkValue(t, sch, jsonkit.String("ok")))
	wantInvalid(t, checkValue(t, sch, jsonkit.Int(1)), "type", "Invalid type for 1")
	// The candidate matching the data's kind reports its own failure.
	wantInvalid(t, checkValue(t, sch, jsonkit.String("long")), "maxLength", `String "long" is longer than 2 bytes`)

	wantMalformed(t, checkValue(t, `{"type": []}`, jsonkit.Int(1)), "Invalid type []")
	wantMalformed(t, checkValue(t, `{"type": ["string", 3]}`, jsonkit.Int(1)), "Invalid type 3")
}

func TestValidate_UnknownType(t *testing.T) {
	se := wantMalformed(t, checkValue(t, `{"type": "strnig"}`, jsonkit.String("x")), `Unknown type "strnig"`)
	if se.Keyword != "type" {
		t.Fatalf("keyword = %q", se.Keyword)
	}
}

func TestValidate_Combinators(t *testing.T) {
	t.Run("allOf", func(t *testing.T) {
		sch := `{"allOf": [{"type": "number"}, {"type": "number", "minimum": 2}]}`
		wantValid(t, checkValue(t, sch, jsonkit.Int(3)))
		wantInvalid(t, checkValue(t, sch, jsonkit.Int(1)), "allOf", "Data 1 does not validate against all schemas in allOf")
	})
	t.Run("anyOf", func(t *testing.T) {
		sch := `{"anyOf": [{"type": "string"}, {"type": "integer"}]}`
		wantValid(t, checkValue(t, sch, jsonkit.Int(3)))
		wantInvalid(t, checkValue(t, sch, jsonkit.Float(1.5)), "anyOf", "Data 1.5 does not validate against any schema in anyOf")
	})
	t.Run("oneOf is exact", func(t *testing.T) {
		sch := `{"oneOf": [{"type": "integer"}, {"type": "number"}]}`
		wantValid(t, checkValue(t, sch, jsonkit.Float(2.5)))
		wantInvalid(t, checkValue(t, sch, jsonkit.Int(3)), "oneOf", "Data 3 validates against 2 schemas in oneOf, expected exactly one")
		wantInvalid(t, checkValue(t, sch, jsonkit.String("x")), "oneOf", `Data "x" validates against 0 schemas in oneOf, expected exactly one`)
	})
	t.Run("oneOf counts overlapping string schemas", func(t *testing.T) {
		sch := `{"oneOf": [{"type": "string"}, {"type": "string", "maxLength": 11}]}`
		wantInvalid(t, checkValue(t, sch, jsonkit.String("Hello world")), "oneOf",
			`Data "Hello world" validates against 2 schemas in oneOf, expected exactly one`)
		wantValid(t, checkValue(t, sch, jsonkit.String("Hello world!")))
	})
	t.Run("not", func(t *testing.T) {
		sch := `{"not": {"type": "string"}}`
		wantValid(t, checkValue(t, sch, jsonkit.Int(1)))
		wantInvalid(t, checkValue(t, sch, jsonkit.String("s")), "not", `Data "s" validates against schema in not`)
	})
	t.Run("enum uses tolerant equality", func(t *testing.T) {
		sch := `{"enum": [1.00001, "a", [1, 2], {"k": null}]}`
		wantValid(t, checkValue(t, sch, jsonkit.Int(1)))
		wantValid(t, check(t, sch, `{"k": null}`))
		wantInvalid(t, checkValue(t, sch, jsonkit.String("b")), "enum",
			`Data "b" is not one of the enum values [1.0000100000000001, "a", [1, 2], {"k": null}]`)
	})
	t.Run("combinators run before type", func(t *testing.T) {
		sch := `{"type": "integer", "enum": [1, 2]}`
		wantInvalid(t, checkValue(t, sch, jsonkit.Float(1.5)), "enum", "")
		wantInvalid(t, checkValue(t, sch, jsonkit.Int(3)), "enum", "")
	})
	t.Run("malformed", func(t *testing.T) {
		wantMalformed(t, checkValue(t, `{"anyOf": []}`, jsonkit.Int(1)), "anyOf must be a non-empty array, got []")
		wantMalformed(t, checkValue(t, `{"allOf": {}}`, jsonkit.Int(1)), "allOf must be a non-empty array, got {}")
		wantMalformed(t, checkValue(t, `{"enum": 1}`, jsonkit.Int(1)), "enum must be an array, got 1")
		// Schema errors inside a branch are not swallowed as a failed branch.
		wantMalformed(t, checkValue(t, `{"anyOf": [{"type": "bogus"}, {}]}`, jsonkit.Int(1)), `Unknown type "bogus"`)
		wantMalformed(t, checkValue(t, `{"not": {"type": "bogus"}}`, jsonkit.Int(1)), `Unknown type "bogus"`)
	})
}

const tomikoSchema = `{
	"definitions": {
		"tomiko": {
			"type": "object",
			"required": ["name"],
			"properties": {
				"name": {"type": "string"},
				"inner": {"$ref": "#/definitions/tomiko"}
			}
		}
	},
	"$ref": "#/definitions/tomiko"
}`

func TestValidate_RecursiveRef(t *testing.T) {
	wantValid(t, check(t, tomikoSchema, `{"name": "a"}`))
	wantValid(t, check(t, tomikoSchema, `{"name": "a", "inner": {"name": "b", "inner": {"name": "c", "inner": {"name": "d"}}}}`))

	err := check(t, tomikoSchema, `{"name": "a", "inner": {"name": "b", "inner": {"inner": {"name": "d"}}}}`)
	ve := wantInvalid(t, err, "required", `Object {"inner": {"name": "d"}} does not have unique property "name"`)
	if ve.Path != "/inner/inner" {
		t.Fatalf("path = %q", ve.Path)
	}

	ve = wantInvalid(t, check(t, tomikoSchema, `{"name": "a", "inner": {"name": 7}}`), "type", "Invalid type for 7")
	if ve.Path != "/inner/name" {
		t.Fatalf("path = %q", ve.Path)
	}
}

func TestValidate_RefResolution(t *testing.T) {
	sch := `{
		"definitions": {"a/b": {"type": "string"}, "t~": {"type": "integer"}},
		"type": "object",
		"properties": {
			"slash": {"$ref": "#/definitions/a~1b"},
			"tilde": {"$ref": "#/definitions/t~0"}
		}
	}`
	wantValid(t, check(t, sch, `{"slash": "s", "tilde": 1}`))
	wantInvalid(t, check(t, sch, `{"slash": 1}`), "type", "Invalid type for 1")
	wantInvalid(t, check(t, sch, `{"tilde": "s"}`), "type", `Invalid type for "s"`)

	wantMalformed(t, check(t, `{"$ref": "#/definitions/nope"}`, `{}`), `Invalid $ref path "#/definitions/nope"`)
	wantMalformed(t, check(t, `{"$ref": 5}`, `{}`), `Invalid $ref path 5`)

	// "type" takes precedence over "$ref".
	wantValid(t, check(t, `{"type": "array", "$ref": "#/definitions/nope"}`, `[]`))
}

func TestValidate_DepthGuard(t *testing.T) {
	err := check(t, `{"$ref": "#"}`, `{}`)
	se := wantMalformed(t, err, "Exceeded maximum validation depth")
	if se.Keyword != "$ref" {
		t.Fatalf("keyword = %q", se.Keyword)
	}

	deep := `{"name": "a", "inner": {"name": "b", "inner": {"name": "c", "inner": {"name": "d"}}}}`
	wantMalformed(t, check(t, tomikoSchema, deep, schema.WithMaxDepth(5)), "Exceeded maximum validation depth")
	wantValid(t, check(t, tomikoSchema, deep, schema.WithMaxDepth(20)))
}

func TestValidator_ConcurrentUse(t *testing.T) {
	v := schema.New()
	sch := jsonkit.MustParse(`{"type": "object", "patternProperties": {"^n_": {"type": "string", "pattern": "[a-z]+"}}}`)
	good := jsonkit.MustParse(`{"n_1": "abc", "n_2": "xyz"}`)
	bad := jsonkit.MustParse(`{"n_1": "ABC"}`)

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			if err := v.Validate(context.Background(), good, sch); err != nil {
				return err
			}
			if err := v.Validate(context.Background(), bad, sch); !errors.Is(err, schema.ErrValidation) {
				return errors.New("expected validation failure")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
