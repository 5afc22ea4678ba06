package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError via errors.Is.
	ErrValidation = errors.New("JSON validation error")
	// ErrMalformedSchema is matched by every *SchemaError via errors.Is.
	ErrMalformedSchema = errors.New("malformed JSON schema")
)

// ValidationError reports the first constraint the data violated.
type ValidationError struct {
	Keyword string // Schema keyword that failed, e.g. "required".
	Path    string // JSON Pointer of the offending data location ("" for the root).
	Message string
}

func (e *ValidationError) Error() string { return "JSON validation error: " + e.Message }

// Is makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// SchemaError reports a schema that cannot be applied: an unknown type or
// format name, a bad regular expression, an unresolvable $ref and the like.
// It is independent of the data being validated.
type SchemaError struct {
	Keyword string
	Message string
	Cause   error // Optional: underlying error.
}

func (e *SchemaError) Error() string { return "malformed JSON schema: " + e.Message }

// Is makes errors.Is(err, ErrMalformedSchema) hold.
func (e *SchemaError) Is(target error) bool { return target == ErrMalformedSchema }

func (e *SchemaError) Unwrap() error { return e.Cause }

// AsValidationError extracts a *ValidationError from err using errors.As.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsSchemaError extracts a *SchemaError from err using errors.As.
func AsSchemaError(err error) (*SchemaError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func invalid(keyword, path, format string, args ...any) error {
	return &ValidationError{Keyword: keyword, Path: path, Message: fmt.Sprintf(format, args...)}
}

func malformed(keyword, format string, args ...any) error {
	return &SchemaError{Keyword: keyword, Message: fmt.Sprintf(format, args...)}
}
