package jsonkit

import (
	"errors"
	"fmt"
)

// ErrInvalidJSON is matched by every *SyntaxError via errors.Is.
var ErrInvalidJSON = errors.New("invalid JSON")

// SyntaxError describes the first syntactic failure found while parsing.
type SyntaxError struct {
	Msg    string // Diagnostic, e.g. "Expected value, got ']' (93)".
	Offset int    // Byte offset in the input where parsing stopped.
}

func (e *SyntaxError) Error() string { return "invalid JSON: " + e.Msg }

// Is makes errors.Is(err, ErrInvalidJSON) hold.
func (e *SyntaxError) Is(target error) bool { return target == ErrInvalidJSON }

// AsSyntaxError extracts a *SyntaxError from err using errors.As.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	if err == nil {
		return nil, false
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// ConversionError reports a Go value that has no JSON representation.
type ConversionError struct {
	Type  string
	Cause error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("jsonkit: cannot convert %s to JSON: %v", e.Type, e.Cause)
	}
	return fmt.Sprintf("jsonkit: cannot convert %s to JSON", e.Type)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// describeByte renders c for diagnostics: 'c' (n) when printable, (n)
// otherwise.
func describeByte(c byte) string {
	if c >= 0x20 && c <= 0x7f {
		return fmt.Sprintf("'%c' (%d)", c, c)
	}
	return fmt.Sprintf("(%d)", c)
}
