package jsonkit

import (
	"math"
	"strconv"
)

const hexDigits = "0123456789abcdef"

// Dump returns the canonical JSON text of v: sorted object keys, ", "
// separators, integers in decimal and doubles with 17 significant digits.
func (v Value) Dump() string { return string(v.AppendDump(nil)) }

// String implements fmt.Stringer and is identical to Dump.
func (v Value) String() string { return v.Dump() }

// AppendDump appends the canonical JSON text of v to dst.
func (v Value) AppendDump(dst []byte) []byte {
	switch n := v.v.(type) {
	case nil:
		return append(dst, "null"...)
	case numberNode:
		return appendNumber(dst, n)
	case boolNode:
		if n {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case stringNode:
		return appendQuoted(dst, string(n))
	case arrayNode:
		dst = append(dst, '[')
		for i, x := range n {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = x.AppendDump(dst)
		}
		return append(dst, ']')
	case *objectNode:
		dst = append(dst, '{')
		for i, k := range n.keys {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = appendQuoted(dst, k)
			dst = append(dst, ": "...)
			dst = n.vals[k].AppendDump(dst)
		}
		return append(dst, '}')
	}
	return dst
}

func appendNumber(dst []byte, n numberNode) []byte {
	if n.isInt {
		return strconv.AppendInt(dst, n.i, 10)
	}
	if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
		return append(dst, "null"...)
	}
	return strconv.AppendFloat(dst, n.f, 'g', 17, 64)
}

// appendQuoted writes s as a JSON string literal. Bytes other than the
// escaped set pass through unchanged, so invalid UTF-8 is preserved.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			dst = append(dst, `\\`...)
		case '"':
			dst = append(dst, `\"`...)
		case '\b':
			dst = append(dst, `\b`...)
		case '\f':
			dst = append(dst, `\f`...)
		case '\n':
			dst = append(dst, `\n`...)
		case '\r':
			dst = append(dst, `\r`...)
		case '\t':
			dst = append(dst, `\t`...)
		default:
			switch {
			case c < 0x20:
				dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
			case c == 0xe2 && i+2 < len(s) && s[i+1] == 0x80 && s[i+2] == 0xa8:
				dst = append(dst, "\\u2028"...)
				i += 2
			case c == 0xe2 && i+2 < len(s) && s[i+1] == 0x80 && s[i+2] == 0xa9:
				dst = append(dst, "\\u2029"...)
				i += 2
			default:
				dst = append(dst, c)
			}
		}
	}
	return append(dst, '"')
}

// Indent renders v across multiple lines. Each nested level is prefixed with
// prefix followed by one copy of indent per depth. Scalars and strings are
// rendered exactly as in Dump.
func (v Value) Indent(prefix, indent string) string {
	return string(v.appendIndent(nil, prefix, indent, 0))
}

func (v Value) appendIndent(dst []byte, prefix, indent string, depth int) []byte {
	newline := func(dst []byte, d int) []byte {
		dst = append(dst, '\n')
		dst = append(dst, prefix...)
		for i := 0; i < d; i++ {
			dst = append(dst, indent...)
		}
		return dst
	}
	switch n := v.v.(type) {
	case arrayNode:
		if len(n) == 0 {
			return append(dst, "[]"...)
		}
		dst = append(dst, '[')
		for i, x := range n {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = newline(dst, depth+1)
			dst = x.appendIndent(dst, prefix, indent, depth+1)
		}
		dst = newline(dst, depth)
		return append(dst, ']')
	case *objectNode:
		if len(n.keys) == 0 {
			return append(dst, "{}"...)
		}
		dst = append(dst, '{')
		for i, k := range n.keys {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = newline(dst, depth+1)
			dst = appendQuoted(dst, k)
			dst = append(dst, ": "...)
			dst = n.vals[k].appendIndent(dst, prefix, indent, depth+1)
		}
		dst = newline(dst, depth)
		return append(dst, '}')
	}
	return v.AppendDump(dst)
}
