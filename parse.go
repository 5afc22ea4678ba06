package jsonkit

import (
	"strconv"
)

// DefaultMaxDepth is the container nesting limit applied by Parse.
const DefaultMaxDepth = 200

// intFastPathDigits bounds the length of a number token (sign included) that
// is decoded as an integer rather than a float.
const intFastPathDigits = 9

// Parse parses text as a JSON document. The top-level value must be an array
// or an object. Failures are reported as *SyntaxError carrying the first
// diagnostic encountered.
func Parse(text string) (Value, error) {
	p := NewParser(text)
	v := p.Parse()
	if err := p.Err(); err != nil {
		return Value{}, err
	}
	return v, nil
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(b []byte) (Value, error) { return Parse(string(b)) }

// MustParse is like Parse but panics on error. It is meant for literals in
// tests and package-level variables.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithMaxDepth overrides the container nesting limit. Values below 1 are
// ignored.
func WithMaxDepth(n int) ParserOption {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// AllowScalar accepts a bare scalar as the top-level value.
func AllowScalar() ParserOption { return func(p *Parser) { p.allowScalar = true } }

// Parser is a single-use recursive-descent JSON parser. It exposes the
// failure state directly for callers that prefer inspecting it over handling
// an error value.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	str         string
	i           int
	failed      bool
	msg         string
	errAt       int
	maxDepth    int
	allowScalar bool
	done        bool
}

// NewParser returns a Parser over text.
func NewParser(text string, opts ...ParserOption) *Parser {
	p := &Parser{str: text, maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse runs the parser once and returns the document. After a failure the
// returned Value is null and Failed reports true. Calling Parse again returns
// null without re-parsing.
func (p *Parser) Parse() Value {
	if p.done {
		return Value{}
	}
	p.done = true
	result := p.parseValue(0)
	p.skipWhitespace()
	if p.failed {
		return Value{}
	}
	if p.i != len(p.str) {
		return p.fail("Unexpected trailing " + describeByte(p.str[p.i]))
	}
	if !p.allowScalar {
		if k := result.Kind(); k != KindArray && k != KindObject {
			return p.fail("Invalid JSON. Expecting [ or {")
		}
	}
	return result
}

// Failed reports whether parsing failed.
func (p *Parser) Failed() bool { return p.failed }

// Message returns the first failure message, or "" when parsing succeeded.
func (p *Parser) Message() string { return p.msg }

// Err returns the failure as a *SyntaxError, or nil.
func (p *Parser) Err() error {
	if !p.failed {
		return nil
	}
	return &SyntaxError{Msg: p.msg, Offset: p.errAt}
}

// fail records msg unless a failure was already recorded. It returns the null
// placeholder so callers can write "return p.fail(...)".
func (p *Parser) fail(msg string) Value {
	if !p.failed {
		p.msg = msg
		p.errAt = p.i
	}
	p.failed = true
	return Value{}
}

// at returns the byte at i, or 0 past the end of input.
func (p *Parser) at(i int) byte {
	if i < len(p.str) {
		return p.str[i]
	}
	return 0
}

func (p *Parser) skipWhitespace() {
	for p.i < len(p.str) {
		switch p.str[p.i] {
		case ' ', '\t', '\r', '\n':
			p.i++
		default:
			return
		}
	}
}

// nextToken skips whitespace and consumes one byte. At end of input it fails
// and returns 0.
func (p *Parser) nextToken() byte {
	p.skipWhitespace()
	if p.failed {
		return 0
	}
	if p.i == len(p.str) {
		p.fail("Unexpected end of input")
		return 0
	}
	c := p.str[p.i]
	p.i++
	return c
}

// parseValue parses one value. depth is the number of containers enclosing
// it.
func (p *Parser) parseValue(depth int) Value {
	if p.failed {
		return Value{}
	}
	ch := p.nextToken()
	if p.failed {
		return Value{}
	}

	switch {
	case ch == '-' || (ch >= '0' && ch <= '9'):
		p.i--
		return p.parseNumber()
	case ch == 't':
		return p.expect("true", Bool(true))
	case ch == 'f':
		return p.expect("false", Bool(false))
	case ch == 'n':
		return p.expect("null", Value{})
	case ch == '"':
		s, ok := p.parseString()
		if !ok {
			return Value{}
		}
		return String(s)
	case ch == '{':
		if depth >= p.maxDepth {
			return p.fail("Exceeded maximum nesting depth")
		}
		return p.parseObject(depth)
	case ch == '[':
		if depth >= p.maxDepth {
			return p.fail("Exceeded maximum nesting depth")
		}
		return p.parseArray(depth)
	}
	return p.fail("Expected value, got " + describeByte(ch))
}

func (p *Parser) parseObject(depth int) Value {
	members := make(map[string]Value)
	ch := p.nextToken()
	if ch == '}' {
		return Object(members)
	}
	for {
		if p.failed {
			return Value{}
		}
		if ch != '"' {
			return p.fail(`Expected '"' in object, got ` + describeByte(ch))
		}
		key, ok := p.parseString()
		if !ok {
			return Value{}
		}
		ch = p.nextToken()
		if p.failed {
			return Value{}
		}
		if ch != ':' {
			return p.fail("Expected ':' in object, got " + describeByte(ch))
		}
		members[key] = p.parseValue(depth + 1)
		if p.failed {
			return Value{}
		}
		ch = p.nextToken()
		if p.failed {
			return Value{}
		}
		if ch == '}' {
			break
		}
		if ch != ',' {
			return p.fail("Expected ',' in object, got " + describeByte(ch))
		}
		ch = p.nextToken()
	}
	return Object(members)
}

func (p *Parser) parseArray(depth int) Value {
	var items []Value
	p.skipWhitespace()
	if p.at(p.i) == ']' {
		p.i++
		return arrayOwned(nil)
	}
	for {
		items = append(items, p.parseValue(depth+1))
		if p.failed {
			return Value{}
		}
		ch := p.nextToken()
		if p.failed {
			return Value{}
		}
		if ch == ']' {
			break
		}
		if ch != ',' {
			return p.fail("Expected ',' in list, got " + describeByte(ch))
		}
	}
	return arrayOwned(items)
}

// expect consumes the remainder of a literal whose first byte has already
// been read.
func (p *Parser) expect(lit string, res Value) Value {
	p.i--
	end := p.i + len(lit)
	if end > len(p.str) {
		end = len(p.str)
	}
	if got := p.str[p.i:end]; got != lit {
		return p.fail("Parse error: expected " + lit + ", got " + got)
	}
	p.i = end
	return res
}

func inRange(c, lo, hi int) bool { return c >= lo && c <= hi }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *Parser) parseNumber() Value {
	start := p.i
	if p.at(p.i) == '-' {
		p.i++
	}

	// Integer part.
	switch c := p.at(p.i); {
	case c == '0':
		p.i++
		if isDigit(p.at(p.i)) {
			return p.fail("Leading 0s not permitted in numbers")
		}
	case c >= '1' && c <= '9':
		p.i++
		for isDigit(p.at(p.i)) {
			p.i++
		}
	default:
		return p.fail("Invalid " + describeByte(c) + " in number")
	}

	if c := p.at(p.i); c != '.' && c != 'e' && c != 'E' && p.i-start <= intFastPathDigits {
		n, err := strconv.ParseInt(p.str[start:p.i], 10, 64)
		if err == nil {
			return Int(n)
		}
	}

	// Fractional part.
	if p.at(p.i) == '.' {
		p.i++
		if !isDigit(p.at(p.i)) {
			return p.fail("At least one digit required in fractional part")
		}
		for isDigit(p.at(p.i)) {
			p.i++
		}
	}

	// Exponent.
	if c := p.at(p.i); c == 'e' || c == 'E' {
		p.i++
		if c := p.at(p.i); c == '+' || c == '-' {
			p.i++
		}
		if !isDigit(p.at(p.i)) {
			return p.fail("At least one digit required in exponent")
		}
		for isDigit(p.at(p.i)) {
			p.i++
		}
	}

	// Out-of-range magnitudes saturate to ±Inf like strtod; the grammar has
	// already been checked, so the error is not a syntax error.
	f, _ := strconv.ParseFloat(p.str[start:p.i], 64)
	return Float(f)
}

// parseString parses a string body; the opening quote has been consumed.
func (p *Parser) parseString() (string, bool) {
	var out []byte
	lastEscaped := -1
	for {
		if p.i == len(p.str) {
			p.fail("Unexpected end of input in string")
			return "", false
		}
		ch := p.str[p.i]
		p.i++

		if ch == '"' {
			out = appendCodepoint(out, lastEscaped)
			return string(out), true
		}
		if ch < 0x20 {
			p.fail("Unescaped " + describeByte(ch) + " in string")
			return "", false
		}
		if ch != '\\' {
			out = appendCodepoint(out, lastEscaped)
			lastEscaped = -1
			out = append(out, ch)
			continue
		}

		if p.i == len(p.str) {
			p.fail("Unexpected end of input in string")
			return "", false
		}
		ch = p.str[p.i]
		p.i++

		if ch == 'u' {
			end := min(p.i+4, len(p.str))
			esc := p.str[p.i:end]
			cp, ok := parseHex4(esc)
			if !ok {
				p.fail(`Bad \u escape: ` + esc)
				return "", false
			}
			if inRange(lastEscaped, 0xD800, 0xDBFF) && inRange(cp, 0xDC00, 0xDFFF) {
				out = appendCodepoint(out, (((lastEscaped - 0xD800) << 10) | (cp - 0xDC00)) + 0x10000)
				lastEscaped = -1
			} else {
				out = appendCodepoint(out, lastEscaped)
				lastEscaped = cp
			}
			p.i += 4
			continue
		}

		out = appendCodepoint(out, lastEscaped)
		lastEscaped = -1

		switch ch {
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '"', '\\', '/':
			out = append(out, ch)
		default:
			p.fail("Invalid escape character " + describeByte(ch))
			return "", false
		}
	}
}

func parseHex4(s string) (int, bool) {
	if len(s) < 4 {
		return 0, false
	}
	n := 0
	for i := 0; i < 4; i++ {
		c := s[i]
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		n = n<<4 | int(d)
	}
	return n, true
}

// appendCodepoint UTF-8 encodes cp onto out. Negative values are a no-op.
// Lone surrogates are encoded as three-byte sequences rather than replaced,
// which utf8.AppendRune would do.
func appendCodepoint(out []byte, cp int) []byte {
	switch {
	case cp < 0:
		return out
	case cp < 0x80:
		return append(out, byte(cp))
	case cp < 0x800:
		return append(out, byte(cp>>6|0xC0), byte(cp&0x3F|0x80))
	case cp < 0x10000:
		return append(out, byte(cp>>12|0xE0), byte(cp>>6&0x3F|0x80), byte(cp&0x3F|0x80))
	default:
		return append(out, byte(cp>>18|0xF0), byte(cp>>12&0x3F|0x80), byte(cp>>6&0x3F|0x80), byte(cp&0x3F|0x80))
	}
}
