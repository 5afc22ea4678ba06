package schema

import (
	"sync"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/reoring/jsonkit"
)

// patternCache compiles each ECMAScript regular expression once per
// Validator. Entries are keyed by keyword and source so "pattern" (full
// match) and "patternProperties" (search) never share a compiled program.
type patternCache struct {
	m sync.Map // string -> *compiledPattern
}

func newPatternCache() *patternCache { return &patternCache{} }

// compiledPattern is a regexp2 program in ECMAScript mode. full patterns
// are anchored at both ends; "$" would also accept a trailing newline, so
// the end anchor is a lookahead for no remaining input.
type compiledPattern struct {
	re      *regexp2.Regexp
	full    bool
	keyword string
	source  string
}

func (c *patternCache) compile(src, keyword, pattern string, full bool) (*compiledPattern, error) {
	key := keyword + "\x00" + src
	if v, ok := c.m.Load(key); ok {
		return v.(*compiledPattern), nil
	}
	re, err := regexp2.Compile(src, regexp2.ECMAScript)
	if err != nil {
		return nil, &SchemaError{Keyword: keyword, Message: "Invalid regular expression " + jsonkit.String(pattern).Dump(), Cause: err}
	}
	v, _ := c.m.LoadOrStore(key, &compiledPattern{re: re, full: full, keyword: keyword, source: pattern})
	return v.(*compiledPattern), nil
}

// full returns a pattern that must match the whole input.
func (c *patternCache) full(pattern string) (*compiledPattern, error) {
	return c.compile(`^(?:`+pattern+`)(?![\s\S])`, "pattern", pattern, true)
}

// search returns a pattern that may match anywhere in the input.
func (c *patternCache) search(pattern string) (*compiledPattern, error) {
	return c.compile(pattern, "patternProperties", pattern, false)
}

// match reports whether s matches. Match indexes are counted in runes.
func (p *compiledPattern) match(s string) (bool, error) {
	m, err := p.re.FindStringMatch(s)
	if err != nil {
		return false, &SchemaError{Keyword: p.keyword, Message: "Cannot evaluate regular expression " + jsonkit.String(p.source).Dump(), Cause: err}
	}
	if m == nil {
		return false, nil
	}
	if !p.full {
		return true, nil
	}
	return m.Index == 0 && m.Length == utf8.RuneCountInString(s), nil
}

type patternProperty struct {
	re     *compiledPattern
	schema jsonkit.Value
}

// compilePatternProperties returns the patternProperties of schema in key
// order.
func compilePatternProperties(r *run, schema jsonkit.Value) ([]patternProperty, error) {
	pp, ok := schema.Lookup("patternProperties")
	if !ok {
		return nil, nil
	}
	if !pp.IsObject() {
		return nil, malformed("patternProperties", "patternProperties must be an object, got %s", pp.Dump())
	}
	out := make([]patternProperty, 0, pp.Len())
	for pattern, sub := range pp.All() {
		re, err := r.v.patterns.search(pattern)
		if err != nil {
			return nil, err
		}
		out = append(out, patternProperty{re: re, schema: sub})
	}
	return out, nil
}
