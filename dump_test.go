package jsonkit_test

import (
	"math"
	"testing"

	"github.com/reoring/jsonkit"
)

func TestDump_Canonical(t *testing.T) {
	cases := []struct {
		name string
		in   jsonkit.Value
		want string
	}{
		{"null", jsonkit.Null(), "null"},
		{"true", jsonkit.Bool(true), "true"},
		{"negative int", jsonkit.Int(-42), "-42"},
		{"exact double", jsonkit.Float(1.5), "1.5"},
		{"integral double", jsonkit.Float(100), "100"},
		{"17 digits", jsonkit.Float(0.1), "0.10000000000000001"},
		{"large double", jsonkit.Float(1e21), "1e+21"},
		{"nan", jsonkit.Float(math.NaN()), "null"},
		{"inf", jsonkit.Float(math.Inf(-1)), "null"},
		{"empty string", jsonkit.String(""), `""`},
		{"escapes", jsonkit.String("q\"b\\n\n\t\r\b\f"), `"q\"b\\n\n\t\r\b\f"`},
		{"control bytes", jsonkit.String("\x01\x1f"), `"\u0001\u001f"`},
		{"line separators", jsonkit.String("a\u2028b\u2029c"), `"a\u2028b\u2029c"`},
		{"non-ascii passes through", jsonkit.String("héllo ☃"), `"héllo ☃"`},
		{"slash not escaped", jsonkit.String("a/b"), `"a/b"`},
		{"empty array", jsonkit.Array(), "[]"},
		{"empty object", jsonkit.Object(nil), "{}"},
		{"array", jsonkit.Array(jsonkit.Int(1), jsonkit.String("a"), jsonkit.Null()), `[1, "a", null]`},
		{"sorted keys", jsonkit.MustParse(`{"b": [true, null], "a": 1}`), `{"a": 1, "b": [true, null]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Dump(); got != tc.want {
				t.Fatalf("Dump() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDump_StringAndMarshalJSONMatch(t *testing.T) {
	v := jsonkit.MustParse(`{"k": [1, 2.5, "x"]}`)
	b, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != v.Dump() || v.String() != v.Dump() {
		t.Fatalf("Dump, String and MarshalJSON should agree: %s / %s / %s", v.Dump(), v.String(), b)
	}
	if got := string(v.AppendDump([]byte("x="))); got != "x="+v.Dump() {
		t.Fatalf("AppendDump = %s", got)
	}
}

func TestIndent(t *testing.T) {
	v := jsonkit.MustParse(`{"b": {}, "a": [1, 2], "c": []}`)
	want := "{\n" +
		"  \"a\": [\n" +
		"    1,\n" +
		"    2\n" +
		"  ],\n" +
		"  \"b\": {},\n" +
		"  \"c\": []\n" +
		"}"
	if got := v.Indent("", "  "); got != want {
		t.Fatalf("Indent:\n%s\nwant:\n%s", got, want)
	}
	if got := jsonkit.String("s").Indent("", "  "); got != `"s"` {
		t.Fatalf("scalar Indent = %s", got)
	}
}
