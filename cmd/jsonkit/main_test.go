package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/reoring/jsonkit"
	"github.com/reoring/jsonkit/i18n"
	"github.com/reoring/jsonkit/schema"
)

func TestLookupPointer(t *testing.T) {
	doc := jsonkit.MustParse(`{"a": {"b/c": [10, {"d~": true}]}, "": {"": 7}}`)
	cases := []struct {
		ptr  string
		want string
		ok   bool
	}{
		{"", doc.Dump(), true},
		{"/", `{"": 7}`, true},
		{"//", "7", true},
		{"a", "", false},
		{"/a/b~1c/0", "10", true},
		{"/a/b~1c/1/d~0", "true", true},
		{"/a/missing", "", false},
		{"/a/b~1c/2", "", false},
		{"/a/b~1c/x", "", false},
		{"/a/b~1c/0/deeper", "", false},
	}
	for _, tc := range cases {
		v, ok := lookupPointer(doc, tc.ptr)
		if ok != tc.ok {
			t.Fatalf("%q: ok = %v", tc.ptr, ok)
		}
		if ok && v.Dump() != tc.want {
			t.Fatalf("%q = %s, want %s", tc.ptr, v.Dump(), tc.want)
		}
	}
}

func TestRender(t *testing.T) {
	v := jsonkit.MustParse(`{"b": [1, 2.5], "a": "x"}`)
	cases := []struct {
		name string
		opts renderOpts
		want string
	}{
		{"canonical", renderOpts{}, `{"a": "x", "b": [1, 2.5]}`},
		{"compact", renderOpts{compact: true}, `{"a":"x","b":[1,2.5]}`},
		{"indent", renderOpts{indent: "\t"}, "{\n\t\"a\": \"x\",\n\t\"b\": [\n\t\t1,\n\t\t2.5\n\t]\n}"},
	}
	for _, tc := range cases {
		got, err := tc.opts.render(v)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	_, perr := jsonkit.Parse(`[`)
	verr := schema.Validate(jsonkit.Int(1), jsonkit.MustParse(`{"type": "string"}`))
	serr := schema.Validate(jsonkit.Int(1), jsonkit.MustParse(`{"type": "bogus"}`))
	cases := map[error]string{
		perr:               i18n.CodeInvalidJSON,
		verr:               i18n.CodeValidationError,
		serr:               i18n.CodeMalformedSchema,
		errors.New("disk"): i18n.CodeIOError,
		os.ErrPermission:   i18n.CodeIOError,
	}
	for err, want := range cases {
		if got := classify(err); got != want {
			t.Errorf("classify(%v) = %s, want %s", err, got, want)
		}
	}
}

func TestValidateFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}
	paths := []string{
		write("ok.json", `{"name": "a"}`),
		write("bad.json", `{"name": 1}`),
		write("broken.json", `{"name":`),
		write("ok.yaml", "name: b\n"),
		filepath.Join(dir, "absent.json"),
	}
	sch := jsonkit.MustParse(`{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`)
	results := validateFiles(context.Background(), schema.New(), sch, paths, 2, func(string, ...any) {})

	want := []string{"", i18n.CodeValidationError, i18n.CodeInvalidJSON, "", i18n.CodeIOError}
	for i, r := range results {
		if r.path != paths[i] {
			t.Fatalf("result %d is for %s, want %s", i, r.path, paths[i])
		}
		got := ""
		if r.err != nil {
			got = classify(r.err)
		}
		if got != want[i] {
			t.Errorf("%s: got %q (%v), want %q", filepath.Base(r.path), got, r.err, want[i])
		}
	}
}

func TestTextDiff_Plain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	d := textDiff("{\"a\":1}\n", "{\"a\": 1}\n")
	if !strings.HasPrefix(d, "@@ ") || !strings.Contains(d, "+%20") {
		t.Fatalf("unexpected patch text:\n%s", d)
	}
	if textDiff("same", "same") != "" {
		t.Fatalf("identical inputs should produce an empty patch")
	}
}
