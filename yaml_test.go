package jsonkit_test

import (
	"strings"
	"testing"

	"github.com/reoring/jsonkit"
)

func TestFromYAML(t *testing.T) {
	src := `
name: widget
count: 3
ratio: 0.5
enabled: yes
missing: ~
big: 12345678901234567890
tags: [a, "1", 2]
when: 2024-01-02
base: &base
  x: 1
  y: 2
derived:
  <<: *base
  y: 3
`
	v, err := jsonkit.FromYAML([]byte(src))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	want := jsonkit.MustParse(`{
		"name": "widget",
		"count": 3,
		"ratio": 0.5,
		"enabled": "yes",
		"missing": null,
		"big": 12345678901234567890,
		"tags": ["a", "1", 2],
		"when": "2024-01-02",
		"base": {"x": 1, "y": 2},
		"derived": {"x": 1, "y": 3}
	}`)
	if !jsonkit.Equal(v, want) {
		t.Fatalf("got  %s\nwant %s", v, want)
	}
}

func TestFromYAML_EmptyDocumentIsNull(t *testing.T) {
	v, err := jsonkit.FromYAML(nil)
	if err != nil || !v.IsNull() {
		t.Fatalf("got %s, %v", v, err)
	}
}

func TestFromYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"non-string key": "1: a\n",
		"syntax":         "a: [1, 2\n",
	}
	for name, src := range cases {
		if _, err := jsonkit.FromYAML([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !strings.HasPrefix(err.Error(), "jsonkit:") {
			t.Errorf("%s: unexpected error text %q", name, err)
		}
	}
}
