package jsonkit

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes the first document of a YAML stream into a Value. Mapping
// keys must be strings; aliases are expanded and "<<" merge keys are applied
// without overriding explicit keys.
func FromYAML(data []byte) (Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, nil
		}
		return Value{}, fmt.Errorf("jsonkit: invalid YAML: %w", err)
	}
	return yamlNodeToValue(&doc, 0)
}

// yamlMaxDepth caps alias expansion and nesting so that recursive aliases
// cannot loop forever.
const yamlMaxDepth = 10 * DefaultMaxDepth

func yamlNodeToValue(n *yaml.Node, depth int) (Value, error) {
	if depth > yamlMaxDepth {
		return Value{}, fmt.Errorf("jsonkit: YAML nesting exceeds %d levels", yamlMaxDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{}, nil
		}
		return yamlNodeToValue(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, nil
		}
		return yamlNodeToValue(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlNodeToValue(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return arrayOwned(items), nil
	case yaml.MappingNode:
		return yamlMapping(n, depth)
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return Value{}, fmt.Errorf("jsonkit: unsupported YAML node kind %d at line %d", n.Kind, n.Line)
}

func yamlMapping(n *yaml.Node, depth int) (Value, error) {
	m := make(map[string]Value, len(n.Content)/2)
	var merged []Value
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, vn := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			v, err := yamlNodeToValue(vn, depth+1)
			if err != nil {
				return Value{}, err
			}
			merged = append(merged, v)
			continue
		}
		if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
			return Value{}, fmt.Errorf("jsonkit: YAML mapping key at line %d is not a string", k.Line)
		}
		v, err := yamlNodeToValue(vn, depth+1)
		if err != nil {
			return Value{}, err
		}
		m[k.Value] = v
	}
	for _, src := range merged {
		srcs := []Value{src}
		if src.IsArray() {
			srcs = src.Items()
		}
		for _, s := range srcs {
			for k, v := range s.All() {
				if _, exists := m[k]; !exists {
					m[k] = v
				}
			}
		}
	}
	return Object(m), nil
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Value{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return String(n.Value), nil
	}
}
