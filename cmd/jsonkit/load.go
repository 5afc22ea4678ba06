package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/jsonkit"
)

// readInput returns the raw bytes of a file, or of standard input for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return jsonkit.ReadAll(jsonkit.ReaderSource(os.Stdin))
	}
	src, err := jsonkit.OpenFileSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return jsonkit.ReadAll(src)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decode parses raw input according to the file name.
func decode(path string, raw []byte) (jsonkit.Value, error) {
	if isYAML(path) {
		return jsonkit.FromYAML(raw)
	}
	return jsonkit.ParseBytes(raw)
}

// loadDocument reads and decodes a JSON or YAML document.
func loadDocument(path string) (jsonkit.Value, error) {
	raw, err := readInput(path)
	if err != nil {
		return jsonkit.Value{}, err
	}
	return decode(path, raw)
}
