package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Document is the full parsed settings file: top-level TOML tables keyed by
// section name, each holding a flat key → scalar mapping. Unrecognized keys
// survive a parse → encode cycle untouched.
type Document map[string]map[string]any

// parseDocument decodes a TOML settings document.
func parseDocument(data []byte) (Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode settings document: %w", err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// readDocument loads and parses the settings file at path. A missing file
// is reported as-is so callers can treat it as an empty baseline.
func readDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseDocument(data)
}

// encode serializes the document back to TOML. Scalars keep their original
// types: numbers stay numbers, booleans stay booleans.
func (d Document) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]map[string]any(d)); err != nil {
		return nil, fmt.Errorf("encode settings document: %w", err)
	}
	return buf.Bytes(), nil
}

// writeDocument replaces the settings file at path with the serialized
// document. The bytes go to a temporary file in the same directory first
// and are renamed into place, so a failed write never leaves a truncated
// settings file behind.
func writeDocument(path string, doc Document) error {
	data, err := doc.encode()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// section returns a mutable copy of one section's mapping; absent sections
// yield an empty map.
func (d Document) section(name Section) map[string]any {
	src := d[string(name)]
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
