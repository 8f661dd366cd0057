package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk encoding of a schema file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// FormatForPath infers the encoding from a file extension. Anything
// that is not .yaml/.yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json or yaml)", name)
	}
}

// Decode parses schema bytes in either encoding. YAML is a superset of
// JSON here, but JSON is tried first so numbers keep their JSON types.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	return doc, nil
}

// EncodeJSON renders the document as indented JSON. Key order is
// stable (lexicographic) so repeated exports diff cleanly.
func EncodeJSON(doc Document, indent int) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema as JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode schema as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode schema as YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode renders the document in the given format. indent applies to
// JSON only.
func Encode(doc Document, format Format, indent int) ([]byte, error) {
	if format == FormatYAML {
		return EncodeYAML(doc)
	}
	return EncodeJSON(doc, indent)
}

// ReadFile loads a schema document, inferring the encoding from the
// file extension.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var doc Document
	switch FormatForPath(path) {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
		}
	}
	return doc, nil
}

// WriteFile writes the document to path in the given format, creating
// parent directories as needed.
func WriteFile(path string, doc Document, format Format, indent int) error {
	data, err := Encode(doc, format, indent)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
