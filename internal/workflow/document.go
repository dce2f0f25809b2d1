package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	canonicalIndent = "  "
	loadErrorFormat = "load workflow %s: %v"
)

// LoadError reports a workflow file that could not be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf(loadErrorFormat, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Document is one parsed workflow definition. Canonical is the deterministic
// pretty rendering embedded verbatim into prompts: two-space indentation, key
// order as encountered in the file, non-ASCII characters left unescaped.
// Re-parsing Canonical yields a value equal to Value.
type Document struct {
	Path      string
	Value     any
	Canonical string
}

// Filename returns the base name of the originating file.
func (d Document) Filename() string { return filepath.Base(d.Path) }

// Load reads and decodes one workflow file.
func Load(fileSystem afero.Fs, path string) (Document, error) {
	raw, readError := afero.ReadFile(fileSystem, path)
	if readError != nil {
		return Document{}, &LoadError{Path: path, Err: readError}
	}

	value, decodeError := decodeJSONValue(raw)
	if decodeError != nil {
		return Document{}, &LoadError{Path: path, Err: decodeError}
	}

	canonical, indentError := canonicalText(raw)
	if indentError != nil {
		return Document{}, &LoadError{Path: path, Err: indentError}
	}

	return Document{Path: path, Value: value, Canonical: canonical}, nil
}

// decodeJSONValue parses exactly one JSON value and rejects trailing content.
// Numbers are kept as json.Number so the canonical rendering never reformats
// them.
func decodeJSONValue(raw []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("unexpected trailing data after JSON value")
	}
	return value, nil
}

// canonicalText re-indents the original bytes rather than re-marshalling the
// parsed value: json.Indent preserves the key order exactly as encountered
// and copies string tokens verbatim, so non-ASCII runes stay unescaped.
func canonicalText(raw []byte) (string, error) {
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		return "", err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, compacted.Bytes(), "", canonicalIndent); err != nil {
		return "", err
	}
	return indented.String(), nil
}
