// Package schema loads a JSON Schema document and validates merged
// documents against it.
//
// Loading and compiling are separate steps so a missing or unparsable
// schema file (Load) is reported differently from a document that parses
// but is not a valid schema (NewValidator). Schemas without "$schema" are
// treated as draft 2020-12.
package schema

import (
	"os"
	"path/filepath"

	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
)

// Schema is a parsed, not yet compiled, schema document.
type Schema struct {
	path string
	doc  any
}

// Load reads and parses the schema file at path.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError(errors.ResourceSchemaFile, path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(path, data)
}

// Parse parses schema bytes. path is used for error messages and for
// resolving relative "$ref"s.
func Parse(path string, data []byte) (*Schema, error) {
	v, err := document.Decode(data)
	if err != nil {
		pe := errors.NewParseError("json", path, err.Error(), err)
		var se *document.SyntaxError
		if errors.As(err, &se) {
			pe.Line, pe.Column, pe.Message = se.Line, se.Column, se.Msg
		}
		return nil, pe
	}
	return &Schema{path: path, doc: document.Plain(v)}, nil
}

// Path returns the file the schema was loaded from.
func (s *Schema) Path() string {
	return s.path
}

// Document returns the parsed schema in plain form.
func (s *Schema) Document() any {
	return s.doc
}

// location returns the URL-ish resource location the compiler registers
// the schema under. Absolute file paths let relative $refs resolve
// against the schema's directory.
func (s *Schema) location() string {
	if s.path == "" {
		return "schema.json"
	}
	if abs, err := filepath.Abs(s.path); err == nil {
		return abs
	}
	return s.path
}
