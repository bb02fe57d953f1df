package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject is returned by DecodeObject when the top-level value is not an object.
var ErrNotObject = errors.New("top-level value is not a JSON object")

// SyntaxError describes malformed JSON with a 1-based line and column.
type SyntaxError struct {
	Msg    string
	Offset int64
	Line   int
	Column int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Decode parses a single JSON value, preserving object key order.
// Trailing non-whitespace after the value is an error.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, syntaxError(data, dec, err)
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("invalid character %s after top-level value", describeToken(tok))
		}
		return nil, syntaxError(data, dec, err)
	}

	return v, nil
}

// DecodeObject parses data and requires the top-level value to be an object.
func DecodeObject(data []byte) (*Object, error) {
	v, err := Decode(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotObject, TypeName(v))
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, eof(err)
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("invalid object key %s", describeToken(kt))
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, eof(err)
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, eof(err)
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("invalid character %q looking for beginning of value", rune(delim))
	}
}

func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// syntaxError attaches a position to err. The decoder's input offset marks
// the start of the token that could not be read; json.SyntaxError offsets
// from Token are relative to the last value scanned and are not used.
func syntaxError(data []byte, dec *json.Decoder, err error) *SyntaxError {
	offset := dec.InputOffset()
	msg := err.Error()

	if errors.Is(err, io.ErrUnexpectedEOF) {
		offset = int64(len(data))
		msg = "unexpected end of JSON input"
	}

	line, col := Position(data, offset)
	return &SyntaxError{Msg: msg, Offset: offset, Line: line, Column: col}
}

// Position converts a byte offset into a 1-based line and column.
func Position(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	head := data[:offset]
	line = bytes.Count(head, []byte{'\n'}) + 1
	column = len(head) - bytes.LastIndexByte(head, '\n')
	if column < 1 {
		column = 1
	}
	return line, column
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", rune(t))
	case string:
		return fmt.Sprintf("%q", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// TypeName returns the JSON type name of a decoded value.
func TypeName(v any) string {
	switch v.(type) {
	case *Object, map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
