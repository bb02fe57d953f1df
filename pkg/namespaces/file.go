package namespaces

import (
	"os"
	"unicode/utf8"

	"github.com/agentstation/nsmerge/pkg/constants"
	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
)

var errNotDirectory = errors.New("not a directory")

// ReadFile reads one fragment file and decodes it as a JSON object.
//
// The file is opened, read fully and closed before decoding. Invalid UTF-8
// yields *errors.EncodingError; malformed JSON or a non-object top level
// yields *errors.ParseError; anything else is an *errors.IOError.
func ReadFile(path string) (*document.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	if !utf8.Valid(data) {
		return nil, errors.NewEncodingError(path, constants.InputEncoding, invalidUTF8Offset(data))
	}

	obj, err := document.DecodeObject(data)
	if err != nil {
		pe := errors.NewParseError("json", path, err.Error(), err)
		var se *document.SyntaxError
		if errors.As(err, &se) {
			pe.Line, pe.Column, pe.Message = se.Line, se.Column, se.Msg
		}
		return nil, pe
	}
	return obj, nil
}

// invalidUTF8Offset returns the byte offset of the first invalid sequence.
func invalidUTF8Offset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
