package document

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"unicode/utf8"
)

// Marshal returns the compact JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, "", "", false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but places each element on its own line,
// indented by indent per nesting level. Objects keep insertion order and
// non-ASCII text is written literally.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, "", indent, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the indented encoding of v to w followed by a newline.
func Encode(w io.Writer, v any, indent string) error {
	data, err := MarshalIndent(v, indent)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func encode(buf *bytes.Buffer, v any, prefix, indent string, pretty bool) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Object:
		if t == nil {
			buf.WriteString("null")
			return nil
		}
		if t.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		inner := prefix + indent
		buf.WriteByte('{')
		for i, k := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, inner, pretty)
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			if err := encode(buf, t.values[k], inner, indent, pretty); err != nil {
				return err
			}
		}
		newline(buf, prefix, pretty)
		buf.WriteByte('}')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := &Object{keys: keys, values: t}
		return encode(buf, obj, prefix, indent, pretty)
	case []any:
		if len(t) == 0 {
			buf.WriteString("[]")
			return nil
		}
		inner := prefix + indent
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, inner, pretty)
			if err := encode(buf, e, inner, indent, pretty); err != nil {
				return err
			}
		}
		newline(buf, prefix, pretty)
		buf.WriteByte(']')
	case string:
		return encodeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	default:
		// Values built in code rather than decoded, e.g. float64.
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	return nil
}

func newline(buf *bytes.Buffer, prefix string, pretty bool) {
	if !pretty {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(prefix)
}

// encodeString writes s as a JSON string. Only '"', '\\' and control
// characters are escaped; everything else, U+2028 and U+2029 included, is
// written literally. Invalid UTF-8 becomes U+FFFD.
func encodeString(buf *bytes.Buffer, s string) error {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"' || c == '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case c >= 0x20:
				buf.WriteByte(c)
			default:
				writeControl(buf, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteString(`\ufffd`)
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
	return nil
}

func writeControl(buf *bytes.Buffer, c byte) {
	switch c {
	case '\b':
		buf.WriteString(`\b`)
	case '\f':
		buf.WriteString(`\f`)
	case '\n':
		buf.WriteString(`\n`)
	case '\r':
		buf.WriteString(`\r`)
	case '\t':
		buf.WriteString(`\t`)
	default:
		const hex = "0123456789abcdef"
		buf.WriteString(`\u00`)
		buf.WriteByte(hex[c>>4])
		buf.WriteByte(hex[c&0xf])
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
