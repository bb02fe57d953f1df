// Package save serializes merged documents to files or writers.
//
// JSON output keeps object key order, writes non-ASCII text literally and
// ends with a newline. File saves go through a temporary file in the target
// directory that is renamed into place, so a failed save leaves any
// existing file untouched.
package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/nsmerge/pkg/constants"
	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
)

// Write serializes doc according to opts. Either WithWriter or WithPath
// must be given.
func Write(doc any, opts ...Option) error {
	o := Defaults().Apply(opts...)

	data, err := Render(doc, o.format, o.indent)
	if err != nil {
		return err
	}

	if o.writer != nil {
		if _, err := o.writer.Write(data); err != nil {
			return errors.WrapIO("write", "", err)
		}
		return nil
	}
	if o.path == "" {
		return errors.WrapIO("write", "", errors.New("no output path or writer"))
	}
	return WriteFile(o.path, data)
}

// Render returns the serialized form of doc.
func Render(doc any, format Format, indent string) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := document.Encode(&buf, doc, indent); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(toYAML(doc))
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("sync", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}

// toYAML converts ordered values into goccy/go-yaml's ordered MapSlice.
func toYAML(v any) any {
	switch t := v.(type) {
	case *document.Object:
		if t == nil {
			return nil
		}
		ms := make(yaml.MapSlice, 0, t.Len())
		t.Range(func(k string, val any) bool {
			ms = append(ms, yaml.MapItem{Key: k, Value: toYAML(val)})
			return true
		})
		return ms
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toYAML(e)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
