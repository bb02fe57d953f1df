package save

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
)

func sampleDoc(t *testing.T) *document.Object {
	t.Helper()
	doc, err := document.DecodeObject([]byte(`{"beta": {"name": "Füße 日本", "n": 2}, "alpha": {}}`))
	require.NoError(t, err)
	return doc
}

func TestWriteFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natives.json")

	require.NoError(t, Write(sampleDoc(t), WithPath(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n" +
		"    \"beta\": {\n" +
		"        \"name\": \"Füße 日本\",\n" +
		"        \"n\": 2\n" +
		"    },\n" +
		"    \"alpha\": {}\n" +
		"}\n"
	assert.Equal(t, want, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	require.NoError(t, Write(sampleDoc(t), WithPath(first)))
	require.NoError(t, Write(sampleDoc(t), WithPath(second)))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWriteToWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(sampleDoc(t), WithWriter(&buf), WithFormat(FormatYAML)))

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("beta:")), bytes.Index(buf.Bytes(), []byte("alpha:")))
	assert.Contains(t, out, "n: 2")
	assert.Contains(t, out, "Füße 日本")
}

func TestWriteFailureLeavesNoOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "natives.json")

	err := Write(sampleDoc(t), WithPath(path))
	require.Error(t, err)
	assert.Equal(t, errors.KindWrite, errors.KindOf(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natives.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, Write(document.NewObject(), WithPath(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteWithoutTarget(t *testing.T) {
	assert.Error(t, Write(document.NewObject()))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatJSON, true},
		{"JSON", FormatJSON, true},
		{"yml", FormatYAML, true},
		{"yaml", FormatYAML, true},
		{"toml", -1, false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
			assert.True(t, got.IsValid())
		}
	}
	assert.Equal(t, "yaml", FormatYAML.String())
}
