package namespaces

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/pkg/document"
	"github.com/agentstation/nsmerge/pkg/errors"
)

// writeTree creates files under root from a map of slash-separated relative
// paths to contents. A path ending in "/" creates an empty directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func compact(t *testing.T, v any) string {
	t.Helper()
	out, err := document.Marshal(v)
	require.NoError(t, err)
	return string(out)
}

func TestCollectNamespaceKeysMatchSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":    "not a namespace",
		"notes.json":   `{"ignored": true}`,
		"core/a.json":  `{"x": 1}`,
		"audio/a.json": `{"volume": 3}`,
		"empty/":       "",
	})

	doc, err := NewCollector(root).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"audio", "core", "empty"}, doc.Keys())
}

func TestCollectLaterFileWins(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"core/a.json": `{"x": 1}`,
		"core/b.json": `{"x": 2, "y": 3}`,
	})

	doc, err := NewCollector(root).Collect(context.Background())
	require.NoError(t, err)

	core, ok := doc.Get("core")
	require.True(t, ok)
	assert.Equal(t, `{"x":2,"y":3}`, compact(t, core))
}

func TestCollectShallowOverwrite(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"core/01.json": `{"settings": {"a": 1, "b": 2}, "keep": true}`,
		"core/02.json": `{"settings": {"c": 3}}`,
	})

	doc, err := NewCollector(root).Collect(context.Background())
	require.NoError(t, err)

	core, _ := doc.Get("core")
	assert.Equal(t, `{"settings":{"c":3},"keep":true}`, compact(t, core))
}

func TestCollectSortedOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"beta/z.json":  `{"order": "z"}`,
		"beta/a.json":  `{"order": "a", "first": 1}`,
		"alpha/x.json": `{}`,
	})

	var seen []Progress
	c := NewCollector(root, WithProgress(func(p Progress) { seen = append(seen, p) }))
	doc, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "beta"}, doc.Keys())
	beta, _ := doc.Get("beta")
	assert.Equal(t, `{"order":"z","first":1}`, compact(t, beta))

	assert.Equal(t, []Progress{
		{Namespace: "alpha"},
		{Namespace: "alpha", File: filepath.Join(root, "alpha", "x.json")},
		{Namespace: "beta"},
		{Namespace: "beta", File: filepath.Join(root, "beta", "a.json")},
		{Namespace: "beta", File: filepath.Join(root, "beta", "z.json")},
	}, seen)
}

func TestCollectEmptyNamespace(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"core/": ""})

	doc, err := NewCollector(root).Collect(context.Background())
	require.NoError(t, err)

	core, ok := doc.Get("core")
	require.True(t, ok)
	assert.Equal(t, `{}`, compact(t, core))
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := NewCollector(filepath.Join(t.TempDir(), "nope")).Collect(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsInputNotFound(err))
	assert.Equal(t, errors.KindInputNotFound, errors.KindOf(err))
}

func TestCollectFailures(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantKind errors.Kind
		wantFile string
	}{
		{
			name: "malformed json",
			files: map[string]string{
				"core/a.json": `{"x": 1}`,
				"core/b.json": `{"x": `,
				"core/c.json": `{"y": 1}`,
			},
			wantKind: errors.KindMalformedInput,
			wantFile: "core/b.json",
		},
		{
			name:     "top level array",
			files:    map[string]string{"core/a.json": `[1, 2]`},
			wantKind: errors.KindMalformedInput,
			wantFile: "core/a.json",
		},
		{
			name:     "invalid utf-8",
			files:    map[string]string{"core/a.json": "{\"x\": \"\xff\xfe\"}"},
			wantKind: errors.KindEncoding,
			wantFile: "core/a.json",
		},
		{
			name: "nested directory",
			files: map[string]string{
				"core/a.json": `{}`,
				"core/sub/":   "",
			},
			wantKind: errors.KindRead,
			wantFile: "core/sub",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			doc, err := NewCollector(root).Collect(context.Background())
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.Equal(t, tt.wantKind, errors.KindOf(err))

			var pe *errors.PipelineError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, errors.StageCollect, pe.Stage)
			assert.Equal(t, "core", pe.Namespace)
			assert.Equal(t, filepath.Join(root, filepath.FromSlash(tt.wantFile)), pe.File)
		})
	}
}

func TestCollectExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"core/a.json":    `{"x": 1}`,
		"core/.DS_Store": "\x00\x01 binary",
		"core/draft.txt": "not json",
	})

	doc, err := NewCollector(root, WithExclude(".DS_Store", "core/*.txt")).Collect(context.Background())
	require.NoError(t, err)

	core, _ := doc.Get("core")
	assert.Equal(t, `{"x":1}`, compact(t, core))
}

func TestCollectInvalidExcludePattern(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"core/a.json": `{}`})

	_, err := NewCollector(root, WithExclude("[")).Collect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
	assert.Equal(t, errors.ExitFailure, errors.ExitCode(err))

	var ce *errors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "exclude", ce.Component)
	assert.Contains(t, ce.Message, `"["`)
}

func TestCollectCanceled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"core/a.json": `{}`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(root).Collect(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
	assert.Equal(t, errors.KindInterrupted, errors.KindOf(err))
}

func TestReadFileSyntaxPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{\n  \"a\": 1,\n  \"b\": nope\n}"), 0o644))

	_, err := ReadFile(path)
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, path, pe.File)
	assert.Equal(t, 3, pe.Line)
}

func TestReadFileNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"big": 12345678901234567890}`), 0o644))

	obj, err := ReadFile(path)
	require.NoError(t, err)
	big, _ := obj.Get("big")
	assert.Equal(t, json.Number("12345678901234567890"), big)
}

func TestInvalidUTF8Offset(t *testing.T) {
	assert.Equal(t, 2, invalidUTF8Offset([]byte("ab\xffc")))
	assert.Equal(t, -1, invalidUTF8Offset([]byte("héllo")))
}
