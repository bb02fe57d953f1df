// Package testutil builds on-disk fixtures for command tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/pkg/pipeline"
)

// ObjectSchema accepts any document whose namespaces are objects.
const ObjectSchema = `{"type": "object", "additionalProperties": {"type": "object"}}`

// Project writes files under <tmp>/namespaces and the schema to
// <tmp>/schema.json, and returns the matching pipeline config. An empty
// schema is not written.
func Project(t testing.TB, files map[string]string, schema string) pipeline.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := pipeline.Config{
		InputDir:   filepath.Join(dir, "namespaces"),
		SchemaFile: filepath.Join(dir, "schema.json"),
		OutputFile: filepath.Join(dir, "natives.json"),
	}
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	for rel, content := range files {
		path := filepath.Join(cfg.InputDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	if schema != "" {
		require.NoError(t, os.WriteFile(cfg.SchemaFile, []byte(schema), 0o644))
	}
	return cfg
}
