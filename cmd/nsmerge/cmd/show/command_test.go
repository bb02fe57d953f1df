package show

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/internal/cmd/alerts"
	"github.com/agentstation/nsmerge/internal/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/testutil"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

func run(t *testing.T, cfg pipeline.Config, args ...string) (stdout, report string, err error) {
	t.Helper()
	var out, rep bytes.Buffer
	cmd := NewCommand(&application.Mock{
		PipelineConfigFunc: func() pipeline.Config { return cfg },
		AlertsFunc:         func() alerts.Writer { return alerts.NewWriterTo(&rep) },
	})
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), rep.String(), err
}

func TestShowJSON(t *testing.T) {
	// No schema: show does not validate.
	cfg := testutil.Project(t, map[string]string{
		"b/x.json": `{"k": "v"}`,
		"a/x.json": `{"n": 1}`,
	}, "")

	stdout, _, err := run(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": {\n        \"n\": 1\n    },\n    \"b\": {\n        \"k\": \"v\"\n    }\n}\n", stdout)

	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestShowYAML(t *testing.T) {
	cfg := testutil.Project(t, map[string]string{"core/x.json": `{"name": "demo", "count": 2}`}, "")

	stdout, _, err := run(t, cfg, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "core:")
	assert.Contains(t, stdout, "name: demo")
	assert.Contains(t, stdout, "count: 2")
}

func TestShowUnknownFormat(t *testing.T) {
	cfg := testutil.Project(t, nil, "")

	_, _, err := run(t, cfg, "-f", "toml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestShowMissingInput(t *testing.T) {
	cfg := testutil.Project(t, nil, "")
	cfg.InputDir = filepath.Join(filepath.Dir(cfg.InputDir), "missing")

	stdout, report, err := run(t, cfg)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, report, "does not exist")
}
