package validate

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/internal/cmd/alerts"
	"github.com/agentstation/nsmerge/internal/cmd/application"
	"github.com/agentstation/nsmerge/internal/cmd/testutil"
	"github.com/agentstation/nsmerge/pkg/errors"
	"github.com/agentstation/nsmerge/pkg/pipeline"
)

func run(t *testing.T, cfg pipeline.Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand(&application.Mock{
		PipelineConfigFunc: func() pipeline.Config { return cfg },
		AlertsFunc:         func() alerts.Writer { return alerts.NewWriterTo(&out) },
	})
	cmd.SetArgs(nil)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestValidateCommandValid(t *testing.T) {
	cfg := testutil.Project(t, map[string]string{"core/a.json": `{"version": 1}`}, `{
		"type": "object",
		"properties": {"core": {"required": ["version"]}}
	}`)

	out, err := run(t, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Merged JSON is valid according to the schema")

	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr), "validate must not write output")
}

func TestValidateCommandInvalid(t *testing.T) {
	cfg := testutil.Project(t, map[string]string{"core/a.json": `{"name": "x"}`}, `{
		"type": "object",
		"properties": {"core": {"required": ["version"]}}
	}`)

	out, err := run(t, cfg)
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
	assert.Contains(t, out, "Schema validation failed")
	assert.Contains(t, out, "Path: core")
	assert.Contains(t, out, `Failed value: {"name":"x"}`)
}

func TestValidateCommandMissingSchema(t *testing.T) {
	cfg := testutil.Project(t, map[string]string{"core/a.json": `{}`}, "")

	out, err := run(t, cfg)
	require.Error(t, err)
	assert.Equal(t, errors.KindSchemaNotFound, errors.KindOf(err))
	assert.Contains(t, out, "Schema file "+cfg.SchemaFile+" not found")
}
