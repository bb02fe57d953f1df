package alerts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/pkg/errors"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "✓ done", NewSuccess("done").String())
	assert.Equal(t, "✗ failed: boom", NewError("failed").WithError(errors.New("boom")).String())
	assert.Equal(t, "! careful", NewWarning("careful").String())
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterTo(&buf)

	a := NewError("Schema validation failed").
		WithDetails("Path: core").
		WithDetailf("Message: %s", "missing property")
	require.NoError(t, w.WriteAlert(a))

	assert.Equal(t, "✗ Schema validation failed\n  Path: core\n  Message: missing property\n", buf.String())
}

func TestTextWriterHidesDetails(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, WriterConfig{})

	require.NoError(t, w.WriteAlert(NewInfo("hello").WithDetails("hidden")))
	assert.Equal(t, "i hello\n", buf.String())
}

func TestTextWriterColor(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf, WriterConfig{UseColor: true})

	require.NoError(t, w.WriteAlert(NewSuccess("ok")))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "✓ ok")
}

func TestTerminalWriterNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	w := NewTerminalWriter(&buf, false)

	require.NoError(t, w.WriteAlert(NewSuccess("ok")))
	assert.Equal(t, "✓ ok\n", buf.String())
}

func TestWriterFunc(t *testing.T) {
	var got []*Alert
	w := WriterFunc(func(a *Alert) error {
		got = append(got, a)
		return nil
	})
	require.NoError(t, w.WriteAlert(NewInfo("x")))
	require.NoError(t, DiscardWriter.WriteAlert(NewInfo("y")))
	assert.Len(t, got, 1)
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}
