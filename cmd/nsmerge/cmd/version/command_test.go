package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/nsmerge/internal/cmd/application"
)

func TestVersionCommand(t *testing.T) {
	mock := &application.Mock{
		VersionFunc: func() string { return "1.2.3" },
		CommitFunc:  func() string { return "abc123" },
	}

	var out bytes.Buffer
	cmd := NewCommand(mock)
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "nsmerge 1.2.3\n", out.String())
}

func TestVersionCommandVerbose(t *testing.T) {
	mock := &application.Mock{
		VersionFunc: func() string { return "1.2.3" },
		CommitFunc:  func() string { return "abc123" },
	}

	var out bytes.Buffer
	cmd := NewCommand(mock)
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-v"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "commit:   abc123")
	assert.Contains(t, out.String(), "built by: test")
}
