package logging_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/nsmerge/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Equal(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger nil uses default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Equal(t, logging.Default(), logging.Ctx(ctx))
	})

	t.Run("chaining context functions", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithRun(ctx, 3)
		ctx = logging.WithNamespace(ctx, "audio")
		ctx = logging.WithField(ctx, "file", "audio/a.json")

		logging.Ctx(ctx).Info().Msg("chained")

		assert.True(t, tl.ContainsAll(`"run":3`, `"namespace":"audio"`, `"file":"audio/a.json"`))
	})
}
