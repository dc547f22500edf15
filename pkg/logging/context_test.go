package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/closeops/schemasync/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("WithLogger stores and FromContext retrieves", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf)

		ctx := logging.WithLogger(context.Background(), &logger)
		logging.FromContext(ctx).Warn().Msg("from context")

		assert.Contains(t, buf.String(), "from context")
	})

	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
	})

	t.Run("nil context yields default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(nil)) //nolint:staticcheck // nil fallback is the behavior under test
	})

	t.Run("WithLogger nil stores default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Equal(t, logging.Default(), logging.FromContext(ctx))
	})

	t.Run("Ctx is an alias for FromContext", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf)

		ctx := logging.WithLogger(context.Background(), &logger)
		assert.Same(t, &logger, logging.Ctx(ctx))
	})
}
