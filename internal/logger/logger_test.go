package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies recognized and unrecognized level strings.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"Error":  zapcore.ErrorLevel,
		"fatal":  zapcore.FatalLevel,
	}

	for input, expected := range cases {
		level, ok := ParseLogLevel(input)

		require.True(t, ok, input)
		require.Equal(t, expected, level, input)
	}

	level, ok := ParseLogLevel("verbose")

	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, level)
}

// TestFromContext_FallsBackToGlobal verifies a bare context resolves to the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithName_StoresScopedLogger verifies WithName stores a distinct logger in the context.
func TestWithName_StoresScopedLogger(t *testing.T) {
	t.Parallel()

	ctx := WithName(context.Background(), "test-component")

	require.NotSame(t, Logger(), FromContext(ctx))
}
