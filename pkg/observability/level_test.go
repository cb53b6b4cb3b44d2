package observability_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/indentsniff/pkg/observability"
)

func TestParseLogLevel_Names(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"NOTSET":   observability.LevelNotSet,
		"debug":    slog.LevelDebug,
		"INFO":     slog.LevelInfo,
		"warning":  slog.LevelWarn,
		"Warn":     slog.LevelWarn,
		"error":    slog.LevelError,
		"CRITICAL": observability.LevelCritical,
		" fatal ":  observability.LevelCritical,
	}

	for name, want := range tests {
		got, err := observability.ParseLogLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestParseLogLevel_Default(t *testing.T) {
	t.Parallel()

	level, err := observability.ParseLogLevel(observability.DefaultLogLevel)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestParseLogLevel_Invalid(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "verbose", "10", "warnings"} {
		_, err := observability.ParseLogLevel(name)
		require.ErrorIs(t, err, observability.ErrInvalidLogLevel, name)
	}
}
