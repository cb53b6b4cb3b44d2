package observability

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// LevelCritical is the severity above slog.LevelError, for fatal conditions.
const LevelCritical = slog.LevelError + 4

// LevelNotSet is below every level the tool logs at, so nothing is filtered.
const LevelNotSet = slog.LevelDebug - 4

// DefaultLogLevel is the level name used when none is given.
const DefaultLogLevel = "warning"

// ErrInvalidLogLevel is returned by [ParseLogLevel] for an unknown level name.
var ErrInvalidLogLevel = errors.New("invalid log level")

var levelNames = map[string]slog.Level{
	"notset":   LevelNotSet,
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

// ParseLogLevel converts a severity name (notset, debug, info, warning,
// error, critical; case-insensitive) into an slog level.
func ParseLogLevel(name string) (slog.Level, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q (want notset, debug, info, warning, error or critical)", ErrInvalidLogLevel, name)
	}

	return level, nil
}
