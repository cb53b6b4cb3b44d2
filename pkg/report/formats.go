// Package report renders indentation verdicts as text, tables, JSON or YAML.
package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// FormatText is the human-readable per-file output.
	FormatText = "text"

	// FormatTable is a single table with one row per file.
	FormatTable = "table"

	// FormatJSON is a JSON array with one object per file.
	FormatJSON = "json"

	// FormatYAML is a YAML sequence with one mapping per file.
	FormatYAML = "yaml"

	// formatYMLAlias is accepted for FormatYAML.
	formatYMLAlias = "yml"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON, FormatYAML}
}

// NormalizeFormat canonicalizes a user-provided output format string.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == formatYMLAlias {
		return FormatYAML
	}

	return normalized
}

// ValidateFormat checks whether format is supported and returns its canonical form.
func ValidateFormat(format string) (string, error) {
	normalized := NormalizeFormat(format)
	if slices.Contains(Formats(), normalized) {
		return normalized, nil
	}

	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, format, strings.Join(Formats(), ", "))
}
