package indent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

func TestScanLine_NoIndent(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "a", "\n", "x    ", "#\tcomment", "\r\n", "\u00a0nbsp"} {
		assert.Equal(t, indent.LineClassification{Char: indent.None}, indent.ScanLine(line), "line %q", line)
	}
}

func TestScanLine_RunLength(t *testing.T) {
	t.Parallel()

	for k := 1; k <= 12; k++ {
		spaces := strings.Repeat(" ", k)
		tabs := strings.Repeat("\t", k)

		assert.Equal(t, indent.LineClassification{Char: indent.Space, Count: k}, indent.ScanLine(spaces+"code\n"))
		assert.Equal(t, indent.LineClassification{Char: indent.Tab, Count: k}, indent.ScanLine(tabs+"code\n"))
	}
}

func TestScanLine_OnlyIndentation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, indent.LineClassification{Char: indent.Space, Count: 5}, indent.ScanLine("     "))
	assert.Equal(t, indent.LineClassification{Char: indent.Tab, Count: 2}, indent.ScanLine("\t\t"))
}

func TestScanLine_MixedLineCountsFirstRunOnly(t *testing.T) {
	t.Parallel()

	assert.Equal(t, indent.LineClassification{Char: indent.Tab, Count: 1}, indent.ScanLine("\t   x"))
	assert.Equal(t, indent.LineClassification{Char: indent.Space, Count: 2}, indent.ScanLine("  \t\tx"))
}
