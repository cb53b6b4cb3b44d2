package indent_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

func aggregate(t *testing.T, content string) *indent.FileStatistics {
	t.Helper()

	agg := &indent.Aggregator{}

	stats, err := agg.Aggregate(context.Background(), strings.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, stats.Validate())

	return stats
}

func joinLines(lines []string) string {
	var sb strings.Builder

	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return sb.String()
}

func TestNewStatistics_HasAllKeys(t *testing.T) {
	t.Parallel()

	stats := indent.NewStatistics()

	assert.Equal(t, map[indent.Character]int{indent.Space: 0, indent.Tab: 0, indent.None: 0}, stats.Characters)
	assert.Empty(t, stats.SpaceRuns)
	assert.Zero(t, stats.Total)
}

func TestAggregate_EndToEndScenario(t *testing.T) {
	t.Parallel()

	stats := aggregate(t, "    a\n    b\n\tc\n      d\n")

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[indent.Character]int{indent.Space: 3, indent.Tab: 1, indent.None: 0}, stats.Characters)
	assert.Equal(t, map[int]int{4: 2, 6: 1}, stats.SpaceRuns)
	assert.Equal(t, []int{4, 6}, stats.SortedRuns())
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	stats := aggregate(t, "")

	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Count(indent.None))
}

func TestAggregate_LastLineWithoutNewline(t *testing.T) {
	t.Parallel()

	stats := aggregate(t, "a\n  b")

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Count(indent.Space))
	assert.Equal(t, 1, stats.Count(indent.None))
}

func TestAggregate_BlankLinesAreNone(t *testing.T) {
	t.Parallel()

	stats := aggregate(t, "\n\r\n  x\r\n")

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Count(indent.None))
	assert.Equal(t, map[int]int{2: 1}, stats.SpaceRuns)
}

func TestAggregate_CarriageReturnEndsLine(t *testing.T) {
	t.Parallel()

	stats := aggregate(t, "a\r    b\r    c\r\td\r")

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Count(indent.Space))
	assert.Equal(t, 1, stats.Count(indent.Tab))
	assert.Equal(t, 1, stats.Count(indent.None))
	assert.Equal(t, map[int]int{4: 2}, stats.SpaceRuns)

	verdict := indent.NewClassifier(nil).Classify(context.Background(), stats)
	assert.Equal(t, indent.TypeSpaces, verdict.Dominant)
	assert.Equal(t, indent.TypeMixed, verdict.Presence)
	assert.Equal(t, 4, verdict.Width)
}

func TestAggregate_MixedLineEndings(t *testing.T) {
	t.Parallel()

	stats := aggregate(t, "  a\r\n\tb\r    c\nd")

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, map[int]int{2: 1, 4: 1}, stats.SpaceRuns)
	assert.Equal(t, 1, stats.Count(indent.Tab))
	assert.Equal(t, 1, stats.Count(indent.None))
}

func TestAggregate_CRLFSplitAcrossReads(t *testing.T) {
	t.Parallel()

	agg := &indent.Aggregator{}

	stats, err := agg.Aggregate(context.Background(), iotest.OneByteReader(strings.NewReader("    a\r\n\tb\r\n")))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Count(indent.Space))
	assert.Equal(t, 1, stats.Count(indent.Tab))
}

func TestScanLines(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"":              nil,
		"a":             {"a"},
		"a\n":           {"a"},
		"a\r":           {"a"},
		"a\r\n":         {"a"},
		"a\r\rb":        {"a", "", "b"},
		"a\n\r\nb\r":    {"a", "", "b"},
		"\r\n\n":        {"", ""},
		" x\r\ty\n z\r": {" x", "\ty", " z"},
	}

	for input, want := range tests {
		scanner := bufio.NewScanner(strings.NewReader(input))
		scanner.Split(indent.ScanLines)

		var got []string
		for scanner.Scan() {
			got = append(got, scanner.Text())
		}

		require.NoError(t, scanner.Err(), input)
		assert.Equal(t, want, got, "%q", input)
	}
}

func TestAggregate_LineTooLongWithCarriageReturns(t *testing.T) {
	t.Parallel()

	agg := &indent.Aggregator{MaxLineSize: 16}
	content := "short\r" + strings.Repeat(" ", 64) + "x\r"

	stats, err := agg.Aggregate(context.Background(), strings.NewReader(content))
	require.ErrorIs(t, err, indent.ErrLineTooLong)
	assert.Nil(t, stats)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	lines := []string{"    a", "\tb", "  c", "d", "        e", "\t\tf", "      g", ""}
	want := aggregate(t, joinLines(lines))

	rng := rand.New(rand.NewPCG(1, 2))

	for range 10 {
		shuffled := append([]string(nil), lines...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.Equal(t, want, aggregate(t, joinLines(shuffled)))
	}
}

func TestAggregate_InvalidUTF8(t *testing.T) {
	t.Parallel()

	agg := &indent.Aggregator{}

	stats, err := agg.Aggregate(context.Background(), strings.NewReader("  ok\n\xff\xfe bad\n"))
	require.ErrorIs(t, err, indent.ErrDecode)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, stats)
}

func TestAggregate_LineTooLong(t *testing.T) {
	t.Parallel()

	agg := &indent.Aggregator{MaxLineSize: 16}
	content := "short\n" + strings.Repeat(" ", 64) + "x\n"

	stats, err := agg.Aggregate(context.Background(), strings.NewReader(content))
	require.ErrorIs(t, err, indent.ErrLineTooLong)
	assert.Nil(t, stats)
}

type failingReader struct{}

var errBrokenPipe = errors.New("broken pipe")

func (failingReader) Read(_ []byte) (int, error) { return 0, errBrokenPipe }

func TestAggregate_ReadError(t *testing.T) {
	t.Parallel()

	agg := &indent.Aggregator{}

	stats, err := agg.Aggregate(context.Background(), failingReader{})
	require.ErrorIs(t, err, errBrokenPipe)
	assert.Nil(t, stats)
}

func TestFileStatistics_Merge(t *testing.T) {
	t.Parallel()

	left := aggregate(t, "  a\n\tb\n")
	right := aggregate(t, "    c\nd\n  e\n")

	left.Merge(right)
	left.Merge(nil)

	require.NoError(t, left.Validate())
	assert.Equal(t, 5, left.Total)
	assert.Equal(t, map[int]int{2: 2, 4: 1}, left.SpaceRuns)
}

func TestFileStatistics_ValidateDetectsMismatch(t *testing.T) {
	t.Parallel()

	stats := indent.NewStatistics()
	stats.Add(indent.LineClassification{Char: indent.Space, Count: 2})
	stats.Total++

	require.ErrorIs(t, stats.Validate(), indent.ErrInconsistentStats)

	stats = indent.NewStatistics()
	stats.Add(indent.LineClassification{Char: indent.Space, Count: 2})
	stats.SpaceRuns[4] = 1

	require.ErrorIs(t, stats.Validate(), indent.ErrInconsistentStats)
}

func TestAggregate_LogsLinesAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	agg := &indent.Aggregator{Logger: newDebugLogger(&buf)}

	_, err := agg.Aggregate(context.Background(), strings.NewReader("\tx\n"))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "line classified")
	assert.Contains(t, buf.String(), "char=tab")
}
