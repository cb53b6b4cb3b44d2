package indent

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"unicode/utf8"
)

// DefaultMaxLineSize bounds the length of a single line read by [Aggregator].
const DefaultMaxLineSize = 1 << 20 // 1 MiB.

// initialLineBuffer is the starting size of the line scanner buffer.
const initialLineBuffer = 64 * 1024

var (
	// ErrDecode is returned when a line is not valid UTF-8 text.
	ErrDecode = errors.New("line is not valid UTF-8")
	// ErrLineTooLong is returned when a line exceeds the aggregator's line size limit.
	ErrLineTooLong = errors.New("line exceeds maximum size")
	// ErrInconsistentStats is returned by [FileStatistics.Validate] when the counters disagree.
	ErrInconsistentStats = errors.New("inconsistent indentation statistics")
)

// FileStatistics accumulates line classifications for one file.
type FileStatistics struct {
	// Characters counts lines per leading character. Space, Tab and None are always present.
	Characters map[Character]int `json:"characters" yaml:"characters"`
	// SpaceRuns counts space-indented lines per run length.
	SpaceRuns map[int]int `json:"space_runs" yaml:"space_runs"`
	// Total is the number of lines seen.
	Total int `json:"total" yaml:"total"`
}

// NewStatistics returns empty statistics with every Character key present.
func NewStatistics() *FileStatistics {
	stats := &FileStatistics{
		Characters: make(map[Character]int, len(Characters)),
		SpaceRuns:  make(map[int]int),
	}

	for _, char := range Characters {
		stats.Characters[char] = 0
	}

	return stats
}

// Add folds one line classification into the statistics.
func (fs *FileStatistics) Add(lc LineClassification) {
	fs.Total++
	fs.Characters[lc.Char]++

	if lc.Char == Space {
		fs.SpaceRuns[lc.Count]++
	}
}

// Merge adds the counters of other into fs.
func (fs *FileStatistics) Merge(other *FileStatistics) {
	if other == nil {
		return
	}

	fs.Total += other.Total

	for char, count := range other.Characters {
		fs.Characters[char] += count
	}

	for run, count := range other.SpaceRuns {
		fs.SpaceRuns[run] += count
	}
}

// Count returns the number of lines that start with char.
func (fs *FileStatistics) Count(char Character) int {
	return fs.Characters[char]
}

// SortedRuns returns the distinct space run lengths in ascending order.
func (fs *FileStatistics) SortedRuns() []int {
	return slices.Sorted(maps.Keys(fs.SpaceRuns))
}

// Validate checks that the character counts add up to Total and that the
// space runs add up to the Space count.
func (fs *FileStatistics) Validate() error {
	sumChars := 0
	for _, count := range fs.Characters {
		sumChars += count
	}

	if sumChars != fs.Total {
		return fmt.Errorf("%w: %d classified lines, %d total", ErrInconsistentStats, sumChars, fs.Total)
	}

	sumRuns := 0
	for _, count := range fs.SpaceRuns {
		sumRuns += count
	}

	if sumRuns != fs.Characters[Space] {
		return fmt.Errorf("%w: %d space runs, %d space lines", ErrInconsistentStats, sumRuns, fs.Characters[Space])
	}

	return nil
}

// Aggregator drives [ScanLine] over a stream of lines.
type Aggregator struct {
	// Logger receives per-line debug records. Nil uses [slog.Default].
	Logger *slog.Logger
	// MaxLineSize is the longest accepted line in bytes. Zero uses DefaultMaxLineSize.
	MaxLineSize int
}

// Aggregate reads r line by line and returns the resulting statistics.
// No statistics are returned when reading or decoding fails.
func (a *Aggregator) Aggregate(ctx context.Context, r io.Reader) (*FileStatistics, error) {
	logger := a.logger()
	debug := logger.Enabled(ctx, slog.LevelDebug)

	maxLine := a.MaxLineSize
	if maxLine <= 0 {
		maxLine = DefaultMaxLineSize
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, maxLine)), maxLine)
	scanner.Split(ScanLines)

	stats := NewStatistics()
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		raw := scanner.Bytes()
		if !utf8.Valid(raw) {
			return nil, fmt.Errorf("line %d: %w", lineNo, ErrDecode)
		}

		lc := ScanLine(string(raw))
		if debug {
			logger.DebugContext(ctx, "line classified", "line", lineNo, "char", lc.Char.String(), "count", lc.Count)
		}

		stats.Add(lc)
	}

	scanErr := scanner.Err()
	if scanErr != nil {
		if errors.Is(scanErr, bufio.ErrTooLong) {
			return nil, fmt.Errorf("line %d: %w (limit %d bytes)", lineNo+1, ErrLineTooLong, maxLine)
		}

		return nil, fmt.Errorf("read lines: %w", scanErr)
	}

	return stats, nil
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}

	return a.Logger
}

// ScanLines is a [bufio.SplitFunc] that ends a line at "\n", "\r\n" or a
// lone "\r". The terminator is not part of the token, and a final line
// without a terminator is still returned.
func ScanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	idx := bytes.IndexAny(data, "\r\n")
	if idx < 0 {
		if atEOF {
			return len(data), data, nil
		}

		return 0, nil, nil
	}

	if data[idx] == '\n' {
		return idx + 1, data[:idx], nil
	}

	// A '\r' as the last buffered byte may be the first half of "\r\n".
	if idx+1 == len(data) && !atEOF {
		return 0, nil, nil
	}

	if idx+1 < len(data) && data[idx+1] == '\n' {
		return idx + 2, data[:idx], nil
	}

	return idx + 1, data[:idx], nil
}
