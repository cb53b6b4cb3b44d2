package indent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Classifier defaults.
const (
	// DefaultDominanceThreshold is the line share above which a character dominates.
	DefaultDominanceThreshold = 0.33
	// DefaultWidthTolerance is the highest accepted incompatible/compatible ratio.
	DefaultWidthTolerance = 0.10
)

// DefaultWidths are the candidate space widths, coarsest first.
var DefaultWidths = []int{8, 4, 2}

// ErrUnknownMode is returned by [ParseMode] for an unrecognised mode name.
var ErrUnknownMode = errors.New("unknown classification mode")

// Mode selects which procedure decides the overall indentation type.
type Mode string

const (
	// ModeDominant uses the dominance-threshold procedure.
	ModeDominant Mode = "dominant"
	// ModePresence uses the strict presence procedure: any tab line next to
	// any space line is mixed.
	ModePresence Mode = "presence"
)

// modeStrictAlias is accepted by ParseMode as a synonym of ModePresence.
const modeStrictAlias = "strict"

// ParseMode converts a user-provided mode name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(ModeDominant):
		return ModeDominant, nil
	case string(ModePresence), modeStrictAlias:
		return ModePresence, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Verdict is the classification of one file.
type Verdict struct {
	// Type is the overall type, chosen by the classifier's Mode.
	Type Type `json:"type" yaml:"type"`
	// Dominant is the result of the dominance-threshold procedure.
	Dominant Type `json:"dominant" yaml:"dominant"`
	// Presence is the result of the strict presence procedure.
	Presence Type `json:"presence" yaml:"presence"`
	// Width is the inferred space width, 0 when unknown or not inferred.
	Width int `json:"width,omitempty" yaml:"width,omitempty"`
	// WidthInferred is true when Type called for width inference.
	WidthInferred bool `json:"width_inferred" yaml:"width_inferred"`
}

// WidthKnown reports whether inference ran and found a width.
func (v Verdict) WidthKnown() bool {
	return v.WidthInferred && v.Width > 0
}

// Classifier turns [FileStatistics] into a [Verdict].
// The zero value uses the default thresholds, widths and mode.
type Classifier struct {
	// Logger receives decision debug records. Nil uses [slog.Default].
	Logger             *slog.Logger
	Mode               Mode
	Widths             []int
	DominanceThreshold float64
	WidthTolerance     float64
}

// NewClassifier returns a Classifier with default settings.
func NewClassifier(logger *slog.Logger) *Classifier {
	return &Classifier{
		Logger:             logger,
		Mode:               ModeDominant,
		Widths:             DefaultWidths,
		DominanceThreshold: DefaultDominanceThreshold,
		WidthTolerance:     DefaultWidthTolerance,
	}
}

// Classify runs both type procedures and, when the overall type involves
// spaces, the width inference.
func (c *Classifier) Classify(ctx context.Context, stats *FileStatistics) Verdict {
	verdict := Verdict{
		Dominant: c.Dominant(ctx, stats),
		Presence: Presence(stats),
	}

	verdict.Type = verdict.Dominant
	if c.mode() == ModePresence {
		verdict.Type = verdict.Presence
	}

	if verdict.Type.HasSpaces() {
		verdict.WidthInferred = true
		verdict.Width, _ = c.SpaceWidth(ctx, stats)
	}

	return verdict
}

// Dominant classifies by line share: a character whose share of all lines
// exceeds the threshold is dominant. Empty statistics yield TypeNone.
func (c *Classifier) Dominant(ctx context.Context, stats *FileStatistics) Type {
	if stats == nil || stats.Total == 0 {
		return TypeNone
	}

	threshold := c.threshold()
	total := float64(stats.Total)

	spaces := float64(stats.Count(Space))/total > threshold
	tabs := float64(stats.Count(Tab))/total > threshold

	c.logger().DebugContext(ctx, "dominance computed",
		"total", stats.Total, "threshold", threshold, "spaces", spaces, "tabs", tabs)

	return typeOf(spaces, tabs)
}

// Presence classifies by the mere presence of space and tab lines.
func Presence(stats *FileStatistics) Type {
	if stats == nil {
		return TypeNone
	}

	return typeOf(stats.Count(Space) > 0, stats.Count(Tab) > 0)
}

func typeOf(spaces, tabs bool) Type {
	switch {
	case spaces && tabs:
		return TypeMixed
	case spaces:
		return TypeSpaces
	case tabs:
		return TypeTabs
	default:
		return TypeNone
	}
}

// SpaceWidth infers the indent width from the space run lengths. Candidates
// are tried in order; the first whose incompatible/compatible ratio is below
// the tolerance wins. A candidate without compatible runs is rejected.
// The boolean is false when no candidate is accepted.
func (c *Classifier) SpaceWidth(ctx context.Context, stats *FileStatistics) (int, bool) {
	if stats == nil {
		return 0, false
	}

	logger := c.logger()
	tolerance := c.tolerance()

	for _, width := range c.widths() {
		if width <= 0 {
			continue
		}

		compatible, incompatible := 0, 0

		for run, count := range stats.SpaceRuns {
			if run%width == 0 {
				compatible += count
			} else {
				incompatible += count
			}
		}

		if compatible == 0 {
			logger.DebugContext(ctx, "width rejected", "width", width, "reason", "no compatible runs")

			continue
		}

		ratio := float64(incompatible) / float64(compatible)
		if ratio < tolerance {
			logger.DebugContext(ctx, "width accepted", "width", width, "ratio", ratio)

			return width, true
		}

		logger.DebugContext(ctx, "width rejected", "width", width, "ratio", ratio)
	}

	return 0, false
}

func (c *Classifier) mode() Mode {
	if c.Mode == "" {
		return ModeDominant
	}

	return c.Mode
}

func (c *Classifier) threshold() float64 {
	if c.DominanceThreshold <= 0 {
		return DefaultDominanceThreshold
	}

	return c.DominanceThreshold
}

func (c *Classifier) tolerance() float64 {
	if c.WidthTolerance <= 0 {
		return DefaultWidthTolerance
	}

	return c.WidthTolerance
}

func (c *Classifier) widths() []int {
	if len(c.Widths) == 0 {
		return DefaultWidths
	}

	return c.Widths
}

func (c *Classifier) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}

	return c.Logger
}
