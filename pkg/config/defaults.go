package config

import (
	"slices"

	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

// Logging defaults.
const (
	DefaultLogLevel = "warning"
	DefaultLogJSON  = false
)

// Analysis defaults.
const (
	DefaultMode               = string(indent.ModeDominant)
	DefaultWorkers            = 0
	DefaultMaxLineSize        = "1MiB"
	DefaultDominanceThreshold = indent.DefaultDominanceThreshold
	DefaultWidthTolerance     = indent.DefaultWidthTolerance
)

// DefaultWidths are the candidate space widths, coarsest first.
var DefaultWidths = slices.Clone(indent.DefaultWidths)

// Output defaults.
const (
	DefaultFormat = "text"
	DefaultColor  = true
)
