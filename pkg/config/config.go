// Package config provides YAML-based configuration for indentsniff.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/indentsniff/pkg/safeconv"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers   = errors.New("workers must be non-negative")
	ErrInvalidThreshold = errors.New("dominance threshold must be in (0, 1)")
	ErrInvalidTolerance = errors.New("width tolerance must be in (0, 1]")
	ErrInvalidWidths    = errors.New("widths must be a non-empty list of positive integers")
	ErrInvalidLineSize  = errors.New("invalid max line size")
)

// Config is the top-level configuration struct for indentsniff.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Output    OutputConfig    `mapstructure:"output"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// AnalysisConfig holds classification settings.
type AnalysisConfig struct {
	Mode               string  `mapstructure:"mode"`
	MaxLineSize        string  `mapstructure:"max_line_size"`
	Widths             []int   `mapstructure:"widths"`
	DominanceThreshold float64 `mapstructure:"dominance_threshold"`
	WidthTolerance     float64 `mapstructure:"width_tolerance"`
	Workers            int     `mapstructure:"workers"`
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string `mapstructure:"otlp_headers"`
	Environment  string `mapstructure:"environment"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	MetricsFile  string `mapstructure:"metrics_file"`
	RedactPaths  bool   `mapstructure:"redact_paths"`
}

// Validate checks the numeric settings. Names (level, mode, format) are
// validated by the packages that own them.
func (c *Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Analysis.Workers)
	}

	if c.Analysis.DominanceThreshold <= 0 || c.Analysis.DominanceThreshold >= 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.Analysis.DominanceThreshold)
	}

	if c.Analysis.WidthTolerance <= 0 || c.Analysis.WidthTolerance > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, c.Analysis.WidthTolerance)
	}

	if len(c.Analysis.Widths) == 0 {
		return ErrInvalidWidths
	}

	for _, width := range c.Analysis.Widths {
		if width <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidWidths, width)
		}
	}

	_, err := c.Analysis.MaxLineBytes()

	return err
}

// MaxLineBytes parses MaxLineSize ("1MiB", "64kB", "4096") into bytes.
func (a AnalysisConfig) MaxLineBytes() (int, error) {
	size, err := humanize.ParseBytes(a.MaxLineSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidLineSize, a.MaxLineSize, err)
	}

	if size > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLineSize, a.MaxLineSize)
	}

	bytes, ok := safeconv.Uint64ToInt(size)
	if !ok || bytes == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLineSize, a.MaxLineSize)
	}

	return bytes, nil
}
