package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFilesTotal   = "indentsniff.files.total"
	metricLinesTotal   = "indentsniff.lines.total"
	metricErrorsTotal  = "indentsniff.errors.total"
	metricFileDuration = "indentsniff.file.duration.seconds"

	attrStatus = "status"
	attrType   = "indent_type"
	attrKind   = "kind"

	// StatusOK marks a file analysed successfully.
	StatusOK = "ok"
	// StatusError marks a file that failed.
	StatusError = "error"
)

// durationBucketBoundaries covers 100µs to 10s, from small sources to
// very large generated files.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}

// AnalysisMetrics holds OTel instruments for per-file analysis.
type AnalysisMetrics struct {
	filesTotal   metric.Int64Counter
	linesTotal   metric.Int64Counter
	errorsTotal  metric.Int64Counter
	fileDuration metric.Float64Histogram
}

// FileOutcome describes one analysed file, decoupled from analysis types.
type FileOutcome struct {
	// IndentType is the overall verdict; empty on error.
	IndentType string
	// ErrorKind classifies a failure (e.g. "access", "decode"); empty on success.
	ErrorKind string
	Duration  time.Duration
	Lines     int64
}

// NewAnalysisMetrics creates analysis metric instruments from the given meter.
func NewAnalysisMetrics(mt metric.Meter) (*AnalysisMetrics, error) {
	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Files analysed by status and verdict"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	lines, err := mt.Int64Counter(metricLinesTotal,
		metric.WithDescription("Lines scanned"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricLinesTotal, err)
	}

	errs, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Failed files by error kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	dur, err := mt.Float64Histogram(metricFileDuration,
		metric.WithDescription("Per-file analysis duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFileDuration, err)
	}

	return &AnalysisMetrics{
		filesTotal:   files,
		linesTotal:   lines,
		errorsTotal:  errs,
		fileDuration: dur,
	}, nil
}

// RecordFile records the outcome of one file.
// Safe to call on a nil receiver (no-op).
func (am *AnalysisMetrics) RecordFile(ctx context.Context, outcome FileOutcome) {
	if am == nil {
		return
	}

	status := StatusOK
	if outcome.ErrorKind != "" {
		status = StatusError
	}

	am.filesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrStatus, status),
		attribute.String(attrType, outcome.IndentType),
	))
	am.fileDuration.Record(ctx, outcome.Duration.Seconds(), metric.WithAttributes(
		attribute.String(attrStatus, status),
	))

	if status == StatusError {
		am.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrKind, outcome.ErrorKind)))

		return
	}

	am.linesTotal.Add(ctx, outcome.Lines)
}
