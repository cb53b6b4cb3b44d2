// Package analyze runs indentation detection over files on disk.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/src-d/enry/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
	"github.com/Sumatoshi-tech/indentsniff/pkg/observability"
	"github.com/Sumatoshi-tech/indentsniff/pkg/textutil"
)

const spanAnalyzeFile = "indentsniff.analyze_file"

// Error kinds reported to metrics.
const (
	KindAccess = "access"
	KindDecode = "decode"
)

var (
	// ErrFileAccess wraps failures to open, stat or read a file.
	ErrFileAccess = errors.New("cannot access file")
	// ErrBinaryContent is returned for files whose head contains a null byte.
	ErrBinaryContent = errors.New("binary content")
)

// FileReport is the outcome of analysing one file. When Err is set, Stats is
// nil and Verdict must not be used.
type FileReport struct {
	Err      error
	Stats    *indent.FileStatistics
	Path     string
	Language string
	Verdict  indent.Verdict
	Bytes    int64
	Duration time.Duration
}

// OK reports whether the file was analysed successfully.
func (r FileReport) OK() bool {
	return r.Err == nil
}

// ErrorKind classifies Err as KindAccess or KindDecode; empty on success.
func (r FileReport) ErrorKind() string {
	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, indent.ErrDecode),
		errors.Is(r.Err, indent.ErrLineTooLong),
		errors.Is(r.Err, ErrBinaryContent):
		return KindDecode
	default:
		return KindAccess
	}
}

// Service analyses files with an injected logger, tracer and metrics.
// A Service holds no per-file state and is safe for concurrent use.
type Service struct {
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Metrics    *observability.AnalysisMetrics
	Classifier *indent.Classifier

	// MaxLineSize bounds a single line; zero uses indent.DefaultMaxLineSize.
	MaxLineSize int

	// Workers bounds the number of files analysed at once; zero uses GOMAXPROCS.
	Workers int
}

// NewService creates a Service with a default classifier and no-op telemetry.
func NewService(logger *slog.Logger) *Service {
	return &Service{
		Logger:     logger,
		Classifier: indent.NewClassifier(logger),
	}
}

// AnalyzeFiles analyses paths concurrently and returns one report per path,
// in the order given.
func (svc *Service) AnalyzeFiles(ctx context.Context, paths []string) []FileReport {
	reports := make([]FileReport, len(paths))

	var group errgroup.Group

	group.SetLimit(svc.workers())

	for idx, path := range paths {
		group.Go(func() error {
			reports[idx] = svc.AnalyzeFile(ctx, path)

			return nil
		})
	}

	_ = group.Wait() // workers never return errors; failures live in the reports.

	return reports
}

// AnalyzeFile opens path, streams its lines through the aggregator and
// classifies the result. The file is closed on every path.
func (svc *Service) AnalyzeFile(ctx context.Context, path string) FileReport {
	startedAt := time.Now()

	ctx, span := svc.tracer().Start(ctx, spanAnalyzeFile, trace.WithAttributes(attribute.String(observability.AttrFilePath, path)))
	defer span.End()

	report := svc.analyze(ctx, path)
	report.Duration = time.Since(startedAt)

	logger := svc.logger()

	if report.Err != nil {
		span.RecordError(report.Err)
		span.SetStatus(codes.Error, report.ErrorKind())
		logger.InfoContext(ctx, "analysis failed", "path", path, "kind", report.ErrorKind(), "error", report.Err)
	} else {
		span.SetAttributes(
			attribute.String("file.language", report.Language),
			attribute.Int("file.lines", report.Stats.Total),
			attribute.String("indent.type", report.Verdict.Type.String()),
			attribute.Int("indent.width", report.Verdict.Width),
		)
		logger.DebugContext(ctx, "file statistics",
			"path", path,
			"total", report.Stats.Total,
			"spaces", report.Stats.Count(indent.Space),
			"tabs", report.Stats.Count(indent.Tab),
			"none", report.Stats.Count(indent.None),
			"space_runs", report.Stats.SpaceRuns,
		)
		logger.InfoContext(ctx, "file classified",
			"path", path, "type", report.Verdict.Type.String(), "width", report.Verdict.Width)
	}

	outcome := observability.FileOutcome{ErrorKind: report.ErrorKind(), Duration: report.Duration}
	if report.OK() {
		outcome.IndentType = report.Verdict.Type.String()
		outcome.Lines = int64(report.Stats.Total)
	}

	svc.Metrics.RecordFile(ctx, outcome)

	return report
}

func (svc *Service) analyze(ctx context.Context, path string) FileReport {
	report := FileReport{Path: path}

	file, err := os.Open(path)
	if err != nil {
		report.Err = fmt.Errorf("%w: %w", ErrFileAccess, err)

		return report
	}

	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		report.Err = fmt.Errorf("%w: %w", ErrFileAccess, err)

		return report
	}

	if info.IsDir() {
		report.Err = fmt.Errorf("%w: %s is a directory", ErrFileAccess, path)

		return report
	}

	reader := textutil.NewSniffReader(file)

	head, err := textutil.Sniff(reader)
	if err != nil {
		report.Err = fmt.Errorf("%w: %w", ErrFileAccess, err)

		return report
	}

	if textutil.IsBinary(head) {
		report.Err = fmt.Errorf("%w: null byte within the first %d bytes", ErrBinaryContent, textutil.BinarySniffLength)

		return report
	}

	language := enry.GetLanguage(filepath.Base(path), head)

	agg := &indent.Aggregator{Logger: svc.Logger, MaxLineSize: svc.MaxLineSize}

	stats, err := agg.Aggregate(ctx, reader)
	if err != nil {
		if !errors.Is(err, indent.ErrDecode) && !errors.Is(err, indent.ErrLineTooLong) {
			err = fmt.Errorf("%w: %w", ErrFileAccess, err)
		}

		report.Err = err

		return report
	}

	report.Stats = stats
	report.Language = language
	report.Bytes = info.Size()
	report.Verdict = svc.classifier().Classify(ctx, stats)

	return report
}

func (svc *Service) workers() int {
	if svc.Workers > 0 {
		return svc.Workers
	}

	return runtime.GOMAXPROCS(0)
}

func (svc *Service) tracer() trace.Tracer {
	if svc.Tracer == nil {
		return nooptrace.NewTracerProvider().Tracer("")
	}

	return svc.Tracer
}

func (svc *Service) classifier() *indent.Classifier {
	if svc.Classifier == nil {
		return indent.NewClassifier(svc.Logger)
	}

	return svc.Classifier
}

func (svc *Service) logger() *slog.Logger {
	if svc.Logger == nil {
		return slog.Default()
	}

	return svc.Logger
}
