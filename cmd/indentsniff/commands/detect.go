// Package commands implements CLI command handlers for indentsniff.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/indentsniff/pkg/analyze"
	"github.com/Sumatoshi-tech/indentsniff/pkg/config"
	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
	"github.com/Sumatoshi-tech/indentsniff/pkg/observability"
	"github.com/Sumatoshi-tech/indentsniff/pkg/report"
	"github.com/Sumatoshi-tech/indentsniff/pkg/safeconv"
	"github.com/Sumatoshi-tech/indentsniff/pkg/version"
)

// ErrFilesFailed is returned when at least one file could not be analysed.
var ErrFilesFailed = errors.New("files failed")

// DetectCommand holds the flag values of the root indentsniff command.
type DetectCommand struct {
	configPath string
	logLevel   string
	mode       string
	format     string
	workers    int
	noColor    bool
	logJSON    bool
}

// settings is the fully resolved and validated run configuration.
type settings struct {
	classifier  *indent.Classifier
	obs         observability.Config
	format      string
	maxLineSize int
	workers     int
	noColor     bool
}

// NewDetectCommand creates the root command that classifies FILE arguments.
func NewDetectCommand() *cobra.Command {
	dc := &DetectCommand{}

	cmd := &cobra.Command{
		Use:   "indentsniff [flags] FILE [FILE ...]",
		Short: "Detect the indentation style of source files",
		Long: `indentsniff reports, for every file, whether it is indented with spaces,
tabs, a mix of both or not at all, and infers the space width (8, 4 or 2).`,
		Args:          cobra.MinimumNArgs(1),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          dc.run,
	}

	cmd.Flags().StringVar(&dc.configPath, "config", "", "Config file (default: .indentsniff.yaml in CWD, then $HOME)")
	cmd.Flags().StringVar(&dc.logLevel, "loglevel", config.DefaultLogLevel,
		"Log level: notset, debug, info, warning, error, critical")
	cmd.Flags().StringVar(&dc.mode, "mode", config.DefaultMode, "Overall classification: dominant or presence")
	cmd.Flags().StringVar(&dc.format, "format", config.DefaultFormat, "Output format: text, table, json, yaml")
	cmd.Flags().IntVar(&dc.workers, "workers", config.DefaultWorkers, "Number of files analysed in parallel (0 = CPU count)")
	cmd.Flags().BoolVar(&dc.noColor, "no-color", false, "Disable colored text output")
	cmd.Flags().BoolVar(&dc.logJSON, "log-json", config.DefaultLogJSON, "Emit JSON log records")

	return cmd
}

func (dc *DetectCommand) run(cmd *cobra.Command, paths []string) error {
	resolved, err := dc.resolve(cmd)
	if err != nil {
		return err
	}

	resolved.obs.LogWriter = cmd.ErrOrStderr()

	ctx := cmd.Context()

	providers, err := observability.Init(ctx, resolved.obs)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(ctx))
		if shutdownErr != nil {
			providers.Logger.WarnContext(ctx, "telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	metrics, err := observability.NewAnalysisMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	resolved.classifier.Logger = providers.Logger

	svc := &analyze.Service{
		Logger:      providers.Logger,
		Tracer:      providers.Tracer,
		Metrics:     metrics,
		Classifier:  resolved.classifier,
		MaxLineSize: resolved.maxLineSize,
		Workers:     resolved.workers,
	}

	reports := svc.AnalyzeFiles(ctx, paths)

	reportFailures(cmd.ErrOrStderr(), reports)

	err = report.Write(cmd.OutOrStdout(), reports, report.Options{Format: resolved.format, NoColor: resolved.noColor})
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	summary := analyze.Summarize(reports)
	logSummary(ctx, providers.Logger, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, summary.Failed, summary.Files)
	}

	return nil
}

// resolve merges the config file with explicitly set flags and validates the
// result. Nothing is opened or analysed before it succeeds.
func (dc *DetectCommand) resolve(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()

	// An invalid --loglevel is reported even when the config file is broken.
	if flags.Changed("loglevel") {
		_, err := observability.ParseLogLevel(dc.logLevel)
		if err != nil {
			return settings{}, err
		}
	}

	cfg, err := config.LoadConfig(dc.configPath)
	if err != nil {
		return settings{}, err
	}

	if flags.Changed("loglevel") {
		cfg.Logging.Level = dc.logLevel
	}

	if flags.Changed("log-json") {
		cfg.Logging.JSON = dc.logJSON
	}

	if flags.Changed("mode") {
		cfg.Analysis.Mode = dc.mode
	}

	if flags.Changed("format") {
		cfg.Output.Format = dc.format
	}

	if flags.Changed("workers") {
		cfg.Analysis.Workers = dc.workers
	}

	if flags.Changed("no-color") {
		cfg.Output.Color = !dc.noColor
	}

	err = cfg.Validate()
	if err != nil {
		return settings{}, fmt.Errorf("validate config: %w", err)
	}

	level, err := observability.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return settings{}, err
	}

	mode, err := indent.ParseMode(cfg.Analysis.Mode)
	if err != nil {
		return settings{}, err
	}

	format, err := report.ValidateFormat(cfg.Output.Format)
	if err != nil {
		return settings{}, err
	}

	maxLineSize, err := cfg.Analysis.MaxLineBytes()
	if err != nil {
		return settings{}, err
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.RedactPaths = cfg.Telemetry.RedactPaths
	obsCfg.MetricsFile = cfg.Telemetry.MetricsFile

	return settings{
		classifier: &indent.Classifier{
			Mode:               mode,
			Widths:             cfg.Analysis.Widths,
			DominanceThreshold: cfg.Analysis.DominanceThreshold,
			WidthTolerance:     cfg.Analysis.WidthTolerance,
		},
		obs:         obsCfg,
		format:      format,
		maxLineSize: maxLineSize,
		workers:     cfg.Analysis.Workers,
		noColor:     !cfg.Output.Color,
	}, nil
}

func reportFailures(w io.Writer, reports []analyze.FileReport) {
	for _, fileReport := range reports {
		if fileReport.OK() {
			continue
		}

		fmt.Fprintf(w, "%s: %v\n", fileReport.Path, fileReport.Err)
	}
}

func logSummary(ctx context.Context, logger *slog.Logger, summary analyze.Summary) {
	logger.InfoContext(ctx, "run complete",
		"files", summary.Files,
		"failed", summary.Failed,
		"lines", humanize.Comma(int64(summary.Totals.Total)),
		"bytes", humanize.Bytes(safeconv.MustInt64ToUint64(summary.Bytes)),
	)
}
