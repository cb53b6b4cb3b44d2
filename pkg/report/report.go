package report

import (
	"io"
	"strconv"

	"github.com/Sumatoshi-tech/indentsniff/pkg/analyze"
)

// Options controls rendering.
type Options struct {
	Format  string
	NoColor bool
}

// Write renders reports to w in the requested format. Text and table output
// skip failed files; JSON and YAML include them with their error message
// and no verdict.
func Write(w io.Writer, reports []analyze.FileReport, opts Options) error {
	format, err := ValidateFormat(opts.Format)
	if err != nil {
		return err
	}

	switch format {
	case FormatTable:
		return writeTable(w, reports)
	case FormatJSON:
		return writeJSON(w, reports)
	case FormatYAML:
		return writeYAML(w, reports)
	default:
		return writeText(w, reports, opts.NoColor)
	}
}

// widthLabel renders an inferred width or "unknown".
func widthLabel(width int) string {
	if width <= 0 {
		return widthUnknown
	}

	return strconv.Itoa(width)
}

const widthUnknown = "unknown"
