package analyze

import (
	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

// Summary aggregates a batch of file reports.
type Summary struct {
	// Totals merges the statistics of every successful file.
	Totals *indent.FileStatistics
	Files  int
	Failed int
	Bytes  int64
}

// Summarize folds reports into a Summary.
func Summarize(reports []FileReport) Summary {
	summary := Summary{Totals: indent.NewStatistics(), Files: len(reports)}

	for _, report := range reports {
		if !report.OK() {
			summary.Failed++

			continue
		}

		summary.Bytes += report.Bytes
		summary.Totals.Merge(report.Stats)
	}

	return summary
}
