package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/indentsniff/pkg/analyze"
	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

// FileRecord is the structured form of one file's result.
type FileRecord struct {
	Verdict  *indent.Verdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Stats    *StatsRecord    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Path     string          `json:"path" yaml:"path"`
	Language string          `json:"language,omitempty" yaml:"language,omitempty"`
	Error    string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// StatsRecord is the structured form of [indent.FileStatistics].
type StatsRecord struct {
	SpaceRuns map[int]int `json:"space_runs" yaml:"space_runs"`
	Total     int         `json:"total" yaml:"total"`
	Spaces    int         `json:"spaces" yaml:"spaces"`
	Tabs      int         `json:"tabs" yaml:"tabs"`
	None      int         `json:"none" yaml:"none"`
}

// Records converts reports into structured records. Failed files carry only
// their path and error.
func Records(reports []analyze.FileReport) []FileRecord {
	records := make([]FileRecord, 0, len(reports))

	for _, report := range reports {
		record := FileRecord{Path: report.Path}

		if !report.OK() {
			record.Error = report.Err.Error()
			records = append(records, record)

			continue
		}

		verdict := report.Verdict
		record.Verdict = &verdict
		record.Language = report.Language
		record.Stats = &StatsRecord{
			SpaceRuns: report.Stats.SpaceRuns,
			Total:     report.Stats.Total,
			Spaces:    report.Stats.Count(indent.Space),
			Tabs:      report.Stats.Count(indent.Tab),
			None:      report.Stats.Count(indent.None),
		}

		records = append(records, record)
	}

	return records
}

func writeJSON(w io.Writer, reports []analyze.FileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(Records(reports))
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, reports []analyze.FileReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(Records(reports))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
