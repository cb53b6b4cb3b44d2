package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/indentsniff/pkg/analyze"
	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

func writeTable(w io.Writer, reports []analyze.FileReport) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false

	tbl.AppendHeader(table.Row{"File", "Language", "Lines", "Spaces", "Tabs", "Type", "Presence", "Dominant", "Width"})

	analysed := 0

	for _, report := range reports {
		if !report.OK() {
			continue
		}

		analysed++

		verdict := report.Verdict

		width := "-"
		if verdict.WidthInferred {
			width = widthLabel(verdict.Width)
		}

		tbl.AppendRow(table.Row{
			report.Path,
			report.Language,
			humanize.Comma(int64(report.Stats.Total)),
			humanize.Comma(int64(report.Stats.Count(indent.Space))),
			humanize.Comma(int64(report.Stats.Count(indent.Tab))),
			verdict.Type.String(),
			verdict.Presence.String(),
			verdict.Dominant.String(),
			width,
		})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d files", analysed)})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}
