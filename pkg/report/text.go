package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/indentsniff/pkg/analyze"
	"github.com/Sumatoshi-tech/indentsniff/pkg/indent"
)

type palette struct {
	header  *color.Color
	spaces  *color.Color
	tabs    *color.Color
	mixed   *color.Color
	none    *color.Color
	unknown *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		header:  color.New(color.Bold),
		spaces:  color.New(color.FgGreen),
		tabs:    color.New(color.FgCyan),
		mixed:   color.New(color.FgYellow),
		none:    color.New(color.FgHiBlack),
		unknown: color.New(color.FgRed),
	}

	if noColor {
		for _, c := range []*color.Color{p.header, p.spaces, p.tabs, p.mixed, p.none, p.unknown} {
			c.DisableColor()
		}
	}

	return p
}

func (p palette) typeLabel(t indent.Type) string {
	switch t {
	case indent.TypeSpaces:
		return p.spaces.Sprint(t)
	case indent.TypeTabs:
		return p.tabs.Sprint(t)
	case indent.TypeMixed:
		return p.mixed.Sprint(t)
	default:
		return p.none.Sprint(t)
	}
}

func writeText(w io.Writer, reports []analyze.FileReport, noColor bool) error {
	p := newPalette(noColor)

	for _, report := range reports {
		if !report.OK() {
			continue
		}

		err := writeTextVerdict(w, p, report)
		if err != nil {
			return fmt.Errorf("write %s: %w", report.Path, err)
		}
	}

	return nil
}

func writeTextVerdict(w io.Writer, p palette, report analyze.FileReport) error {
	verdict := report.Verdict

	_, err := fmt.Fprintf(w, "%s\nIndent Type: %s\nPresence Type: %s\nDominant Type: %s\n",
		p.header.Sprintf("==> %s <==", report.Path),
		p.typeLabel(verdict.Type),
		p.typeLabel(verdict.Presence),
		p.typeLabel(verdict.Dominant),
	)
	if err != nil {
		return err
	}

	if !verdict.WidthInferred {
		return nil
	}

	width := widthLabel(verdict.Width)
	if !verdict.WidthKnown() {
		width = p.unknown.Sprint(width)
	}

	_, err = fmt.Fprintf(w, "Space Width: %s\n", width)

	return err
}
