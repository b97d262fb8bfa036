package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"taglist/internal/diag"
	"taglist/internal/source"
)

type palette struct {
	sev  map[diag.Severity]*color.Color
	code *color.Color
	pos  *color.Color
	mark *color.Color
	fix  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
		code: color.New(color.Bold),
		pos:  color.New(color.FgHiBlack),
		mark: color.New(color.FgGreen, color.Bold),
		fix:  color.New(color.FgBlue),
	}
	all := []*color.Color{p.code, p.pos, p.mark, p.fix}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждой диагностики печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку ввода с подчёркиванием ^~~~ по Span и, по опции, предложенные исправления.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	start, end := fs.Resolve(d.Primary)
	f := fs.Get(d.Primary.File)
	sevColor, ok := pal.sev[d.Severity]
	if !ok {
		sevColor = pal.code
	}

	header := fmt.Sprintf("%s %s %s",
		pal.pos.Sprintf("%s:%d:%d:", formatPath(f, opts.PathMode), start.Line, start.Col),
		sevColor.Sprint(d.Severity.String()),
		pal.code.Sprintf("%s:", d.Code.ID()))
	if _, err := fmt.Fprintf(w, "%s %s\n", header, Localize(d, opts.Lang)); err != nil {
		return err
	}

	if f != nil {
		line := displayLine(f.GetLine(start.Line))
		if line != "" {
			if _, err := fmt.Fprintf(w, "  %s\n  %s\n", line, pal.mark.Sprint(underline(line, start, end))); err != nil {
				return err
			}
		}
	}

	if opts.ShowFixes {
		for _, fx := range d.Fixes {
			if _, err := fmt.Fprintf(w, "  %s %s\n", pal.fix.Sprint("fix:"), fx.Title); err != nil {
				return err
			}
		}
	}
	return nil
}

// displayLine replaces tabs so that the underline width matches what a
// terminal shows.
func displayLine(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}

// underline builds "   ^~~~" under the span columns. Spans running past the
// end of the line are clipped to it.
func underline(line string, start, end source.LineCol) string {
	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	endCol := len(line)
	if end.Line == start.Line && int(end.Col)-1 < endCol {
		endCol = int(end.Col) - 1
	}
	if endCol < startCol {
		endCol = startCol
	}
	pad := runewidth.StringWidth(line[:startCol])
	width := runewidth.StringWidth(line[startCol:endCol])
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}
