package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jsxstream/internal/diag"
	"jsxstream/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgBlue, color.Bold),
		note:   mk(color.FgCyan),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(s diag.Severity) string {
	switch s {
	case diag.SevError:
		return p.err(s.String())
	case diag.SevWarning:
		return p.warn(s.String())
	default:
		return p.info(s.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if d.Code == diag.ObsTimings {
			writeTimings(w, d, pal)
			continue
		}
		start, _ := resolve(fs, d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col,
			pal.severity(d.Severity), pal.bold(d.Code.ID()), d.Message)
		writeSnippet(w, fs, d.Primary, opts, pal)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			ns, _ := resolve(fs, n.Span)
			fmt.Fprintf(w, "  %s: %s:%d:%d: %s\n", pal.note("note"),
				formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
}

// writeTimings prints a timing diagnostic without location: its span is
// empty and the last note is the raw JSON payload.
func writeTimings(w io.Writer, d *diag.Diagnostic, pal palette) {
	fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity), pal.bold(d.Code.ID()), d.Message)
	for _, n := range d.Notes {
		if strings.HasPrefix(n.Msg, "{") {
			continue
		}
		fmt.Fprintf(w, "  %s\n", n.Msg)
	}
}

func resolve(fs *source.FileSet, sp source.Span) (source.LineCol, source.LineCol) {
	if fs.Get(sp.File) == nil {
		return source.LineCol{}, source.LineCol{}
	}
	return fs.Resolve(sp)
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, pal palette) {
	f := fs.Get(sp.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(sp)
	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	lastLine := uint32(len(f.LineIdx)) + 1 //nolint:gosec // bounded by file size checks in Add
	last = min(last, lastLine)

	gutterWidth := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", "    ")
		if opts.Width > 0 {
			text = truncate(text, int(opts.Width))
		}
		fmt.Fprintf(w, " %s %s %s\n", pal.gutter(fmt.Sprintf("%*d", gutterWidth, ln)), pal.gutter("|"), text)
		if ln != start.Line {
			continue
		}
		raw := f.GetLine(ln)
		col := int(start.Col) - 1
		col = min(max(col, 0), len(raw))
		pad := runewidth.StringWidth(strings.ReplaceAll(raw[:col], "\t", "    "))
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			stop := min(int(end.Col)-1, len(raw))
			width = max(runewidth.StringWidth(raw[col:stop]), 1)
		} else if end.Line > start.Line {
			width = max(runewidth.StringWidth(raw[col:]), 1)
		}
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gutterWidth), pal.gutter("|"),
			strings.Repeat(" ", pad), pal.caret(marker))
	}
}

func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
