package diagfmt

import (
	"encoding/json"
	"io"

	"jsxstream/internal/diag"
	"jsxstream/internal/source"
)

// Location is a span in machine-readable form. Line and column fields are
// only filled when JSONOpts.IncludePositions is set.
type Location struct {
	Path    string `json:"path"`
	Start   uint32 `json:"start"`
	End     uint32 `json:"end"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
	EndLine uint32 `json:"end_line,omitempty"`
	EndCol  uint32 `json:"end_col,omitempty"`
}

type NoteEntry struct {
	Message string   `json:"message"`
	At      Location `json:"at"`
}

// Entry is one diagnostic.
type Entry struct {
	Severity string      `json:"severity"`
	Code     string      `json:"code"`
	Title    string      `json:"title"`
	Message  string      `json:"message"`
	At       Location    `json:"at"`
	Notes    []NoteEntry `json:"notes,omitempty"`
}

// Report is the document written by JSON.
type Report struct {
	Diagnostics []Entry `json:"diagnostics"`
	Count       int     `json:"count"`
	Errors      int     `json:"errors"`
	Warnings    int     `json:"warnings"`
	// Truncated: JSONOpts.Max отрезал часть диагностик
	Truncated bool `json:"truncated,omitempty"`
}

func locate(fs *source.FileSet, span source.Span, opts JSONOpts) Location {
	loc := Location{
		Path:  formatPath(fs, span.File, opts.PathMode),
		Start: span.Start,
		End:   span.End,
	}
	if !opts.IncludePositions || int(span.File) >= fs.Len() {
		return loc
	}
	start, end := fs.Resolve(span)
	loc.Line, loc.Col = start.Line, start.Col
	loc.EndLine, loc.EndCol = end.Line, end.Col
	return loc
}

// BuildReport converts bag without serializing it. Timing diagnostics
// always keep their notes since the payload lives there.
func BuildReport(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	var rep Report
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			rep.Errors++
		case diag.SevWarning:
			rep.Warnings++
		}
	}
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
		rep.Truncated = true
	}

	rep.Diagnostics = make([]Entry, 0, len(items))
	for _, d := range items {
		e := Entry{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			At:       locate(fs, d.Primary, opts),
		}
		if opts.IncludeNotes || d.Code == diag.ObsTimings {
			for _, n := range d.Notes {
				e.Notes = append(e.Notes, NoteEntry{Message: n.Msg, At: locate(fs, n.Span, opts)})
			}
		}
		rep.Diagnostics = append(rep.Diagnostics, e)
	}
	rep.Count = len(rep.Diagnostics)
	return rep
}

// JSON writes bag as one indented Report document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(bag, fs, opts))
}
