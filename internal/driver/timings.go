package driver

import (
	"encoding/json"
	"fmt"

	"jsxstream/internal/diag"
	"jsxstream/internal/observ"
	"jsxstream/internal/source"
)

// timingDiagnostic renders a file's phase report as an info diagnostic:
// one note per phase for people and a last note with the raw report for
// the JSON output.
func timingDiagnostic(path string, report observ.Report) *diag.Diagnostic {
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{},
		fmt.Sprintf("timings: %.2f ms in %d phases, %s", report.TotalMS, len(report.Phases), path))
	for _, p := range report.Phases {
		msg := fmt.Sprintf("%s %.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			msg += " (" + p.Note + ")"
		}
		d.WithNote(source.Span{}, msg)
	}
	if raw, err := json.Marshal(report); err == nil {
		d.WithNote(source.Span{}, string(raw))
	}
	return d
}

// addTimings puts d into bag even when the bag is full: timings were
// asked for explicitly.
func addTimings(bag *diag.Bag, d *diag.Diagnostic) {
	if bag == nil || bag.Add(d) {
		return
	}
	extra := diag.NewBag(bag.Len() + 1)
	extra.Add(d)
	bag.Merge(extra)
}
