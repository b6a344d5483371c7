package diag

import (
	"fmt"

	"jsxstream/internal/source"
)

// Note is a secondary span with a short explanation.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) *Diagnostic {
	return &Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) *Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d *Diagnostic) WithNote(sp source.Span, msg string) *Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// Fault carries a fatal diagnostic through a Go error return.
// Passes that must abort a file (unsupported constructs, author errors)
// return *Fault; the driver moves it into the file's Bag.
type Fault struct {
	Diag *Diagnostic
}

// Faultf builds an error-severity Fault.
func Faultf(code Code, primary source.Span, format string, args ...any) *Fault {
	return &Fault{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

func (f *Fault) Error() string {
	if f == nil || f.Diag == nil {
		return "<nil fault>"
	}
	return fmt.Sprintf("%s %s: %s", f.Diag.Code.ID(), f.Diag.Primary, f.Diag.Message)
}
