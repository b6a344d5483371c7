package diag

import (
	"errors"
	"strings"
	"testing"

	"jsxstream/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	sp := func(file source.FileID, start, end uint32) source.Span {
		return source.Span{File: file, Start: start, End: end}
	}
	b.Add(NewError(SynUnexpectedToken, sp(2, 0, 1), "b"))
	b.Add(New(SevWarning, LexBadNumber, sp(1, 5, 6), "w"))
	b.Add(NewError(LexUnknownChar, sp(1, 5, 6), "e"))
	if b.Add(NewError(LexUnknownChar, sp(1, 0, 1), "dropped")) {
		t.Fatalf("bag accepted diagnostic over limit")
	}
	b.Sort()
	got := []string{}
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	if strings.Join(got, ",") != "e,w,b" {
		t.Fatalf("unexpected order: %v", got)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatalf("expected errors and warnings")
	}
	first, ok := b.FirstError()
	if !ok || first.Message != "e" {
		t.Fatalf("FirstError = %v, %v", first, ok)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{File: 1, Start: 2, End: 3}
	b.Add(NewError(SynExpectSemicolon, sp, "one"))
	b.Add(NewError(SynExpectSemicolon, sp, "two"))
	b.Add(NewError(SynExpectExpression, sp, "three"))
	b.Dedup()
	if b.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", b.Len())
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 0, End: 4}
	r.Report(LexUnterminatedString, SevError, sp, "unterminated", nil)
	r.Report(LexUnterminatedString, SevError, sp, "unterminated", nil)
	ReportWarning(r, LexBadEscape, sp, "escape").WithNote(sp, "here").Emit()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if len(bag.Items()[1].Notes) != 1 {
		t.Fatalf("note was lost")
	}
}

func TestFaultIsError(t *testing.T) {
	var err error = Faultf(SemaUnsupportedExportAll, source.Span{File: 1, Start: 0, End: 8}, "export * from %q", "./x")
	var f *Fault
	if !errors.As(err, &f) {
		t.Fatalf("expected *Fault")
	}
	if f.Diag.Severity != SevError {
		t.Fatalf("fault must be an error")
	}
	if !strings.HasPrefix(err.Error(), "SEM3001 1:0-8:") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynJSXTagMismatch:  "SYN2008",
		SemaObjectChild:    "SEM3005",
		IOLoadFileError:    "IO4001",
		ProjImportNotFound: "PRJ5002",
		ObsTimings:         "OBS6001",
		UnknownCode:        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown code title")
	}
}
