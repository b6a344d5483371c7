package observ

import (
	"strings"
	"testing"
	"time"
)

func TestReportMergesPhasesByName(t *testing.T) {
	tm := NewTimer()
	tm.Add("parse", 2*time.Millisecond, "")
	tm.Add("lower", time.Millisecond, "2 roots")
	tm.Add("parse", 3*time.Millisecond, "")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("got %d phases, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "parse" || r.Phases[0].DurationMS != 5 {
		t.Fatalf("parse phase = %+v", r.Phases[0])
	}
	if r.Phases[1].Note != "2 roots" {
		t.Fatalf("lower note = %q", r.Phases[1].Note)
	}
	if r.TotalMS != 6 {
		t.Fatalf("total = %v", r.TotalMS)
	}
}

func TestBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("infer")
	tm.End(idx, "cached")
	tm.End(42, "ignored")

	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n  infer") || !strings.Contains(s, "// cached") {
		t.Fatalf("summary:\n%s", s)
	}
	if !strings.Contains(s, "total") {
		t.Fatalf("summary has no total:\n%s", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("y", time.Second, "")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer reported phases")
	}
}
