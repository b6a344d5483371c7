package buildpipeline

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTimingsSum(t *testing.T) {
	var tm Timings
	tm.Add(StageParse, time.Millisecond)
	tm.Add(StageParse, 2*time.Millisecond)
	tm.Add(StageLower, 4*time.Millisecond)

	if !tm.Has(StageParse) || tm.Has(StageWrite) {
		t.Fatal("Has reports wrong stages")
	}
	if got := tm.Duration(StageParse); got != 3*time.Millisecond {
		t.Fatalf("parse = %v", got)
	}
	if got := tm.Sum(); got != 7*time.Millisecond {
		t.Fatalf("sum = %v", got)
	}
	if got := tm.Sum(StageLower); got != 4*time.Millisecond {
		t.Fatalf("lower = %v", got)
	}
}

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	sink := &LineSink{W: &buf}
	EmitQueued(sink, []string{"a.jsx", "b.jsx"})
	Emit(sink, Event{File: "a.jsx", Stage: StageWrite, Status: StatusDone, Elapsed: 1500 * time.Microsecond})
	Emit(sink, Event{File: "b.jsx", Stage: StageParse, Status: StatusError, Err: errors.New("boom")})
	Emit(sink, Event{Stage: StageLower, Status: StatusWorking})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "compiled a.jsx (1.5ms)" || lines[1] != "failed   b.jsx: boom" {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	Emit(nil, Event{File: "x"})
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.jsx", Status: StatusCached})
	if ev := <-ch; ev.Status != StatusCached {
		t.Fatalf("got %+v", ev)
	}
	ChannelSink{}.OnEvent(Event{})
}
