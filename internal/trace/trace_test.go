package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(strings.ToUpper(s))
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Fatalf("ParseLevel(%q) = %v", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestStartNestsSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := Start(ctx, ScopeDriver, "build")
	_, inner := Start(ctx, ScopePass, "parse")
	inner.WithExtra("file", "page.jsx").End("ok")
	Pointf(ctx, ScopeFile, "cache", "hit")
	outer.End("")

	var events []jsonEvent
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var ev jsonEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("bad ndjson line %q: %v", line, err)
		}
		events = append(events, ev)
	}
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	if events[1].Name != "parse" || events[1].ParentID != outer.ID() {
		t.Fatalf("parse span not nested under build: %+v", events[1])
	}
	if events[2].Extra["file"] != "page.jsx" || events[2].Detail != "ok" {
		t.Fatalf("end event lost its data: %+v", events[2])
	}
	if events[3].Kind != "point" || events[3].ParentID != outer.ID() {
		t.Fatalf("point event: %+v", events[3])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("sequence not increasing at %d", i)
		}
	}
}

func TestDisabledTracerIsInert(t *testing.T) {
	ctx, span := Start(context.Background(), ScopePass, "parse")
	if span.ID() != 0 {
		t.Fatal("span from a context without tracer must be inert")
	}
	if CurrentSpan(ctx) != 0 {
		t.Fatal("inert span must not become current")
	}
	if span.End("") != 0 {
		t.Fatal("inert span has no duration")
	}
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Fatalf("snapshot = %v", names)
	}

	var out bytes.Buffer
	if err := ring.Dump(&out, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(out.String(), "\n") != 3 || !strings.Contains(out.String(), "• e") {
		t.Fatalf("dump:\n%s", out.String())
	}
}

func TestRingAtErrorLevelKeepsPasses(t *testing.T) {
	ring := NewRingTracer(8, LevelError)
	ring.Emit(&Event{Kind: KindSpanBegin, Scope: ScopePass, Name: "lower"})
	ring.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Name: "element"})
	if got := len(ring.Snapshot()); got != 1 {
		t.Fatalf("kept %d events, want 1", got)
	}
}

func TestMultiCopiesEvents(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiTracer(LevelPhase,
		NewStreamTracer(&a, LevelPhase, FormatText),
		NewStreamTracer(&b, LevelPhase, FormatText),
		NewRingTracer(4, LevelPhase))
	Begin(m, ScopeDriver, "compile", 0).End("")
	if a.String() != b.String() || strings.Count(a.String(), "compile") != 2 {
		t.Fatalf("fan-out mismatch:\n%s\n%s", a.String(), b.String())
	}
	ring, ok := m.Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatal("ring target missing events")
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	line := string(FormatEvent(&Event{
		Time:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Kind:   KindSpanEnd,
		Name:   "print",
		Detail: "minify",
		Extra:  map[string]string{"z": "1", "a": "2"},
	}, FormatText))
	if line != "03:04:05.000 ← print (minify) {a=2, z=1}\n" {
		t.Fatalf("got %q", line)
	}
}

func TestHeartbeatStops(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	h.Stop()
	h.Stop()
	n := len(ring.Snapshot())
	if n == 0 {
		t.Fatal("no heartbeats recorded")
	}
	time.Sleep(5 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatal("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on a disabled tracer")
	}
}
