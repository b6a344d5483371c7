package types

import "testing"

var all = []ExportType{Other, DeferredOther, Markup, DeferredMarkup}

func TestAwaited(t *testing.T) {
	cases := map[ExportType]ExportType{
		Other:          DeferredOther,
		DeferredOther:  DeferredOther,
		Markup:         DeferredMarkup,
		DeferredMarkup: DeferredMarkup,
	}
	for in, want := range cases {
		if got := Awaited(in); got != want {
			t.Fatalf("Awaited(%s) = %s, want %s", in, got, want)
		}
		if Awaited(Awaited(in)) != Awaited(in) {
			t.Fatalf("Awaited is not idempotent on %s", in)
		}
		if !Awaited(in).IsDeferred() {
			t.Fatalf("Awaited(%s) is not deferred", in)
		}
		if Awaited(in).IsMarkup() != in.IsMarkup() {
			t.Fatalf("Awaited(%s) changed the markup bit", in)
		}
	}
}

func TestJoinLaws(t *testing.T) {
	for _, a := range all {
		if Join(a, a) != a {
			t.Fatalf("Join(%s, %s) is not idempotent", a, a)
		}
		for _, b := range all {
			if Join(a, b) != Join(b, a) {
				t.Fatalf("Join(%s, %s) is not commutative", a, b)
			}
			if j := Join(a, b); j < a || j < b {
				t.Fatalf("Join(%s, %s) = %s is not an upper bound", a, b, j)
			}
			for _, c := range all {
				if Join(Join(a, b), c) != Join(a, Join(b, c)) {
					t.Fatalf("Join is not associative on %s %s %s", a, b, c)
				}
			}
		}
	}
	if Join(Markup, DeferredOther) != Markup {
		t.Fatalf("markup must outrank deferred other")
	}
}

func TestPriorityEncoding(t *testing.T) {
	want := map[ExportType]uint8{Other: 0, DeferredOther: 1, Markup: 2, DeferredMarkup: 3}
	for typ, code := range want {
		if uint8(typ) != code {
			t.Fatalf("%s encodes as %d, want %d", typ, uint8(typ), code)
		}
	}
	if ExportType(4).Valid() {
		t.Fatalf("4 must be out of range")
	}
}

func TestTextRoundTrip(t *testing.T) {
	for _, typ := range all {
		text, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", typ, err)
		}
		var back ExportType
		if err := back.UnmarshalText(text); err != nil || back != typ {
			t.Fatalf("UnmarshalText(%q) = %s, %v", text, back, err)
		}
	}
	if _, err := ParseExportType("html"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

func TestExportsNames(t *testing.T) {
	e := Exports{"b": Other, DefaultExport: Markup, "a": DeferredMarkup}
	got := e.Names()
	want := []string{"a", "b", "default"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
	c := e.Clone()
	c["a"] = Other
	if e["a"] != DeferredMarkup {
		t.Fatalf("Clone shares storage")
	}
}
