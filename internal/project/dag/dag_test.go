package dag

import (
	"testing"

	"jsxstream/internal/diag"
	"jsxstream/internal/project"
	"jsxstream/internal/source"
)

func batchesToPaths(idx FileIndex, batches [][]FileID) [][]string {
	out := make([][]string, len(batches))
	for i, b := range batches {
		out[i] = idx.Paths(b)
	}
	return out
}

func equalBatches(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func TestBuildIndexIncludesImports(t *testing.T) {
	files := []project.FileMeta{
		{Path: "pages/index.jsx", Imports: []project.ImportMeta{{Path: "ui/card.jsx"}, {Path: "ui/nav.jsx"}}},
		{Path: "ui/nav.jsx"},
	}
	idx := BuildIndex(files)
	want := []string{"pages/index.jsx", "ui/card.jsx", "ui/nav.jsx"}
	if len(idx.IDToPath) != len(want) {
		t.Fatalf("got %d files, want %d", len(idx.IDToPath), len(want))
	}
	for i, p := range want {
		if idx.IDToPath[i] != p || idx.PathToID[p] != FileID(i) {
			t.Fatalf("index mismatch at %d: %q", i, idx.IDToPath[i])
		}
	}
}

func TestImportsComeFirst(t *testing.T) {
	files := []project.FileMeta{
		{Path: "page.jsx", Imports: []project.ImportMeta{{Path: "card.jsx"}, {Path: "layout.jsx"}}},
		{Path: "layout.jsx", Imports: []project.ImportMeta{{Path: "card.jsx"}}},
		{Path: "card.jsx"},
		{Path: "about.jsx"},
	}
	nodes := make([]FileNode, len(files))
	for i, f := range files {
		nodes[i] = FileNode{Meta: f}
	}
	idx := BuildIndex(files)
	g, _ := BuildGraph(idx, nodes)
	topo := ToposortKahn(g)
	if topo.Cyclic {
		t.Fatal("unexpected cycle")
	}
	got := batchesToPaths(idx, topo.Batches)
	want := [][]string{{"about.jsx", "card.jsx"}, {"layout.jsx"}, {"page.jsx"}}
	if !equalBatches(got, want) {
		t.Fatalf("batches = %v, want %v", got, want)
	}
	if len(topo.Order) != 4 {
		t.Fatalf("order = %v", idx.Paths(topo.Order))
	}
}

func TestMissingImportIsWarning(t *testing.T) {
	bag := diag.NewBag(10)
	span := source.Span{File: 1, Start: 7, End: 20}
	meta := project.FileMeta{Path: "page.jsx", Imports: []project.ImportMeta{{Path: "gone.jsx", Span: span}}}
	idx := BuildIndex([]project.FileMeta{meta})
	g, _ := BuildGraph(idx, []FileNode{{Meta: meta, Reporter: diag.BagReporter{Bag: bag}}})

	if g.Present[idx.PathToID["gone.jsx"]] {
		t.Fatal("imported-only file marked present")
	}
	if bag.Len() != 1 {
		t.Fatalf("diagnostics = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.ProjImportNotFound || d.Severity != diag.SevWarning || d.Primary != span {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if bag.HasErrors() {
		t.Fatal("missing import must not fail the build")
	}
}

func TestCyclesAreScheduledLast(t *testing.T) {
	files := []project.FileMeta{
		{Path: "a.jsx", Imports: []project.ImportMeta{{Path: "b.jsx"}}},
		{Path: "b.jsx", Imports: []project.ImportMeta{{Path: "a.jsx"}}},
		{Path: "c.jsx", Imports: []project.ImportMeta{{Path: "c.jsx"}}},
		{Path: "d.jsx"},
	}
	bags := make([]*diag.Bag, len(files))
	nodes := make([]FileNode, len(files))
	for i, f := range files {
		bags[i] = diag.NewBag(10)
		nodes[i] = FileNode{Meta: f, Reporter: diag.BagReporter{Bag: bags[i]}}
	}
	idx := BuildIndex(files)
	g, slots := BuildGraph(idx, nodes)
	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatal("expected a cycle")
	}
	if got := idx.Paths(topo.Cycles); len(got) != 2 || got[0] != "a.jsx" || got[1] != "b.jsx" {
		t.Fatalf("cycles = %v", got)
	}
	got := batchesToPaths(idx, topo.Schedule())
	want := [][]string{{"c.jsx", "d.jsx"}, {"a.jsx", "b.jsx"}}
	if !equalBatches(got, want) {
		t.Fatalf("schedule = %v, want %v", got, want)
	}

	ReportCycles(idx, slots, topo)
	for i, wantN := range []int{1, 1, 1, 0} {
		if bags[i].Len() != wantN {
			t.Fatalf("%s: %d diagnostics, want %d", files[i].Path, bags[i].Len(), wantN)
		}
		if wantN > 0 && bags[i].Items()[0].Code != diag.ProjImportCycle {
			t.Fatalf("%s: code %v", files[i].Path, bags[i].Items()[0].Code)
		}
	}
}
