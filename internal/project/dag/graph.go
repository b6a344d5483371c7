// Package dag orders the files of a build so that every file comes after
// the files it imports; their type information is then already cached
// when the importer is compiled.
package dag

import (
	"fmt"
	"slices"
	"strings"

	"jsxstream/internal/diag"
	"jsxstream/internal/project"
)

// Graph: Edges[dep] перечисляет файлы, импортирующие dep.
type Graph struct {
	Edges   [][]FileID
	Indeg   []int  // число импортов каждого файла среди присутствующих
	Present []bool // файл компилируется, а не только упоминается в импорте
}

type FileNode struct {
	Meta     project.FileMeta
	Reporter diag.Reporter
}

type FileSlot struct {
	Meta     project.FileMeta
	Reporter diag.Reporter
	Present  bool
}

// BuildGraph links importers to their imports. Imports of files outside
// the build are reported as warnings and ignored; a file importing itself
// is reported as a one-file cycle.
func BuildGraph(idx FileIndex, nodes []FileNode) (Graph, []FileSlot) {
	n := len(idx.IDToPath)
	g := Graph{
		Edges:   make([][]FileID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	slots := make([]FileSlot, n)
	for i, p := range idx.IDToPath {
		slots[i].Meta.Path = p
	}
	for _, node := range nodes {
		id, ok := idx.PathToID[node.Meta.Path]
		if !ok || slots[id].Present {
			continue
		}
		slots[id] = FileSlot{Meta: node.Meta, Reporter: node.Reporter, Present: true}
		g.Present[id] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present {
			continue
		}
		seen := make(map[FileID]bool, len(slot.Meta.Imports))
		for _, imp := range slot.Meta.Imports {
			to, ok := idx.PathToID[imp.Path]
			if !ok || seen[to] {
				continue
			}
			seen[to] = true
			switch {
			case int(to) == from:
				report(slot, diag.ProjImportCycle, imp, fmt.Sprintf("%s imports itself", slot.Meta.Path))
			case !g.Present[to]:
				report(slot, diag.ProjImportNotFound, imp,
					fmt.Sprintf("%s imports %s, which is not part of the build", slot.Meta.Path, imp.Path))
			default:
				g.Edges[to] = append(g.Edges[to], FileID(from))
				g.Indeg[from]++
			}
		}
	}
	for i := range g.Edges {
		slices.Sort(g.Edges[i])
	}
	return g, slots
}

func report(slot *FileSlot, code diag.Code, imp project.ImportMeta, msg string) {
	if slot.Reporter == nil {
		return
	}
	slot.Reporter.Report(code, diag.SevWarning, imp.Span, msg, nil)
}

// ReportCycles warns every file left in a cycle. Cycles are legal; such
// files are compiled last and see each other's exports as unknown.
func ReportCycles(idx FileIndex, slots []FileSlot, topo *Topo) {
	if !topo.Cyclic {
		return
	}
	summary := strings.Join(idx.Paths(topo.Cycles), ", ")
	for _, id := range topo.Cycles {
		slot := &slots[id]
		if slot.Reporter == nil {
			continue
		}
		slot.Reporter.Report(diag.ProjImportCycle, diag.SevWarning, slot.Meta.Span,
			fmt.Sprintf("%s is part of an import cycle among: %s", slot.Meta.Path, summary), nil)
	}
}
