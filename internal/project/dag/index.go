package dag

import (
	"slices"

	"jsxstream/internal/project"
)

type FileID uint32

// FileIndex numbers every file that is compiled or imported, in path order.
type FileIndex struct {
	PathToID map[string]FileID
	IDToPath []string
}

func BuildIndex(files []project.FileMeta) FileIndex {
	uniq := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f.Path != "" {
			uniq[f.Path] = struct{}{}
		}
		for _, imp := range f.Imports {
			if imp.Path != "" {
				uniq[imp.Path] = struct{}{}
			}
		}
	}
	paths := make([]string, 0, len(uniq))
	for p := range uniq {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	idx := FileIndex{PathToID: make(map[string]FileID, len(paths)), IDToPath: paths}
	for i, p := range paths {
		idx.PathToID[p] = FileID(i)
	}
	return idx
}

func (idx FileIndex) Paths(ids []FileID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToPath[id]
	}
	return out
}
