package project

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"jsxstream/internal/source"
)

// ImportMeta is one relative import of a source file, resolved to the
// project file it names.
type ImportMeta struct {
	Path string // путь файла относительно корня исходников, через "/"
	Span source.Span
}

// FileMeta describes a source file for build ordering.
type FileMeta struct {
	Path    string // относительно корня исходников, через "/"
	Span    source.Span
	Imports []ImportMeta
}

// skipDirs are never searched for sources.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

// CollectSources lists files under root whose extension is in exts, as
// slash-separated paths relative to root in sorted order. Hidden
// directories, node_modules and the directories in skip are left out.
func CollectSources(root string, exts []string, skip ...string) ([]string, error) {
	skipAbs := make([]string, 0, len(skip))
	for _, s := range skip {
		if abs, err := filepath.Abs(s); err == nil {
			skipAbs = append(skipAbs, abs)
		}
	}
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if abs, err := filepath.Abs(path); err == nil && slices.Contains(skipAbs, abs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(exts, filepath.Ext(path)) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(out)
	return out, nil
}

// ResolveImport maps a relative import specifier of the file at from (both
// slash-separated, relative to the source root) to the project file it
// names. Bare specifiers and paths escaping the root yield false.
// Candidates are tried in order: the exact path, path+ext, path/index+ext.
func ResolveImport(from, spec string, exts []string, exists func(string) bool) (string, bool) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return "", false
	}
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(from)))
	joined := filepath.ToSlash(filepath.Clean(filepath.FromSlash(dir + "/" + spec)))
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", false
	}
	candidates := make([]string, 0, 1+2*len(exts))
	if slices.Contains(exts, filepath.Ext(joined)) {
		candidates = append(candidates, joined)
	}
	for _, ext := range exts {
		candidates = append(candidates, joined+ext)
	}
	for _, ext := range exts {
		candidates = append(candidates, joined+"/index"+ext)
	}
	for _, c := range candidates {
		if exists(c) {
			return c, true
		}
	}
	return "", false
}
