package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"jsxstream/internal/ast"
	"jsxstream/internal/diag"
	"jsxstream/internal/parser"
	"jsxstream/internal/project"
	"jsxstream/internal/sema"
	"jsxstream/internal/source"
	"jsxstream/internal/trace"
	"jsxstream/internal/types"
)

var (
	errImportNotFound = errors.New("no such file")
	errImportCycle    = errors.New("import cycle")
)

// chain lists the files whose inference is in progress on this call path.
// A file found here again is a cycle: its exports stay unknown, which also
// keeps the store from waiting on its own computation.
type chain struct {
	path string
	next *chain
}

type chainKey struct{}

func withChain(ctx context.Context, path string) context.Context {
	next, _ := ctx.Value(chainKey{}).(*chain)
	return context.WithValue(ctx, chainKey{}, &chain{path: path, next: next})
}

func inChain(ctx context.Context, path string) bool {
	c, _ := ctx.Value(chainKey{}).(*chain)
	for ; c != nil; c = c.next {
		if c.path == path {
			return true
		}
	}
	return false
}

// importRoot returns the directory imports of path may reach and path
// relative to it. Without a configured root that is the file system root.
func importRoot(path, root string) (string, string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if root != "" {
		if r, err := filepath.Abs(root); err == nil {
			if rel, err := filepath.Rel(r, abs); err == nil && !strings.HasPrefix(rel, "..") {
				return r, filepath.ToSlash(rel)
			}
		}
	}
	fsRoot := filepath.VolumeName(abs) + string(filepath.Separator)
	rel, err := filepath.Rel(fsRoot, abs)
	if err != nil {
		return fsRoot, filepath.ToSlash(abs)
	}
	return fsRoot, filepath.ToSlash(rel)
}

func regularFile(root string) func(string) bool {
	return func(rel string) bool {
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		return err == nil && info.Mode().IsRegular()
	}
}

type importFailure struct {
	spec string
	err  error
}

// importResolver feeds the exports of relatively imported files into one
// inference pass. Bare specifiers are packages and stay unresolved.
type importResolver struct {
	ctx      context.Context
	opts     *Options
	root     string
	from     string
	failures []importFailure
	onHit    func() // импорт взят из кеша
}

func newImportResolver(ctx context.Context, opts *Options, path string) *importResolver {
	root, rel := importRoot(path, opts.Root)
	abs := filepath.Join(root, filepath.FromSlash(rel))
	return &importResolver{ctx: withChain(ctx, abs), opts: opts, root: root, from: rel}
}

func (r *importResolver) ResolveExports(spec string) (types.Exports, bool) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		return nil, false
	}
	rel, ok := project.ResolveImport(r.from, spec, r.opts.resolveExts(), regularFile(r.root))
	if !ok {
		r.failures = append(r.failures, importFailure{spec: spec, err: errImportNotFound})
		return nil, false
	}
	target := filepath.Join(r.root, filepath.FromSlash(rel))
	if inChain(r.ctx, target) {
		trace.Pointf(r.ctx, trace.ScopeFile, "import-cycle", rel)
		r.failures = append(r.failures, importFailure{spec: spec, err: errImportCycle})
		return nil, false
	}
	exports, err := r.exportsOf(target)
	if err != nil {
		r.failures = append(r.failures, importFailure{spec: spec, err: err})
		return nil, false
	}
	return exports, true
}

func (r *importResolver) exportsOf(path string) (types.Exports, error) {
	if r.opts.Store != nil {
		res, err := r.opts.Store.GetOrCompute(r.ctx, path)
		if err != nil {
			return nil, resourceErr(err)
		}
		r.opts.Metrics.importLookup(res.Hit)
		if res.Hit && r.onHit != nil {
			r.onHit()
		}
		return res.Exports, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResourceError{Op: "read", Path: path, Err: err}
	}
	r.opts.Metrics.importLookup(false)
	return (&inferer{opts: *r.opts}).Infer(r.ctx, path, content)
}

// report turns failed relative imports into warnings on the import
// statements that named them.
func (r *importResolver) report(prog *ast.Program, rep diag.Reporter) {
	if len(r.failures) == 0 {
		return
	}
	spans := importSpans(prog)
	// один и тот же путь может встретиться в нескольких import
	rep = diag.NewDedupReporter(rep)
	for _, f := range r.failures {
		sp := spans[f.spec]
		switch {
		case errors.Is(f.err, errImportNotFound):
			diag.ReportWarning(rep, diag.ProjImportNotFound, sp, "cannot resolve "+f.spec+"; its components are treated as deferred").Emit()
		case errors.Is(f.err, errImportCycle):
			diag.ReportWarning(rep, diag.ProjImportCycle, sp, f.spec+" is part of an import cycle; its exports are unknown here").Emit()
		default:
			diag.ReportWarning(rep, diag.ProjImportNotFound, sp, "cannot infer "+f.spec+": "+f.err.Error()).Emit()
		}
	}
}

// importSpans maps each module specifier of prog to the first statement
// naming it.
func importSpans(prog *ast.Program) map[string]source.Span {
	out := make(map[string]source.Span)
	if prog == nil {
		return out
	}
	for _, stmt := range prog.Stmts {
		var spec string
		switch s := stmt.Data.(type) {
		case *ast.SImport:
			spec = s.Path
		case *ast.SExportFrom:
			spec = s.Path
		case *ast.SExportStar:
			spec = s.Path
		default:
			continue
		}
		if _, seen := out[spec]; !seen {
			out[spec] = stmt.Span
		}
	}
	return out
}

// inferer runs parsing and inference for files reached through imports.
// It implements typeinfo.Inferer.
type inferer struct {
	opts Options
}

func (in *inferer) Infer(ctx context.Context, path string, content []byte) (types.Exports, error) {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "infer-import")
	defer span.End("")
	span.WithExtra("file", path)

	fs := source.NewFileSet()
	id, err := fs.AddBytes(path, content)
	if err != nil {
		return nil, &ResourceError{Op: "decode", Path: path, Err: err}
	}
	bag := diag.NewBag(1)
	res := parser.ParseFile(fs.Get(id), parser.Options{
		TypeScript: isTypeScript(path),
		MaxErrors:  1,
		Reporter:   diag.BagReporter{Bag: bag},
	})
	if first, ok := bag.FirstError(); ok {
		return nil, &diag.Fault{Diag: first}
	}
	if res.Program == nil {
		return nil, diag.Faultf(diag.SynUnexpectedToken, source.Span{}, "%s could not be parsed", path)
	}
	r := newImportResolver(ctx, &in.opts, path)
	out, err := sema.Infer(res.Program, sema.Options{Imports: r})
	if err != nil {
		return nil, err
	}
	return out.Exports, nil
}
