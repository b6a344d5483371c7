package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"

	"jsxstream/internal/ast"
	"jsxstream/internal/buildpipeline"
	"jsxstream/internal/diag"
	"jsxstream/internal/format"
	"jsxstream/internal/lower"
	"jsxstream/internal/observ"
	"jsxstream/internal/parser"
	"jsxstream/internal/sema"
	"jsxstream/internal/source"
	"jsxstream/internal/trace"
	"jsxstream/internal/typeinfo"
	"jsxstream/internal/types"
)

// CompileResult is the outcome of compiling one file. Output is empty
// when Bag holds an error.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Output  string
	Exports types.Exports
	Stats   lower.Stats
	Timings *observ.Report
}

// Failed reports whether a diagnostic stopped the compile.
func (r *CompileResult) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// stageHook observes the stages of one file for progress reporting.
type stageHook func(stage buildpipeline.Stage, status buildpipeline.Status, elapsed time.Duration)

// unit is one file between loading and code generation.
type unit struct {
	path  string
	raw   []byte
	fs    *source.FileSet
	file  *source.File
	prog  *ast.Program
	bag   *diag.Bag
	timer *observ.Timer
	hook  stageHook
	spent buildpipeline.Timings
}

// Compile turns the JSX of the file at path into streaming JavaScript.
// Faults in the input end up in the result's Bag; the returned error is
// reserved for I/O (*ResourceError) and cancellation.
func Compile(ctx context.Context, path string, opts Options) (*CompileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "compile")
	defer span.End("")
	span.WithExtra("file", path)

	fs := source.NewFileSetWithBase(filepath.Dir(path))
	u, err := load(ctx, fs, path, opts, nil)
	if err != nil {
		return nil, err
	}
	return u.compile(ctx, opts)
}

// CompileFile compiles in and writes the program to out. Nothing is
// written when the compile fails.
func CompileFile(ctx context.Context, in, out string, opts Options) (*CompileResult, error) {
	res, err := Compile(ctx, in, opts)
	if err != nil || res.Failed() {
		return res, err
	}
	if err := writeOutput(out, res.Output); err != nil {
		return res, err
	}
	return res, nil
}

func writeOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &ResourceError{Op: "write", Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return &ResourceError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// CompileSource compiles src as if it were the file name. Relative
// imports resolve against the directory of name.
func CompileSource(ctx context.Context, name string, src []byte, opts Options) (*CompileResult, error) {
	fs := source.NewFileSet()
	u := newUnit(fs, name, opts, nil)
	u.raw = src
	u.file = fs.Get(fs.AddVirtual(name, src))
	if err := u.parse(ctx, opts); err != nil {
		return nil, err
	}
	return u.compile(ctx, opts)
}

func newUnit(fs *source.FileSet, path string, opts Options, hook stageHook) *unit {
	u := &unit{path: path, fs: fs, hook: hook, bag: diag.NewBag(opts.MaxDiagnostics)}
	if opts.Timings {
		u.timer = observ.NewTimer()
	}
	return u
}

// load reads and parses path into fs.
func load(ctx context.Context, fs *source.FileSet, path string, opts Options, hook stageHook) (*unit, error) {
	u := newUnit(fs, path, opts, hook)
	err := u.phase(ctx, buildpipeline.StageLoad, func(context.Context) error {
		// #nosec G304 -- path is provided by the caller
		raw, err := os.ReadFile(path)
		if err != nil {
			return &ResourceError{Op: "read", Path: path, Err: err}
		}
		id, err := fs.AddBytes(path, raw)
		if err != nil {
			return &ResourceError{Op: "decode", Path: path, Err: err}
		}
		u.raw = raw
		u.file = fs.Get(id)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := u.parse(ctx, opts); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *unit) parse(ctx context.Context, opts Options) error {
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return err
	}
	return u.phase(ctx, buildpipeline.StageParse, func(context.Context) error {
		res := parser.ParseFile(u.file, parser.Options{
			TypeScript: isTypeScript(u.path),
			MaxErrors:  maxErrors,
			Reporter:   diag.BagReporter{Bag: u.bag},
		})
		u.prog = res.Program
		return nil
	})
}

// phase runs one stage of u under a trace span, the phase timer and the
// progress hook.
func (u *unit) phase(ctx context.Context, stage buildpipeline.Stage, fn func(context.Context) error) error {
	ctx, span := trace.Start(ctx, trace.ScopePass, string(stage))
	idx := u.timer.Begin(string(stage))
	if u.hook != nil {
		u.hook(stage, buildpipeline.StatusWorking, 0)
	}
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	u.timer.End(idx, "")
	u.spent.Add(stage, elapsed)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	return err
}

func (u *unit) parsed() bool {
	return u.prog != nil && !u.bag.HasErrors()
}

// compile runs inference, lowering and printing on a parsed unit.
func (u *unit) compile(ctx context.Context, opts Options) (*CompileResult, error) {
	start := time.Now()
	res := &CompileResult{FileSet: u.fs, File: u.file, Bag: u.bag}
	defer func() {
		ok := !res.Bag.HasErrors()
		opts.Metrics.fileDone(ok, time.Since(start), res.Stats.Deferred)
		u.finishTimings(res)
	}()
	if !u.parsed() {
		return res, nil
	}

	var inferred sema.Result
	err := u.phase(ctx, buildpipeline.StageInfer, func(ctx context.Context) error {
		r := newImportResolver(ctx, &opts, u.path)
		if u.hook != nil {
			r.onHit = func() { u.hook(buildpipeline.StageInfer, buildpipeline.StatusCached, 0) }
		}
		var err error
		inferred, err = sema.Infer(u.prog, sema.Options{Imports: r})
		r.report(u.prog, diag.BagReporter{Bag: u.bag})
		if err != nil {
			return err
		}
		if opts.Store != nil {
			if err := opts.Store.Put(u.path, typeinfo.NewRecord(u.raw, inferred.Exports)); err != nil {
				return &ResourceError{Op: "write", Path: opts.Store.RecordPath(u.path), Err: err}
			}
		}
		return nil
	})
	if err := u.absorb(err); err != nil {
		return res, err
	}
	if u.bag.HasErrors() {
		return res, nil
	}
	res.Exports = inferred.Exports

	l := lower.New(lower.Options{
		Runtime: opts.Runtime,
		Types:   inferred,
		IDs:     opts.IDs,
		Styles:  opts.Styles,
	})
	err = u.phase(ctx, buildpipeline.StageLower, func(context.Context) error {
		return l.Program(u.prog)
	})
	res.Stats = l.Stats()
	if err := u.absorb(err); err != nil {
		return res, err
	}
	if u.bag.HasErrors() {
		return res, nil
	}

	_ = u.phase(ctx, buildpipeline.StagePrint, func(context.Context) error {
		res.Output = format.Program(u.prog, format.Options{Minify: opts.Minify})
		return nil
	})
	return res, nil
}

// absorb moves a fault into the bag; other errors are returned.
func (u *unit) absorb(err error) error {
	if err == nil {
		return nil
	}
	var fault *diag.Fault
	if errors.As(err, &fault) && fault.Diag != nil {
		u.bag.Add(fault.Diag)
		return nil
	}
	return err
}

func (u *unit) finishTimings(res *CompileResult) {
	if u.timer == nil {
		return
	}
	report := u.timer.Report()
	res.Timings = &report
	addTimings(u.bag, timingDiagnostic(u.path, report))
}

// Typecheck is the cache contract on a caller-chosen record path: when
// the record at out matches the bytes of in its exports are returned
// without inference, otherwise in is inferred and out rewritten.
func Typecheck(ctx context.Context, in, out string, opts Options) (types.Exports, bool, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "typecheck")
	defer span.End("")
	span.WithExtra("file", in)

	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(in)
	if err != nil {
		return nil, false, &ResourceError{Op: "read", Path: in, Err: err}
	}
	hash := typeinfo.HashBytes(content)
	if rec, err := typeinfo.ReadFile(out); err == nil && rec.Version == typeinfo.Version && rec.Matches(hash) {
		opts.Metrics.importLookup(true)
		return rec.Exports, true, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		trace.Pointf(ctx, trace.ScopeFile, "cache-corrupt", err.Error())
	}
	opts.Metrics.importLookup(false)

	exports, err := (&inferer{opts: opts}).Infer(ctx, in, content)
	if err != nil {
		return nil, false, err
	}
	if err := typeinfo.WriteFile(out, typeinfo.NewRecord(content, exports)); err != nil {
		return nil, false, &ResourceError{Op: "write", Path: out, Err: err}
	}
	return exports, false, nil
}

// FaultDiagnostic extracts the diagnostic of a fault returned by Typecheck.
func FaultDiagnostic(err error) (*diag.Diagnostic, bool) {
	var fault *diag.Fault
	if errors.As(err, &fault) && fault.Diag != nil {
		return fault.Diag, true
	}
	return nil, false
}

// Exports returns the inferred exports of the file at path, through
// opts.Store when there is one. hit reports a cache hit.
func Exports(ctx context.Context, path string, opts Options) (exports types.Exports, hit bool, err error) {
	if opts.Store != nil {
		res, err := opts.Store.GetOrCompute(ctx, path)
		if err != nil {
			return nil, false, resourceErr(err)
		}
		return res.Exports, res.Hit, nil
	}
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, &ResourceError{Op: "read", Path: path, Err: err}
	}
	exports, err = (&inferer{opts: opts}).Infer(ctx, path, content)
	return exports, false, err
}
