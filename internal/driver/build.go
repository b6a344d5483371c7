package driver

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"jsxstream/internal/buildpipeline"
	"jsxstream/internal/diag"
	"jsxstream/internal/lower"
	"jsxstream/internal/project"
	"jsxstream/internal/project/dag"
	"jsxstream/internal/source"
	"jsxstream/internal/trace"
)

// BuildOptions configure compiling a source tree.
type BuildOptions struct {
	Options
	Jobs     int    // 0: GOMAXPROCS
	Out      string // каталог результата; "" — <root>/dist
	Progress buildpipeline.ProgressSink
}

// FileResult is the outcome for one file of a build.
type FileResult struct {
	Path  string // относительно корня исходников, через "/"
	Out   string // "" when nothing was written
	Bag   *diag.Bag
	Stats lower.Stats
	Err   error // I/O failure, see ResourceError
}

func (f FileResult) Failed() bool {
	return f.Err != nil || f.Bag == nil || f.Bag.HasErrors()
}

// BuildResult collects a build in source path order.
type BuildResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Batches is the compile order; files of one batch ran concurrently.
	Batches [][]string
	Cycles  []string
	Timings buildpipeline.Timings
	Elapsed time.Duration
}

// Failed counts files that produced no output.
func (r *BuildResult) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed() {
			n++
		}
	}
	return n
}

// Build compiles the project described by m.
func Build(ctx context.Context, m *project.Manifest, opts BuildOptions) (*BuildResult, error) {
	opts.Options = OptionsFromManifest(m, opts.Options)
	if opts.Out == "" {
		opts.Out = m.OutDir()
	}
	if opts.Jobs == 0 {
		opts.Jobs = m.Config.Build.Jobs
	}
	return BuildDir(ctx, m.SourceRoot(), opts)
}

// BuildDir compiles every source file under root into opts.Out, keeping
// the relative layout. Files are parsed in parallel, then compiled in
// dependency order so each file sees the cached exports of its imports.
// Files in import cycles are compiled last, one at a time.
func BuildDir(ctx context.Context, root string, opts BuildOptions) (*BuildResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "build")
	defer span.End("")
	span.WithExtra("root", root)

	started := time.Now()
	if opts.Out == "" {
		opts.Out = filepath.Join(root, "dist")
	}
	if opts.Root == "" {
		opts.Root = root
	}
	// сводка по стадиям собирается в BuildResult.Timings
	opts.Timings = false
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	files, err := project.CollectSources(root, opts.extensions(), opts.Out)
	if err != nil {
		return nil, &ResourceError{Op: "read", Path: root, Err: err}
	}
	result := &BuildResult{
		FileSet: source.NewFileSetWithBase(root),
		Files:   make([]FileResult, len(files)),
	}
	if len(files) == 0 {
		return result, nil
	}
	buildpipeline.EmitQueued(opts.Progress, files)

	// Фаза 1: загрузка и разбор, порядок не важен
	units := make([]*unit, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, rel := range files {
		i, rel := i, rel
		result.Files[i].Path = rel
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hook := progressHook(opts.Progress, rel)
			u, err := load(gctx, result.FileSet, filepath.Join(root, filepath.FromSlash(rel)), opts.Options, hook)
			if err != nil {
				result.Files[i].Err = err
				buildpipeline.Emit(opts.Progress, buildpipeline.Event{File: rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusError, Err: err})
				return nil
			}
			units[i] = u
			result.Files[i].Bag = u.bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	// Фаза 2: порядок по импортам
	topo, idx := schedule(files, units, opts.Options)
	slot := make(map[string]int, len(files))
	for i, rel := range files {
		slot[rel] = i
	}
	for _, batch := range topo.Batches {
		result.Batches = append(result.Batches, idx.Paths(batch))
	}
	result.Cycles = idx.Paths(topo.Cycles)

	// Фаза 3: компиляция волнами
	for n, batch := range topo.Schedule() {
		limit := jobs
		if n >= len(topo.Batches) {
			limit = 1
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(limit, len(batch)))
		for _, id := range batch {
			i := slot[idx.IDToPath[id]]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				result.Files[i] = compileUnit(gctx, units[i], result.Files[i], opts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return result, err
		}
	}

	for _, u := range units {
		if u == nil {
			continue
		}
		for _, stage := range buildpipeline.Stages {
			if u.spent.Has(stage) {
				result.Timings.Add(stage, u.spent.Duration(stage))
			}
		}
	}
	result.Elapsed = time.Since(started)
	span.WithExtra("files", strconv.Itoa(len(files)))
	return result, nil
}

// schedule orders the loaded units by their in-build imports and reports
// cycles into the bags of the files involved.
func schedule(files []string, units []*unit, opts Options) (*dag.Topo, dag.FileIndex) {
	inBuild := make(map[string]bool, len(files))
	for i, rel := range files {
		if units[i] != nil {
			inBuild[rel] = true
		}
	}
	exists := func(p string) bool { return inBuild[p] }
	exts := opts.resolveExts()

	metas := make([]project.FileMeta, 0, len(files))
	nodes := make([]dag.FileNode, 0, len(files))
	for i, rel := range files {
		u := units[i]
		if u == nil {
			continue
		}
		meta := project.FileMeta{Path: rel, Span: source.Span{File: u.file.ID}}
		spans := importSpans(u.prog)
		specs := make([]string, 0, len(spans))
		for spec := range spans {
			specs = append(specs, spec)
		}
		slices.Sort(specs)
		for _, spec := range specs {
			if target, ok := project.ResolveImport(rel, spec, exts, exists); ok {
				meta.Imports = append(meta.Imports, project.ImportMeta{Path: target, Span: spans[spec]})
			}
		}
		metas = append(metas, meta)
		nodes = append(nodes, dag.FileNode{Meta: meta, Reporter: diag.BagReporter{Bag: u.bag}})
	}

	idx := dag.BuildIndex(metas)
	g, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(g)
	dag.ReportCycles(idx, slots, topo)
	return topo, idx
}

func compileUnit(ctx context.Context, u *unit, fr FileResult, opts BuildOptions) FileResult {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	defer span.End("")
	span.WithExtra("file", fr.Path)

	started := time.Now()
	done := func(err error) FileResult {
		fr.Err = err
		status := buildpipeline.StatusDone
		if fr.Failed() {
			status = buildpipeline.StatusError
			fr.Out = ""
		}
		evErr := err
		if evErr == nil && fr.Bag != nil {
			if d, ok := fr.Bag.FirstError(); ok {
				evErr = &diag.Fault{Diag: d}
			}
		}
		buildpipeline.Emit(opts.Progress, buildpipeline.Event{
			File:    fr.Path,
			Status:  status,
			Err:     evErr,
			Elapsed: time.Since(started),
		})
		return fr
	}

	res, err := u.compile(ctx, opts.Options)
	fr.Bag = u.bag
	if res != nil {
		fr.Stats = res.Stats
	}
	if err != nil || res.Failed() {
		return done(err)
	}
	out := filepath.Join(opts.Out, filepath.FromSlash(OutputPath(fr.Path)))
	err = u.phase(ctx, buildpipeline.StageWrite, func(context.Context) error {
		return writeOutput(out, res.Output)
	})
	if err == nil {
		fr.Out = out
	}
	return done(err)
}

func progressHook(sink buildpipeline.ProgressSink, file string) stageHook {
	if sink == nil {
		return nil
	}
	return func(stage buildpipeline.Stage, status buildpipeline.Status, elapsed time.Duration) {
		sink.OnEvent(buildpipeline.Event{File: file, Stage: stage, Status: status, Elapsed: elapsed})
	}
}
