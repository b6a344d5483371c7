package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"

	"jsxstream/internal/buildpipeline"
	"jsxstream/internal/diag"
	"jsxstream/internal/project"
	"jsxstream/internal/typeinfo"
	"jsxstream/internal/types"
)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID(int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("_id%d", s.n)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
}

func counter(scope tally.TestScope, name string) int64 {
	for _, c := range scope.Snapshot().Counters() {
		if strings.HasSuffix(c.Name(), name) {
			return c.Value()
		}
	}
	return 0
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestCompileDefersUnresolvedComponent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.jsx": `export const Page = () => <Foo bar="1"><span>hi</span></Foo>;`,
	})
	res, err := Compile(context.Background(), filepath.Join(dir, "page.jsx"), Options{Minify: true, IDs: &seqIDs{}})
	require.NoError(t, err)
	require.False(t, res.Failed(), "%v", res.Bag.Items())
	require.Equal(t, 1, res.Stats.Deferred)
	require.Equal(t, 1, strings.Count(res.Output, `<div id=\"`))
	require.Contains(t, res.Output, `await Foo({bar:"1",children:"<span>hi</span>"})`)
	require.Equal(t, types.Exports{"Page": types.Markup}, res.Exports)
}

func TestCompileUsesImportedTypes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"card.jsx": `export const Card = () => <b>card</b>;
export const Feed = async () => <ul></ul>;`,
		"page.tsx": `import { Card, Feed } from "./card";
interface Props { title: string }
export function Page(props: Props) { return <main><Card/><Feed/></main>; }`,
	})
	res, err := Compile(context.Background(), filepath.Join(dir, "page.tsx"), Options{Minify: true, IDs: &seqIDs{}})
	require.NoError(t, err)
	require.False(t, res.Failed(), "%v", res.Bag.Items())
	require.Equal(t, 1, res.Stats.Sync)
	require.Equal(t, 1, res.Stats.Deferred)
	require.Contains(t, res.Output, `global.___FRAMEWORK_JS_STRINGIFY___(Card({children:""}),_id1)`)
	require.Contains(t, res.Output, `await Feed({children:""})`)
}

func TestCompileWarnsAboutMissingImport(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.jsx": `import { Card } from "./nowhere";
import React from "react";
export const Page = () => <Card/>;`,
	})
	res, err := Compile(context.Background(), filepath.Join(dir, "page.jsx"), Options{})
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.True(t, hasCode(res.Bag, diag.ProjImportNotFound))
	require.Equal(t, 1, res.Bag.Len(), "bare specifiers are not reported")
	require.Equal(t, 1, res.Stats.Deferred)
}

func TestCompileFaultsBecomeDiagnostics(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{`export * from "./x";`, diag.SemaUnsupportedExportAll},
		{`export const P = () => <p>{{a: 1}}</p>;`, diag.SemaObjectChild},
		{`export const P = () => <p>;`, diag.SynJSXUnterminated},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"page.jsx": tc.src})
		res, err := Compile(context.Background(), filepath.Join(dir, "page.jsx"), Options{})
		require.NoError(t, err, tc.src)
		require.True(t, res.Failed(), tc.src)
		require.Empty(t, res.Output, tc.src)
		if tc.code != diag.SynJSXUnterminated {
			require.True(t, hasCode(res.Bag, tc.code), "%s: %v", tc.src, res.Bag.Items())
		}
	}
}

func TestMissingSourceIsResourceError(t *testing.T) {
	_, err := Compile(context.Background(), filepath.Join(t.TempDir(), "nope.jsx"), Options{})
	var re *ResourceError
	require.True(t, errors.As(err, &re))
	require.Equal(t, "read", re.Op)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.True(t, IsResource(err))
	require.False(t, IsResource(errors.New("other")))
}

func TestCompileFileWritesOnlyOnSuccess(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ok.jsx":  `export const P = () => <p>ok</p>;`,
		"bad.jsx": `export * from "./ok";`,
	})
	out := filepath.Join(dir, "out", "ok.js")
	res, err := CompileFile(context.Background(), filepath.Join(dir, "ok.jsx"), out, Options{})
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, res.Output, string(data))

	badOut := filepath.Join(dir, "out", "bad.js")
	res, err = CompileFile(context.Background(), filepath.Join(dir, "bad.jsx"), badOut, Options{})
	require.NoError(t, err)
	require.True(t, res.Failed())
	_, err = os.Stat(badOut)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestStoreCachesImports(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"card.jsx": `export default async function Card() { return <b>card</b>; }`,
		"page.jsx": `import Card from "./card.jsx";
export const Page = () => <main><Card/></main>;`,
	})
	scope := tally.NewTestScope("test", nil)
	opts := Options{Metrics: NewMetrics(scope)}
	store, err := OpenStore(filepath.Join(dir, ".cache"), opts)
	require.NoError(t, err)
	opts.Store = store

	page := filepath.Join(dir, "page.jsx")
	for i := 0; i < 2; i++ {
		res, err := Compile(context.Background(), page, opts)
		require.NoError(t, err)
		require.False(t, res.Failed(), "%v", res.Bag.Items())
		require.Equal(t, 1, res.Stats.Deferred)
	}
	require.EqualValues(t, 1, counter(scope, MetricImportMisses))
	require.EqualValues(t, 1, counter(scope, MetricImportHits))
	require.EqualValues(t, 2, counter(scope, MetricCompiled))
	require.EqualValues(t, 2, counter(scope, MetricPlaceholders))

	rec, err := typeinfo.ReadFile(store.RecordPath(page))
	require.NoError(t, err)
	require.Equal(t, types.Exports{"Page": types.Markup}, rec.Exports)
	card, err := typeinfo.ReadFile(store.RecordPath(filepath.Join(dir, "card.jsx")))
	require.NoError(t, err)
	require.Equal(t, types.Exports{types.DefaultExport: types.DeferredMarkup}, card.Exports)
}

func TestImportCycleTerminates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.jsx": `import { B } from "./b";
export const A = () => <p><B/></p>;`,
		"b.jsx": `import { A } from "./a";
export const B = () => <i>b</i>;`,
	})
	opts := Options{}
	store, err := OpenStore(filepath.Join(dir, ".cache"), opts)
	require.NoError(t, err)
	opts.Store = store

	res, err := Compile(context.Background(), filepath.Join(dir, "a.jsx"), opts)
	require.NoError(t, err)
	require.False(t, res.Failed(), "%v", res.Bag.Items())
	require.Equal(t, 1, res.Stats.Sync, "B is known through the cycle")
}

func TestTypecheckSkipsInferenceOnHit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "card.jsx")
	out := filepath.Join(dir, "records", "card.jti")
	writeFiles(t, dir, map[string]string{"card.jsx": `export const Card = async () => <b/>;`})

	exports, cached, err := Typecheck(context.Background(), in, out, Options{})
	require.NoError(t, err)
	require.False(t, cached)
	require.Equal(t, types.Exports{"Card": types.DeferredMarkup}, exports)

	again, cached, err := Typecheck(context.Background(), in, out, Options{})
	require.NoError(t, err)
	require.True(t, cached)
	require.Equal(t, exports, again)

	writeFiles(t, dir, map[string]string{"card.jsx": `export const Card = async () => <b/>; `})
	_, cached, err = Typecheck(context.Background(), in, out, Options{})
	require.NoError(t, err)
	require.False(t, cached, "one changed byte forces inference")
}

func TestTypecheckFaultLeavesRecordAlone(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.jsx")
	out := filepath.Join(dir, "bad.jti")
	writeFiles(t, dir, map[string]string{"bad.jsx": `export * from "./x";`})

	_, _, err := Typecheck(context.Background(), in, out, Options{})
	d, ok := FaultDiagnostic(err)
	require.True(t, ok, "%v", err)
	require.Equal(t, diag.SemaUnsupportedExportAll, d.Code)
	require.False(t, IsResource(err))
	_, err = os.Stat(out)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestBuildDirCompilesInImportOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"src/card.jsx":    `export const Card = () => <b>card</b>;`,
		"src/page.jsx":    `import { Card } from "./card"; export default () => <main><Card/></main>;`,
		"src/bad.jsx":     `export * from "react";`,
		"src/cycle/a.jsx": `import { B } from "./b"; export const A = () => <p><B/></p>;`,
		"src/cycle/b.jsx": `import { A } from "./a"; export const B = () => <i><A/></i>;`,
		"src/notes.txt":   `ignored`,
	})
	root := filepath.Join(dir, "src")
	out := filepath.Join(dir, "dist")

	var (
		mu     sync.Mutex
		events []buildpipeline.Event
	)
	sink := buildpipeline.FuncSink(func(ev buildpipeline.Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	opts := BuildOptions{Out: out, Jobs: 2, Progress: sink}
	store, err := OpenStore(filepath.Join(dir, ".cache"), opts.Options)
	require.NoError(t, err)
	opts.Store = store

	res, err := BuildDir(context.Background(), root, opts)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"bad.jsx", "card.jsx"}, {"page.jsx"}}, res.Batches)
	require.Equal(t, []string{"cycle/a.jsx", "cycle/b.jsx"}, res.Cycles)
	require.Equal(t, 1, res.Failed())

	byPath := make(map[string]FileResult, len(res.Files))
	for _, f := range res.Files {
		byPath[f.Path] = f
	}
	require.Len(t, byPath, 5)
	require.True(t, byPath["bad.jsx"].Failed())
	require.Empty(t, byPath["bad.jsx"].Out)
	require.Equal(t, 1, byPath["page.jsx"].Stats.Sync)
	require.True(t, hasCode(byPath["cycle/a.jsx"].Bag, diag.ProjImportCycle))

	for _, name := range []string{"card.js", "page.js", "cycle/a.js", "cycle/b.js"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(name)))
		require.NoError(t, err, name)
	}
	_, err = os.Stat(filepath.Join(out, "bad.js"))
	require.True(t, errors.Is(err, os.ErrNotExist))

	var done, failed, cached int
	for _, ev := range events {
		switch ev.Status {
		case buildpipeline.StatusDone:
			done++
		case buildpipeline.StatusError:
			failed++
		case buildpipeline.StatusCached:
			cached++
		}
	}
	require.Equal(t, 4, done)
	require.Equal(t, 1, failed)
	require.Positive(t, cached, "page.jsx reads card.jsx from the store")
	require.True(t, res.Timings.Has(buildpipeline.StageWrite))
}

func TestBuildUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"jsxstream.toml": `[package]
name = "site"
root = "src"

[build]
out = "public"
minify = true

[runtime]
stringify = "rt.str"
`,
		"src/index.jsx": `export default () => <p>{x}</p>;`,
	})
	m, err := project.Load(filepath.Join(dir, project.ManifestName))
	require.NoError(t, err)
	res, err := Build(context.Background(), m, BuildOptions{Options: Options{IDs: &seqIDs{}}})
	require.NoError(t, err)
	require.Zero(t, res.Failed())
	data, err := os.ReadFile(filepath.Join(dir, "public", "index.js"))
	require.NoError(t, err)
	require.Contains(t, string(data), "rt.str(x,_id1)")
}

func TestExportsThroughStore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"lib.jsx": `export const load = async () => fetch("/x");
export default function Layout() { return <div/>; }`,
	})
	path := filepath.Join(dir, "lib.jsx")
	want := types.Exports{"load": types.DeferredOther, types.DefaultExport: types.Markup}

	exports, hit, err := Exports(context.Background(), path, Options{})
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, want, exports)

	opts := Options{}
	store, err := OpenStore(t.TempDir(), opts)
	require.NoError(t, err)
	opts.Store = store
	for _, wantHit := range []bool{false, true} {
		exports, hit, err := Exports(context.Background(), path, opts)
		require.NoError(t, err)
		require.Equal(t, wantHit, hit)
		require.Equal(t, want, exports)
	}

	_, _, err = Exports(context.Background(), filepath.Join(dir, "missing.jsx"), opts)
	require.True(t, IsResource(err))
}

func TestCompileSourceResolvesAgainstName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"card.jsx": `export const Card = () => <b/>;`})
	res, err := CompileSource(context.Background(), filepath.Join(dir, "repl.jsx"),
		[]byte(`import { Card } from "./card"; <div><Card/></div>;`), Options{IDs: &seqIDs{}})
	require.NoError(t, err)
	require.False(t, res.Failed(), "%v", res.Bag.Items())
	require.Equal(t, 1, res.Stats.Sync)
	require.Equal(t, 1, res.Stats.Roots)
}

func TestRepeatedMissingImportWarnsOnce(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.jsx": `import { Card } from "./nowhere";
import { Badge } from "./nowhere";
export const Page = () => <div><Card/><Badge/></div>;`,
	})
	res, err := Compile(context.Background(), filepath.Join(dir, "page.jsx"), Options{})
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.Equal(t, 1, res.Bag.Len(), "%v", res.Bag.Items())
	require.Equal(t, 2, res.Stats.Deferred)
}

func TestCompileTimingsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"page.jsx": `export default () => <p>hi</p>;`,
	})
	res, err := Compile(context.Background(), filepath.Join(dir, "page.jsx"), Options{Timings: true, MaxDiagnostics: 1})
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.NotNil(t, res.Timings)
	require.True(t, hasCode(res.Bag, diag.ObsTimings))

	var d *diag.Diagnostic
	for _, item := range res.Bag.Items() {
		if item.Code == diag.ObsTimings {
			d = item
		}
	}
	require.Equal(t, diag.SevInfo, d.Severity)
	// по заметке на фазу и одна с JSON
	require.Len(t, d.Notes, len(res.Timings.Phases)+1)
	require.True(t, strings.HasPrefix(d.Notes[0].Msg, res.Timings.Phases[0].Name+" "))
	require.True(t, strings.HasPrefix(d.Notes[len(d.Notes)-1].Msg, `{"total_ms":`))
}
