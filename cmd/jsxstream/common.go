package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/uber-go/tally/v4"

	"jsxstream/internal/diag"
	"jsxstream/internal/diagfmt"
	"jsxstream/internal/driver"
	"jsxstream/internal/project"
	"jsxstream/internal/source"
	"jsxstream/internal/style"
	"jsxstream/internal/typeinfo"
)

// session is what every compiling command shares: options derived from
// flags and the nearest manifest, plus the metrics scope behind them.
type session struct {
	opts     driver.Options
	manifest *project.Manifest // nil без jsxstream.toml
	scope    tally.TestScope
	timings  bool
	quiet    bool
}

func newSession(cmd *cobra.Command, startDir string) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	s := &session{
		scope:   tally.NewTestScope("jsxstream", nil),
		timings: timings,
		quiet:   quiet,
	}
	s.opts = driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Runtime:        driver.RuntimeFromConfig(project.Default().Runtime),
		Styles:         style.NewNameCache(),
		Metrics:        driver.NewMetrics(s.scope),
		Timings:        timings,
	}

	manifest, ok, err := project.Discover(startDir)
	if err != nil {
		return nil, err
	}
	cacheCfg := project.Default().Cache
	if ok {
		s.manifest = manifest
		s.opts = driver.OptionsFromManifest(manifest, s.opts)
		cacheCfg = manifest.Config.Cache
	}

	if noCache || cacheCfg.Disabled {
		return s, nil
	}
	dir := cacheCfg.Dir
	switch {
	case dir == "":
		if dir, err = typeinfo.DefaultDir("jsxstream"); err != nil {
			return nil, err
		}
	case !filepath.IsAbs(dir) && s.manifest != nil:
		dir = filepath.Join(s.manifest.Root, dir)
	}
	store, err := driver.OpenStore(dir, s.opts)
	if err != nil {
		return nil, err
	}
	s.opts.Store = store
	return s, nil
}

// report prints counters and the store summary for --timings.
func (s *session) report(w io.Writer) {
	if !s.timings {
		return
	}
	counters := s.scope.Snapshot().Counters()
	names := make([]string, 0, len(counters))
	values := make(map[string]int64, len(counters))
	for _, c := range counters {
		name := strings.TrimPrefix(c.Name(), "jsxstream.")
		names = append(names, name)
		values[name] = c.Value()
	}
	sort.Strings(names)
	fmt.Fprintln(w, "metrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-18s %d\n", name, values[name])
	}
	if s.opts.Store != nil {
		st := s.opts.Store.Stats()
		fmt.Fprintf(w, "cache: %s (hits %d, misses %d, corrupt %d)\n", s.opts.Store.Dir(), st.Hits, st.Misses, st.Corrupt)
	}
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// printDiagnostics writes bag to stderr unless it is empty.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet && !bag.HasErrors() {
		return
	}
	bag.Sort()
	flags := cmd.Root().PersistentFlags()
	pathMode, _ := flags.GetString("path-mode")
	if format, _ := flags.GetString("diagnostics-format"); format == "json" {
		_ = diagfmt.JSON(cmd.ErrOrStderr(), bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.ParsePathMode(pathMode),
			IncludeNotes:     true,
		})
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   2,
		PathMode:  diagfmt.ParsePathMode(pathMode),
		ShowNotes: true,
	})
}

// errDiagnostics marks a command that failed with diagnostics already
// printed.
var errDiagnostics = errors.New("compilation failed")
