package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jsxstream/internal/buildpipeline"
	"jsxstream/internal/driver"
	"jsxstream/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Compile every JSX file of a project",
	Long: `Build compiles every source file of the project containing [dir] (the
current directory by default) into its output directory, keeping the
relative layout. Without a jsxstream.toml the directory itself is the
source root and output goes to <dir>/dist.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	buildCmd.Flags().Int("jobs", 0, "files compiled in parallel (0: all CPUs)")
	buildCmd.Flags().String("out", "", "output directory")
	buildCmd.Flags().Bool("minify", false, "drop optional whitespace from the output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	view, err := parseProgressView(uiFlag)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	minify, err := cmd.Flags().GetBool("minify")
	if err != nil {
		return fmt.Errorf("failed to get minify flag: %w", err)
	}

	sess, err := newSession(cmd, dir)
	if err != nil {
		return err
	}
	opts := driver.BuildOptions{Options: sess.opts, Jobs: jobs}
	if minify {
		opts.Minify = true
	}
	if out != "" {
		if opts.Out, err = filepath.Abs(out); err != nil {
			return err
		}
	}

	// корень и выход нужны заранее, чтобы показать список файлов
	root := dir
	build := func(ctx context.Context, o driver.BuildOptions) (*driver.BuildResult, error) {
		return driver.BuildDir(ctx, root, o)
	}
	if m := sess.manifest; m != nil {
		root = m.SourceRoot()
		if opts.Out == "" {
			opts.Out = m.OutDir()
		}
		build = func(ctx context.Context, o driver.BuildOptions) (*driver.BuildResult, error) {
			return driver.Build(ctx, m, o)
		}
	} else if opts.Out == "" {
		opts.Out = filepath.Join(root, "dist")
	}

	var res *driver.BuildResult
	if view.interactive(os.Stderr) && !sess.quiet {
		exts := opts.Extensions
		if len(exts) == 0 {
			exts = project.Default().Build.Extensions
		}
		files, err := project.CollectSources(root, exts, opts.Out)
		if err != nil {
			return err
		}
		res, err = runBuildWithUI(cmd.Context(), "jsxstream build", files, opts, build)
		if err != nil {
			return describeResourceError(err)
		}
	} else {
		if !sess.quiet {
			opts.Progress = &buildpipeline.LineSink{W: cmd.ErrOrStderr()}
		}
		res, err = build(cmd.Context(), opts)
		if err != nil {
			return describeResourceError(err)
		}
	}

	for _, f := range res.Files {
		if f.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", f.Path, f.Err)
			continue
		}
		printDiagnostics(cmd, f.Bag, res.FileSet)
	}
	if len(res.Cycles) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "import cycles: %v\n", res.Cycles)
	}
	if sess.timings {
		printStageTimings(cmd, res.Timings)
	}
	sess.report(cmd.ErrOrStderr())

	failed := res.Failed()
	if !sess.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d failed, %s -> %s\n",
			len(res.Files), failed, res.Elapsed.Round(time.Millisecond), relOut(opts.Out))
	}
	if failed > 0 {
		return errDiagnostics
	}
	return nil
}

func printStageTimings(cmd *cobra.Command, t buildpipeline.Timings) {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "stages:")
	for _, stage := range buildpipeline.Stages {
		if !t.Has(stage) {
			continue
		}
		fmt.Fprintf(w, "  %-6s %s\n", stage, t.Duration(stage).Round(time.Microsecond))
	}
}

func relOut(out string) string {
	wd, err := os.Getwd()
	if err != nil {
		return out
	}
	if rel, err := filepath.Rel(wd, out); err == nil {
		return rel
	}
	return out
}
