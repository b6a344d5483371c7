package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jsxstream/internal/driver"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <in.jsx> [out.js]",
	Short: "Compile one JSX file into streaming JavaScript",
	Long: `Compile parses a JSX or TSX file, infers the types of its components
and writes a module whose default export streams HTML. Without an output
path the result goes to stdout.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().Bool("minify", false, "drop optional whitespace from the output")
	compileCmd.Flags().Bool("stats", false, "print placeholder statistics to stderr")
}

func runCompile(cmd *cobra.Command, args []string) error {
	in := args[0]
	minify, err := cmd.Flags().GetBool("minify")
	if err != nil {
		return fmt.Errorf("failed to get minify flag: %w", err)
	}
	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}

	sess, err := newSession(cmd, filepath.Dir(in))
	if err != nil {
		return err
	}
	opts := sess.opts
	if minify {
		opts.Minify = true
	}

	var res *driver.CompileResult
	if len(args) == 2 {
		res, err = driver.CompileFile(cmd.Context(), in, args[1], opts)
	} else {
		res, err = driver.Compile(cmd.Context(), in, opts)
	}
	if err != nil {
		return describeResourceError(err)
	}

	printDiagnostics(cmd, res.Bag, res.FileSet)
	if showStats {
		fmt.Fprintf(cmd.ErrOrStderr(), "roots: %d, deferred: %d, sync: %d\n", res.Stats.Roots, res.Stats.Deferred, res.Stats.Sync)
	}
	sess.report(cmd.ErrOrStderr())
	if res.Failed() {
		return errDiagnostics
	}
	if len(args) == 1 {
		out := res.Output
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	return nil
}

// describeResourceError adds the failed operation to I/O errors so the
// message does not depend on which layer hit the file.
func describeResourceError(err error) error {
	var rerr *driver.ResourceError
	if errors.As(err, &rerr) && errors.Is(rerr.Err, os.ErrNotExist) {
		return fmt.Errorf("%s: no such file", rerr.Path)
	}
	return err
}
