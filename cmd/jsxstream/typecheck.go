package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsxstream/internal/diag"
	"jsxstream/internal/driver"
	"jsxstream/internal/source"
)

var typecheckCmd = &cobra.Command{
	Use:   "typecheck [flags] <in.jsx> <record>",
	Short: "Infer the exports of a file into a type-info record",
	Long: `Typecheck infers the exported types of a file and stores them at the
given record path. When the record already matches the file's contents the
inference is skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runTypecheck,
}

func runTypecheck(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	opts := driver.Options{MaxDiagnostics: maxDiagnostics}

	exports, cached, err := driver.Typecheck(cmd.Context(), in, out, opts)
	if err != nil {
		if d, ok := driver.FaultDiagnostic(err); ok {
			// диагностика ссылается на файл, загруженный внутри driver
			fs := source.NewFileSet()
			if id, lerr := fs.Load(in); lerr == nil {
				d.Primary.File = id
				bag := diag.NewBag(1)
				bag.Add(d)
				printDiagnostics(cmd, bag, fs)
				return errDiagnostics
			}
		}
		return describeResourceError(err)
	}

	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if !quiet {
		state := "inferred"
		if cached {
			state = "up to date"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d exports)\n", out, state, len(exports.Names()))
	}
	return nil
}
