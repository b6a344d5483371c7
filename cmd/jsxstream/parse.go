package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"jsxstream/internal/driver"
	"jsxstream/internal/format"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.jsx",
	Short: "Parse a file and print it back",
	Long: `Parse reads a JSX or TSX file and prints the syntax tree back as
JavaScript with JSX left in place and TypeScript-only syntax removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Bool("minify", false, "print without optional whitespace")
}

func runParse(cmd *cobra.Command, args []string) error {
	minify, err := cmd.Flags().GetBool("minify")
	if err != nil {
		return fmt.Errorf("failed to get minify flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return describeResourceError(err)
	}
	printDiagnostics(cmd, result.Bag, result.FileSet)
	if result.Program == nil || result.Bag.HasErrors() {
		return errDiagnostics
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), format.Program(result.Program, format.Options{Minify: minify}))
	return err
}
