package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"jsxstream/internal/driver"
	"jsxstream/internal/types"
)

var exportsCmd = &cobra.Command{
	Use:   "exports [flags] <file.jsx>",
	Short: "Show the inferred types of a file's exports",
	Args:  cobra.ExactArgs(1),
	RunE:  runExports,
}

func init() {
	exportsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml)")
}

func runExports(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	sess, err := newSession(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}

	exports, hit, err := driver.Exports(cmd.Context(), path, sess.opts)
	if err != nil {
		if d, ok := driver.FaultDiagnostic(err); ok {
			return fmt.Errorf("%s: %s", path, d.Message)
		}
		return describeResourceError(err)
	}

	w := cmd.OutOrStdout()
	switch format {
	case "pretty":
		for _, name := range exports.Names() {
			fmt.Fprintf(w, "%-20s %s\n", name, exports[name])
		}
		if hit {
			fmt.Fprintln(cmd.ErrOrStderr(), "(from cache)")
		}
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exportTable(exports))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exportTable(exports)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	sess.report(cmd.ErrOrStderr())
	return nil
}

func exportTable(exports types.Exports) map[string]string {
	out := make(map[string]string, len(exports))
	for name, t := range exports {
		out[name] = t.String()
	}
	return out
}
