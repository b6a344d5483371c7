package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jsxstream/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new jsxstream project",
	Long: `Initialize a new project by creating a manifest (jsxstream.toml) and a
starter page under src/. If [path|name] is omitted, initializes the current
directory. A directory that does not exist yet is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	if !filepath.IsAbs(target) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, target)
	}

	created, err := project.Init(target)
	if err != nil {
		return err
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	if quiet {
		return nil
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "initialized %s\n", target)
	for _, f := range created {
		fmt.Fprintf(w, "  created %s\n", f)
	}
	return nil
}
