package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"jsxstream/internal/diag"
	"jsxstream/internal/driver"
	"jsxstream/internal/parser"
	"jsxstream/internal/source"
)

const (
	historyFile = ".jsxstream_history"
	promptMain  = "jsx> "
	promptCont  = "...  "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Compile JSX snippets interactively",
	Long: `Repl reads JSX modules from the terminal and prints the compiled
JavaScript. Input continues on the next line while brackets, templates or
JSX elements are still open. Commands: :minify toggles minified output,
:quit exits.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	sess, err := newSession(cmd, wd)
	if err != nil {
		return err
	}
	opts := sess.opts
	// относительные импорты ищем от текущего каталога
	name := filepath.Join(wd, "repl.tsx")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	errColor := color.New(color.FgRed)
	errColor.DisableColor()
	if useColor(cmd, os.Stderr) {
		errColor.EnableColor()
	}

	for {
		src, ok := readModule(ln)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			case ":minify":
				opts.Minify = !opts.Minify
				fmt.Fprintf(cmd.OutOrStdout(), "minify: %v\n", opts.Minify)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "unknown command. Type :quit to exit.")
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		res, err := driver.CompileSource(cmd.Context(), name, []byte(src), opts)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), errColor.Sprint(err.Error()))
			continue
		}
		printDiagnostics(cmd, res.Bag, res.FileSet)
		if !res.Failed() {
			fmt.Fprint(cmd.OutOrStdout(), res.Output)
		}
	}
}

// readModule reads lines until they form a module that is not cut off in
// the middle. ok is false at end of input.
func readModule(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// ctrl+c сбрасывает набранное
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !incomplete(src) {
			return src, true
		}
	}
}

// incomplete reports whether src fails to parse only because it ends too
// early.
func incomplete(src string) bool {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("repl.tsx", []byte(src)))
	bag := diag.NewBag(1)
	parser.ParseFile(file, parser.Options{
		TypeScript: true,
		MaxErrors:  1,
		Reporter:   diag.BagReporter{Bag: bag},
	})
	first, ok := bag.FirstError()
	if !ok {
		return false
	}
	switch first.Code {
	case diag.LexUnterminatedTemplate, diag.LexUnterminatedBlockComment, diag.SynJSXUnterminated:
		return true
	}
	// остальные ошибки считаем обрывом, только если они указывают на конец ввода
	return int(first.Primary.Start) >= len(strings.TrimRight(src, " \t\n"))
}
