package main

import (
	"fmt"
	"os"
	"strings"
)

// progressView selects how `build` reports progress.
type progressView uint8

const (
	viewAuto  progressView = iota // TUI on a terminal, lines otherwise
	viewTUI                       // always the bubbletea view
	viewLines                     // one line per finished file
)

func parseProgressView(value string) (progressView, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return viewAuto, nil
	case "on", "tui":
		return viewTUI, nil
	case "off", "lines":
		return viewLines, nil
	}
	return viewAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// interactive reports whether the TUI should draw on out.
func (v progressView) interactive(out *os.File) bool {
	switch v {
	case viewTUI:
		return true
	case viewLines:
		return false
	}
	return isTerminal(out)
}
