package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Version information for the jsxstream CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric part in its own color.
// A version that is not major.minor.patch is returned as is.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Lines returns the report printed by `jsxstream version`.
func Lines() []string {
	lines := []string{"jsxstream " + Colored()}
	if GitCommit != "" {
		lines = append(lines, "commit: "+GitCommit)
	}
	if BuildDate != "" {
		lines = append(lines, "built:  "+BuildDate)
	}
	lines = append(lines, fmt.Sprintf("go:     %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH))
	return lines
}
