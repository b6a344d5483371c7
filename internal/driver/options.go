package driver

import (
	"path/filepath"
	"slices"
	"strings"

	"jsxstream/internal/lower"
	"jsxstream/internal/project"
	"jsxstream/internal/style"
	"jsxstream/internal/typeinfo"
)

// Options configure compiling one file. The zero value compiles with the
// default runtime names and no type-info cache.
type Options struct {
	MaxDiagnostics int
	Minify         bool
	Runtime        lower.Runtime
	// Root bounds relative import resolution; "" allows the whole file system.
	Root       string
	Extensions []string // nil: расширения по умолчанию из project.Default
	// Store caches the exports of imported files and receives the record
	// of every compiled file. nil: imports are inferred on every use.
	Store   *typeinfo.Store
	Styles  *style.NameCache // nil: private per call
	IDs     lower.IDGen
	Metrics *Metrics
	Timings bool
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return project.Default().Build.Extensions
	}
	return o.Extensions
}

// resolveExts also admits plain script modules as import targets.
func (o Options) resolveExts() []string {
	exts := append([]string(nil), o.extensions()...)
	for _, e := range []string{".js", ".ts"} {
		if !slices.Contains(exts, e) {
			exts = append(exts, e)
		}
	}
	return exts
}


// RuntimeFromConfig maps the [runtime] table of a manifest.
func RuntimeFromConfig(cfg project.RuntimeConfig) lower.Runtime {
	return lower.Runtime{
		Stringify:      cfg.Stringify,
		PlaceholderTag: cfg.PlaceholderTag,
		Style: style.Runtime{
			StyleName:   cfg.StyleName,
			StyleValue:  cfg.StyleValue,
			StyleObject: cfg.StyleObject,
		},
	}
}

// OptionsFromManifest applies a project manifest on top of base.
func OptionsFromManifest(m *project.Manifest, base Options) Options {
	opts := base
	opts.Root = m.SourceRoot()
	opts.Minify = opts.Minify || m.Config.Build.Minify
	opts.Extensions = m.Config.Build.Extensions
	opts.Runtime = RuntimeFromConfig(m.Config.Runtime)
	return opts
}

// isTypeScript: TS-разбор включается по расширению файла.
func isTypeScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}

// OutputPath maps a source path to its compiled name: the extension
// becomes .js.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".js"
}
