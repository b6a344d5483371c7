package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config mirrors jsxstream.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Runtime RuntimeConfig `toml:"runtime"`
	Cache   CacheConfig   `toml:"cache"`
}

type PackageConfig struct {
	Name string `toml:"name"`
	Root string `toml:"root"` // каталог исходников относительно манифеста
}

type BuildConfig struct {
	Out        string   `toml:"out"`
	Minify     bool     `toml:"minify"`
	Jobs       int      `toml:"jobs"` // 0: по числу CPU
	Extensions []string `toml:"extensions"`
}

// RuntimeConfig names the support functions generated code calls.
type RuntimeConfig struct {
	Stringify      string `toml:"stringify"`
	StyleName      string `toml:"style_name"`
	StyleValue     string `toml:"style_value"`
	StyleObject    string `toml:"style_object"`
	PlaceholderTag string `toml:"placeholder_tag"`
}

type CacheConfig struct {
	Dir      string `toml:"dir"` // "": $XDG_CACHE_HOME/jsxstream
	Disabled bool   `toml:"disabled"`
}

// Default is the configuration used without a manifest.
func Default() Config {
	return Config{
		Package: PackageConfig{Root: "."},
		Build: BuildConfig{
			Out:        "dist",
			Extensions: []string{".jsx", ".tsx"},
		},
		Runtime: RuntimeConfig{
			Stringify:      "global.___FRAMEWORK_JS_STRINGIFY___",
			StyleName:      "global.___FRAMEWORK_JS_STYLE_NAME___",
			StyleValue:     "global.___FRAMEWORK_JS_STYLE_VALUE___",
			StyleObject:    "global.___FRAMEWORK_JS_STYLE_OBJECT___",
			PlaceholderTag: "div",
		},
	}
}

var (
	ErrPackageSectionMissing = errors.New("missing [package]")
	ErrPackageNameMissing    = errors.New("missing [package].name")
	ErrBadExtension          = errors.New("[build].extensions entries must start with a dot")
	ErrBadJobs               = errors.New("[build].jobs must not be negative")
)

// Manifest is a loaded jsxstream.toml.
type Manifest struct {
	Path   string
	Root   string // каталог манифеста
	Config Config
}

// SourceRoot is the absolute directory sources are taken from.
func (m *Manifest) SourceRoot() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Package.Root))
}

// OutDir is the absolute build output directory.
func (m *Manifest) OutDir() string {
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Out))
}

// Load parses the manifest at path. Keys the file omits keep their
// Default values.
func Load(path string) (*Manifest, error) {
	cfg := Default()
	// списки из файла заменяют значения по умолчанию, а не дополняют их
	cfg.Build.Extensions = nil
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("build", "extensions") {
		cfg.Build.Extensions = Default().Build.Extensions
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// Discover finds and loads the manifest above startDir. ok is false when
// there is none.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	return m, true, err
}

// Validate checks values toml cannot.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Package.Name) == "" {
		return ErrPackageNameMissing
	}
	if c.Build.Jobs < 0 {
		return ErrBadJobs
	}
	for _, ext := range c.Build.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrBadExtension, ext)
		}
	}
	return nil
}
