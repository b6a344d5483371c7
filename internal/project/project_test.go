package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	writeFile(t, path, `
[package]
name = "site"
root = "src"

[build]
minify = true

[runtime]
placeholder_tag = "template"
`)
	m, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "site", m.Config.Package.Name)
	require.True(t, m.Config.Build.Minify)
	require.Equal(t, "dist", m.Config.Build.Out)
	require.Equal(t, []string{".jsx", ".tsx"}, m.Config.Build.Extensions)
	require.Equal(t, "template", m.Config.Runtime.PlaceholderTag)
	require.Equal(t, Default().Runtime.Stringify, m.Config.Runtime.Stringify)
	require.Equal(t, filepath.Join(dir, "src"), m.SourceRoot())
	require.Equal(t, filepath.Join(dir, "dist"), m.OutDir())
}

func TestLoadRejectsBadManifests(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{"no package", "[build]\nout = \"x\"\n", ErrPackageSectionMissing},
		{"no name", "[package]\nroot = \"src\"\n", ErrPackageNameMissing},
		{"bad ext", "[package]\nname = \"a\"\n[build]\nextensions = [\"jsx\"]\n", ErrBadExtension},
		{"bad jobs", "[package]\nname = \"a\"\n[build]\njobs = -1\n", ErrBadJobs},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tc.content)
			_, err := Load(path)
			require.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	path := filepath.Join(t.TempDir(), ManifestName)
	writeFile(t, path, "[package]\nname = \"a\"\nflavour = \"x\"\n")
	_, err := Load(path)
	require.ErrorContains(t, err, "unknown keys: package.flavour")
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"site\"\n")
	nested := filepath.Join(root, "src", "pages")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, ok, err := Discover(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, m.Root)

	dir, ok, err := FindProjectRoot(nested)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, root, dir)
}

func TestInitWritesLoadableManifest(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blog")
	created, err := Init(dir)
	require.NoError(t, err)
	require.Equal(t, []string{ManifestName, "src/index.jsx"}, created)

	m, err := Load(filepath.Join(dir, ManifestName))
	require.NoError(t, err)
	require.Equal(t, "blog", m.Config.Package.Name)
	require.Equal(t, "src", m.Config.Package.Root)
	require.Equal(t, Default().Runtime, m.Config.Runtime)

	_, err = Init(dir)
	require.ErrorContains(t, err, "already initialized")
}

func TestCollectSources(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"index.jsx", "ui/card.tsx", "ui/util.js", "node_modules/x/y.jsx",
		".cache/z.jsx", "dist/index.jsx", "pages/about.jsx",
	} {
		writeFile(t, filepath.Join(root, p), "")
	}
	got, err := CollectSources(root, []string{".jsx", ".tsx"}, filepath.Join(root, "dist"))
	require.NoError(t, err)
	require.Equal(t, []string{"index.jsx", "pages/about.jsx", "ui/card.tsx"}, got)
}

func TestResolveImport(t *testing.T) {
	files := map[string]bool{
		"ui/card.jsx":      true,
		"ui/nav/index.tsx": true,
		"lib/data.jsx":     true,
	}
	exists := func(p string) bool { return files[p] }
	exts := []string{".jsx", ".tsx"}
	cases := []struct {
		from, spec, want string
		ok               bool
	}{
		{"pages/home.jsx", "../ui/card", "ui/card.jsx", true},
		{"pages/home.jsx", "../ui/card.jsx", "ui/card.jsx", true},
		{"ui/card.jsx", "./nav", "ui/nav/index.tsx", true},
		{"index.jsx", "./lib/data", "lib/data.jsx", true},
		{"index.jsx", "react", "", false},
		{"index.jsx", "../outside", "", false},
		{"index.jsx", "./missing", "", false},
	}
	for _, tc := range cases {
		got, ok := ResolveImport(tc.from, tc.spec, exts, exists)
		require.Equal(t, tc.ok, ok, "%s from %s", tc.spec, tc.from)
		require.Equal(t, tc.want, got, "%s from %s", tc.spec, tc.from)
	}
}
