package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const starterPage = `// Стартовая страница: синхронная разметка и один отложенный компонент.
async function Clock() {
  const now = await Promise.resolve(new Date());
  return <time>{now.toISOString()}</time>;
}

export default function Page({ title }) {
  return (
    <main className="page">
      <h1 style={{ fontSize: 32, marginTop: 0 }}>{title}</h1>
      <Clock />
    </main>
  );
}
`

// Init writes a starter manifest and page into dir, creating dir when it
// does not exist. It refuses to overwrite an existing manifest and returns
// the files it created, relative to dir.
func Init(dir string) ([]string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	cfg := Default()
	cfg.Package.Name = projectName(dir)
	cfg.Package.Root = "src"
	var buf bytes.Buffer
	buf.WriteString("# jsxstream project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	created := []string{ManifestName}

	page := filepath.Join("src", "index.jsx")
	pagePath := filepath.Join(dir, page)
	if _, err := os.Stat(pagePath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(pagePath), 0o755); err != nil {
			return created, err
		}
		if err := os.WriteFile(pagePath, []byte(starterPage), 0o644); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", page, err)
		}
		created = append(created, filepath.ToSlash(page))
	}
	return created, nil
}

func projectName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	name := strings.TrimSpace(filepath.Base(abs))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "site"
	}
	return name
}
