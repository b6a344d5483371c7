package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"jsxstream/internal/diag"
	"jsxstream/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("const x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.jsx", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 10, End: 30},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.jsx"},
		{"Relative path", PathModeRelative, "src/test.jsx"},
		{"Basename only", PathModeBasename, "test.jsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output, got:\n%s", want, output)
				}
			}
		})
	}
}

func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"Short path - as is", "test.jsx", "test.jsx"},
		{"Long absolute path - basename", "/very/long/absolute/path/to/some/nested/directory/file.jsx", "file.jsx:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("let x = 42\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 8, End: 10}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()
			if !strings.HasPrefix(output, tt.expected) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, output)
			}
		})
	}
}

func TestPrettyCaretUnderline(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("app.jsx", []byte("line one\nexport * from './x';\nline three\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SemaUnsupportedExportAll, source.Span{File: fileID, Start: 16, End: 17}, "export * is not supported"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")

	if lines[0] != "app.jsx:2:8: ERROR SEM3001: export * is not supported" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	want := []string{
		" 1 | line one",
		" 2 | export * from './x';",
		"   |        ^",
		" 3 | line three",
	}
	for i, w := range want {
		if lines[i+1] != w {
			t.Fatalf("line %d: got %q, want %q\n%s", i+1, lines[i+1], w, buf.String())
		}
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("<div></span>\n"))

	bag := diag.NewBag(4)
	d := diag.NewError(diag.SynJSXTagMismatch, source.Span{File: fileID, Start: 5, End: 12}, "expected </div>")
	d.WithNote(source.Span{File: fileID, Start: 0, End: 5}, "opened here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()
	if !strings.Contains(output, "note: test.jsx:1:1: opened here") {
		t.Fatalf("expected note with location, got:\n%s", output)
	}
	if !strings.Contains(output, "^~~~~~") {
		t.Fatalf("expected underline spanning the closing tag, got:\n%s", output)
	}
}

func TestPrettyTimingsSkipsLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("page.jsx", []byte("export default () => <p/>;\n"))

	bag := diag.NewBag(4)
	d := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings: 1.50 ms in 1 phases, page.jsx")
	d.WithNote(source.Span{}, "parse 1.50 ms")
	d.WithNote(source.Span{}, `{"total_ms":1.5}`)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	output := buf.String()
	if strings.Contains(output, "export default") || strings.Contains(output, "page.jsx:1:1") {
		t.Fatalf("timings must not point into the source:\n%s", output)
	}
	if !strings.Contains(output, "  parse 1.50 ms\n") {
		t.Fatalf("phase note missing:\n%s", output)
	}
	if strings.Contains(output, "total_ms") {
		t.Fatalf("raw payload must stay out of pretty output:\n%s", output)
	}
}
