package source

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.AddVirtual("page.jsx", []byte("hello world"))
	id2 := fs.AddVirtual("page.jsx", []byte("hello universe"))
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("page.jsx")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Fatalf("old version lost: %q", got)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len = %d, want 2", fs.Len())
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.jsx", []byte("ab\ncde\n\nf"))

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{2, 1, 3}, // сам '\n' принадлежит первой строке
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
		{8, 4, 1},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start.Line != tc.line || start.Col != tc.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", tc.off, start.Line, start.Col, tc.line, tc.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.jsx", []byte("first\nsecond\nthird")))

	want := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for n, line := range want {
		if got := f.GetLine(n); got != line {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, line)
		}
	}
}

func TestLoadNormalizesButHashesRawBytes(t *testing.T) {
	raw := []byte("\xEF\xBB\xBFconst a = 1;\r\nconst b = 2;\r\n")
	path := filepath.Join(t.TempDir(), "x.jsx")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "const a = 1;\nconst b = 2;\n" {
		t.Fatalf("content not normalized: %q", got)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.Hash != sha256.Sum256(raw) {
		t.Fatal("hash must cover the raw bytes")
	}
}

func TestNormalizeUTF16(t *testing.T) {
	// "<a/>" в UTF-16LE с BOM
	raw := []byte{0xFF, 0xFE, '<', 0, 'a', 0, '/', 0, '>', 0}
	content, flags, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if string(content) != "<a/>" {
		t.Fatalf("decoded = %q", content)
	}
	if flags&FileDecodedUTF16 == 0 {
		t.Fatalf("expected FileDecodedUTF16 flag, got %b", flags)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file Cover changed span: %v", got)
	}
	if a.Len() != 4 || a.Empty() {
		t.Fatalf("Len/Empty wrong for %v", a)
	}
}
