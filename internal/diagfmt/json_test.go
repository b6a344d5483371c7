package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsxstream/internal/diag"
	"jsxstream/internal/source"
)

func decodeReport(t *testing.T, buf *bytes.Buffer) Report {
	t.Helper()
	var rep Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep), buf.String())
	return rep
}

func TestJSONPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("function A() {\n\treturn \"unterminated\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 23, End: 36}, "Unterminated string literal"))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}))
	rep := decodeReport(t, &buf)

	require.Len(t, rep.Diagnostics, 1)
	assert.Equal(t, 1, rep.Errors)
	e := rep.Diagnostics[0]
	assert.Equal(t, "ERROR", e.Severity)
	assert.Equal(t, "LEX1002", e.Code)
	assert.Equal(t, "Unterminated string literal", e.Title)
	// "\treturn " занимает 8 байт, кавычка на 9-й колонке
	assert.Equal(t, Location{Path: "test.jsx", Start: 23, End: 36, Line: 2, Col: 9, EndLine: 2, EndCol: 22}, e.At)
}

func TestJSONNotesOnRequest(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("<a></b>"))

	bag := diag.NewBag(10)
	d := diag.NewError(diag.SynJSXTagMismatch, source.Span{File: fileID, Start: 3, End: 7}, "expected </a>")
	d.WithNote(source.Span{File: fileID, Start: 0, End: 3}, "opening tag here")
	bag.Add(d)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}))
	assert.Empty(t, decodeReport(t, &buf).Diagnostics[0].Notes)

	buf.Reset()
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true}))
	notes := decodeReport(t, &buf).Diagnostics[0].Notes
	require.Len(t, notes, 1)
	assert.Equal(t, "opening tag here", notes[0].Message)
	assert.Equal(t, uint32(3), notes[0].At.End)
}

func TestJSONOmitsPositionsByDefault(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("let x = 42"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 4, End: 5}, "odd"))

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}))
	assert.NotContains(t, buf.String(), `"line"`)
	rep := decodeReport(t, &buf)
	assert.Equal(t, uint32(4), rep.Diagnostics[0].At.Start)
	assert.Equal(t, 1, rep.Warnings)
	assert.Zero(t, rep.Errors)
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.jsx", []byte("test content"))

	bag := diag.NewBag(10)
	for i := uint32(0); i < 5; i++ {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "bad"))
	}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3}))
	rep := decodeReport(t, &buf)
	assert.Equal(t, 3, rep.Count)
	assert.True(t, rep.Truncated)
	// счётчики считают весь bag
	assert.Equal(t, 5, rep.Errors)
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.jsx", []byte("test"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.jsx"},
		{"Relative", PathModeRelative, "src/main.jsx"},
		{"Basename", PathModeBasename, "main.jsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, JSON(&buf, bag, fs, JSONOpts{PathMode: tt.pathMode}))
			assert.Equal(t, tt.expected, decodeReport(t, &buf).Diagnostics[0].At.Path)
		})
	}
}
