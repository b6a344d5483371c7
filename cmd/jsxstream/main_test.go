package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsxstream/internal/types"
)

func TestIncompleteInput(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"const a = 1;", false},
		{"function Page() {", true},
		{"const el = <div>", true},
		{"const s = `abc", true},
		{"/* note", true},
		{"const a = (1 +", true},
		{"f(a b);\nconst c = 2;", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, incomplete(tc.src), "%q", tc.src)
	}
}

func TestParseProgressView(t *testing.T) {
	for in, want := range map[string]progressView{"": viewAuto, "AUTO": viewAuto, " on ": viewTUI, "tui": viewTUI, "off": viewLines} {
		got, err := parseProgressView(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := parseProgressView("sometimes")
	assert.Error(t, err)
	assert.True(t, viewTUI.interactive(os.Stdout))
	assert.False(t, viewLines.interactive(os.Stdout))
}

func TestExportTable(t *testing.T) {
	exports := types.Exports{
		types.DefaultExport: types.Markup,
		"title":             types.Other,
	}
	table := exportTable(exports)
	assert.Len(t, table, 2)
	assert.Equal(t, exports[types.DefaultExport].String(), table["default"])
	assert.Equal(t, exports["title"].String(), table["title"])
}
