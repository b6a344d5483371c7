package ui

import (
	"errors"
	"strings"
	"testing"

	"jsxstream/internal/buildpipeline"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("build", files, make(chan buildpipeline.Event)).(*progressModel)
}

func TestApplyEventTracksFiles(t *testing.T) {
	m := newModel("a.jsx", "b.jsx")
	m.applyEvent(buildpipeline.Event{File: "a.jsx", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusWorking})
	if m.items[0].status != "lowering" {
		t.Fatalf("status = %q", m.items[0].status)
	}
	m.applyEvent(buildpipeline.Event{File: "a.jsx", Stage: buildpipeline.StageInfer, Status: buildpipeline.StatusCached})
	m.applyEvent(buildpipeline.Event{File: "a.jsx", Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "b.jsx", Status: buildpipeline.StatusError, Err: errors.New("x")})
	m.applyEvent(buildpipeline.Event{File: "b.jsx", Status: buildpipeline.StatusError})
	m.applyEvent(buildpipeline.Event{File: "unknown.jsx", Status: buildpipeline.StatusDone})

	if m.cached != 1 || m.failed != 1 {
		t.Fatalf("cached=%d failed=%d", m.cached, m.failed)
	}
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v", got)
	}
	view := m.View()
	if !strings.Contains(view, "(1 cached, 1 failed)") || !strings.Contains(view, "a.jsx") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestStageProgressIsMonotonic(t *testing.T) {
	prev := -1.0
	for _, s := range buildpipeline.Stages {
		p := stageProgress(s)
		if p <= prev || p >= 1 {
			t.Fatalf("stage %s progress %v after %v", s, p, prev)
		}
		prev = p
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"components/card.jsx", 12, "component..."},
		{"short.jsx", 40, "short.jsx"},
		{"abcdef", 2, "ab"},
		{"abcdef", 0, "abcdef"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
