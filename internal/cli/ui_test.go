package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/document"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	old := stdout
	stdout = buf
	t.Cleanup(func() { stdout = old })
	return buf
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	out := captureStdout(t)

	printStats(12, true)
	printStats(3, false)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "12 nodes") || !strings.Contains(lines[0], "cached") {
		t.Errorf("cached line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "3 nodes") || !strings.Contains(lines[1], "fresh") {
		t.Errorf("fresh line = %q", lines[1])
	}
}

func TestPrintOverflow(t *testing.T) {
	out := captureStdout(t)

	snap := &document.Snapshot{Nodes: []document.Geometry{
		{ID: "page"},
		{ID: "body", Scrollbar: &box.ScrollbarState{IsOverflowing: box.Directions{Vertical: true}}},
		{ID: "scrolled", Scrollbar: &box.ScrollbarState{CurrentScrollPosition: box.Ratios{Y: 0.5}}},
	}}
	printOverflow(snap, "card.json")

	got := out.String()
	if !strings.Contains(got, "1 scroll container(s) overflow: body") {
		t.Errorf("warning = %q", got)
	}
	if !strings.Contains(got, "inspect card.json") {
		t.Errorf("missing inspect hint: %q", got)
	}

	out.Reset()
	printOverflow(&document.Snapshot{Nodes: []document.Geometry{{ID: "page"}}}, "card.json")
	if out.Len() != 0 {
		t.Errorf("no overflow should print nothing, got %q", out.String())
	}
}
