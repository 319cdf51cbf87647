package table

import (
	"strings"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"trails", "feature", "on"},
		{"parcels overlay", "tile", "off"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], "trails ") {
		t.Fatalf("first column not left aligned: %q", got[0])
	}
	if !strings.HasSuffix(got[0], " on") || !strings.HasSuffix(got[1], "off") {
		t.Fatalf("last column not right aligned: %q", got)
	}
	first := strings.Index(got[0], "feature")
	second := strings.Index(got[1], "tile")
	if first < 0 || second < 0 || first != second {
		t.Fatalf("second column misaligned: %q vs %q", got[0], got[1])
	}
	for _, line := range got {
		if strings.HasSuffix(line, " ") {
			t.Fatalf("line has trailing whitespace: %q", line)
		}
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for empty input, got %q", got)
	}
}

func TestPanelIncludesTitleHeaderAndRows(t *testing.T) {
	out := Panel("Layers", []string{"layer", "kind", "shown"}, [][]string{
		{"trails", "feature", "yes"},
		{"parcels", "tile", "no"},
	})
	for _, want := range []string{"Layers", "LAYER", "trails", "parcels"} {
		if !strings.Contains(out, want) {
			t.Fatalf("panel output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "╭") || !strings.Contains(out, "╰") {
		t.Fatalf("expected rounded border:\n%s", out)
	}
}
