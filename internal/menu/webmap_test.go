package menu

import (
	"strings"
	"testing"
)

func TestWebmapItemsOrderAndLabels(t *testing.T) {
	ctx := Context{
		Webmaps: []WebmapEntry{
			{ID: "parks-01", Title: "Parks", Owner: "gis", Layers: 2},
			{ID: "harbor-02", Title: "Harbor", Layers: 1},
			{ID: "atlas-03", Title: "Atlas", Owner: "ops", Layers: 4},
		},
		CurrentWebmap: "harbor-02",
	}
	items := WebmapItems(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "harbor-02" {
		t.Fatalf("current webmap should sort first, got %q", items[0].ID)
	}
	if !strings.Contains(items[0].Label, "current") {
		t.Fatalf("current webmap label missing mark: %q", items[0].Label)
	}
	if items[1].ID != "atlas-03" || items[2].ID != "parks-01" {
		t.Fatalf("remaining webmaps not sorted by title: %q, %q", items[1].ID, items[2].ID)
	}
	if !strings.Contains(items[0].Label, "-") {
		t.Fatalf("missing owner should render as dash: %q", items[0].Label)
	}
	if !strings.Contains(items[2].Label, "2 layers") {
		t.Fatalf("label missing layer count: %q", items[2].Label)
	}
}

func TestWebmapOpenActionEmitsRequest(t *testing.T) {
	ctx := Context{Webmaps: []WebmapEntry{{ID: "parks-01", Title: "Parks"}}}
	msg := runAction(t, WebmapOpenAction(ctx, Item{ID: "parks-01"}))
	open, ok := msg.(OpenWebmap)
	if !ok {
		t.Fatalf("expected OpenWebmap, got %T", msg)
	}
	if open.ID != "parks-01" || open.Title != "Parks" {
		t.Fatalf("unexpected request: %+v", open)
	}
}

func TestWebmapOpenActionRejectsEmptyTarget(t *testing.T) {
	msg := runAction(t, WebmapOpenAction(Context{}, Item{ID: "  "}))
	result, ok := msg.(ActionResult)
	if !ok || result.Err == nil {
		t.Fatalf("expected error result, got %#v", msg)
	}
}
