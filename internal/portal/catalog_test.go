package portal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const parksDoc = `{
	// regional open space
	"item": {
		"id": "parks-01",
		"title": "Parks",
		"snippet": "Regional parks and trailheads",
		"thumbnailUrl": "t.png",
		"itemPageUrl": "p.html",
		"owner": "gis",
		"modified": "2026-01-12T10:00:00Z"
	},
	"basemap": "topo-vector",
	"initialState": { "center": [-117.2, 34.0], "zoom": 10 },
	"operationalLayers": [
		{ "id": "trails", "title": "Trails", "kind": "feature" },
		{ "id": "parcels", "title": "Parcels", "kind": "feature", "visible": false }
	]
}`

func writeDoc(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument("parks.webmap.json", []byte(parksDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "parks-01" || doc.Title() != "Parks" {
		t.Fatalf("unexpected identity: %q / %q", doc.ID(), doc.Title())
	}
	if doc.Item.Snippet != "Regional parks and trailheads" {
		t.Fatalf("unexpected snippet: %q", doc.Item.Snippet)
	}
	if doc.Basemap != "topo-vector" {
		t.Fatalf("unexpected basemap: %q", doc.Basemap)
	}
	if len(doc.OperationalLayers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(doc.OperationalLayers))
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	if _, err := ParseDocument("bad.webmap.json", []byte("{not json")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestDocumentToMap(t *testing.T) {
	doc, err := ParseDocument("parks.webmap.json", []byte(parksDoc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := doc.ToMap()
	if m == nil || m.Item == nil {
		t.Fatalf("expected a map with an item")
	}
	if m.Item.Title != "Parks" || m.Item.ThumbnailURL != "t.png" || m.Item.ItemPageURL != "p.html" {
		t.Fatalf("unexpected item: %+v", m.Item)
	}
	if m.InitialCenter.Lon != -117.2 || m.InitialCenter.Lat != 34.0 || m.InitialZoom != 10 {
		t.Fatalf("unexpected viewpoint: %+v zoom %v", m.InitialCenter, m.InitialZoom)
	}
	if len(m.Layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(m.Layers))
	}
	if !m.Layers[0].Visible {
		t.Fatalf("visibility must default to true")
	}
	if m.Layers[1].Visible {
		t.Fatalf("explicit visible:false must be honored")
	}
}

func TestDocumentFallbackIdentity(t *testing.T) {
	doc, err := ParseDocument(filepath.Join("maps", "harbor.webmap.json"), []byte(`{"basemap":"streets"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "harbor" || doc.Title() != "harbor" {
		t.Fatalf("expected file-stem fallback, got %q / %q", doc.ID(), doc.Title())
	}
	if doc.ToMap().Item != nil {
		t.Fatalf("expected no portal item for itemless document")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "parks.webmap.json", parksDoc)
	writeDoc(t, dir, "harbor.webmap.jsonc", `{
		// comment-only metadata
		"item": { "id": "harbor-02", "title": "Harbor" },
		"basemap": "streets"
	}`)
	writeDoc(t, dir, "broken.webmap.json", "{nope")
	writeDoc(t, dir, "notes.txt", "not a webmap")

	cat, err := LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("expected 2 documents, got %d", cat.Len())
	}
	if cat.Documents[0].Title() != "Harbor" || cat.Documents[1].Title() != "Parks" {
		t.Fatalf("expected title order, got %q then %q",
			cat.Documents[0].Title(), cat.Documents[1].Title())
	}
	if cat.Find("parks-01") == nil {
		t.Fatalf("expected to find parks-01")
	}
	if cat.Find("missing") != nil {
		t.Fatalf("expected nil for unknown id")
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(context.Background(), filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}

func TestIsDocumentPath(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"parks.webmap.json", true},
		{"PARKS.WEBMAP.JSON", true},
		{"harbor.webmap.jsonc", true},
		{"notes.txt", false},
		{"webmap.json.bak", false},
	}
	for _, tc := range cases {
		if got := IsDocumentPath(tc.path); got != tc.want {
			t.Fatalf("IsDocumentPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestResolveDir(t *testing.T) {
	if got, err := ResolveDir("/explicit"); err != nil || got != "/explicit" {
		t.Fatalf("explicit dir: %q %v", got, err)
	}
	t.Setenv("MAPVIEW_PORTAL_DIR", "/from-env")
	if got, err := ResolveDir(""); err != nil || got != "/from-env" {
		t.Fatalf("env dir: %q %v", got, err)
	}
}

func TestWatcherEmitsInitialCatalog(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "parks.webmap.json", parksDoc)

	w := NewWatcher(dir, time.Hour)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	select {
	case evt := <-w.Events():
		if evt.Err != nil {
			t.Fatalf("unexpected error: %v", evt.Err)
		}
		if evt.Catalog.Len() != 1 {
			t.Fatalf("expected 1 document, got %d", evt.Catalog.Len())
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for the initial catalog")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, time.Hour)
	w.Stop()
	w.Wait()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel did not close after Stop")
		}
	}
}
