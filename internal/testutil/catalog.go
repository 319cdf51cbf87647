package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ParksDocument is a complete web-map document fixture with a portal item and
// two operational layers.
const ParksDocument = `{
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

// HarborDocument is a minimal fixture that leans on JSONC comments and
// file-stem identity fallback.
const HarborDocument = `{
	// no portal item on purpose
	"basemap": "streets"
}`

// BrokenDocument does not parse; loaders must skip it without failing.
const BrokenDocument = `{nope`

// WriteCatalogDir creates a temporary portal directory containing the given
// documents, keyed by file name.
func WriteCatalogDir(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}
