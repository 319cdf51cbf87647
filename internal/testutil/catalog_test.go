package testutil

import (
	"context"
	"testing"

	"github.com/geoterm/mapview-control/internal/portal"
)

func TestWriteCatalogDirLoadable(t *testing.T) {
	dir := WriteCatalogDir(t, map[string]string{
		"parks.webmap.json":   ParksDocument,
		"harbor.webmap.jsonc": HarborDocument,
		"broken.webmap.json":  BrokenDocument,
	})

	cat, err := portal.LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("expected 2 documents (broken one skipped), got %d", cat.Len())
	}
	if cat.Find("parks-01") == nil {
		t.Fatalf("expected to find parks-01")
	}
	if cat.Find("harbor") == nil {
		t.Fatalf("expected file-stem identity for the itemless document")
	}
}
