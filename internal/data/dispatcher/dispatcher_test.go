package dispatcher

import (
	"errors"
	"testing"

	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/portal"
	"github.com/geoterm/mapview-control/internal/state"
)

func newDispatcher() (*Dispatcher, state.WebmapStore, state.LayerStore, state.MarkerStore) {
	webmaps := state.NewWebmapStore()
	layers := state.NewLayerStore()
	markers := state.NewMarkerStore()
	return New(webmaps, layers, markers), webmaps, layers, markers
}

func TestHandleCatalogUpdatesWebmaps(t *testing.T) {
	d, webmaps, _, _ := newDispatcher()
	catalog := &portal.Catalog{
		Dir: "/maps",
		Documents: []*portal.Document{
			{
				Item:              &portal.Item{ID: "parks-01", Title: "Parks", Owner: "gis"},
				OperationalLayers: []portal.LayerRef{{ID: "trails"}, {ID: "parcels"}},
			},
		},
	}
	res := d.HandleCatalog(portal.Event{Catalog: catalog, Trigger: "initial"})
	if !res.WebmapsUpdated {
		t.Fatalf("expected webmaps update")
	}
	entries := webmaps.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID != "parks-01" || entries[0].Owner != "gis" || entries[0].Layers != 2 {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if webmaps.CatalogDir() != "/maps" {
		t.Fatalf("catalog dir not recorded: %q", webmaps.CatalogDir())
	}
}

func TestHandleCatalogIgnoresErrors(t *testing.T) {
	d, webmaps, _, _ := newDispatcher()
	webmaps.SetEntries(nil)
	res := d.HandleCatalog(portal.Event{Err: errors.New("boom")})
	if res.WebmapsUpdated {
		t.Fatalf("error events should not update stores")
	}
}

func TestHandleSurfaceViewReady(t *testing.T) {
	d, webmaps, layers, markers := newDispatcher()
	m := &engine.Map{
		Item: &engine.PortalItem{ID: "parks-01", Title: "Parks"},
		Layers: []engine.Layer{
			{ID: "trails", Title: "Trails", Kind: "feature", Visible: true},
			{ID: "parcels", Title: "Parcels", Kind: "tile"},
		},
	}
	v := engine.NewView(engine.ViewOptions{Map: m})
	res := d.HandleSurface(engine.SurfaceEvent{Kind: engine.KindViewReady, View: v})
	if !res.LayersUpdated || !res.MarkersUpdated || !res.WebmapsUpdated {
		t.Fatalf("expected full update, got %+v", res)
	}
	if webmaps.Current() != "parks-01" {
		t.Fatalf("current webmap not recorded: %q", webmaps.Current())
	}
	got := layers.Entries()
	if len(got) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(got))
	}
	if !got[0].Visible || got[1].Visible {
		t.Fatalf("visibility not captured: %+v", got)
	}
	if len(markers.Entries()) != 0 {
		t.Fatalf("fresh view should have no markers")
	}
}

func TestHandleSurfaceLayerCreated(t *testing.T) {
	d, _, layers, _ := newDispatcher()
	m := &engine.Map{Layers: []engine.Layer{{ID: "trails", Title: "Trails", Visible: true}}}
	v := engine.NewView(engine.ViewOptions{Map: m})
	lv := v.AddLayer(m.Layers[0])
	res := d.HandleSurface(engine.SurfaceEvent{Kind: engine.KindLayerViewCreated, View: v, LayerView: lv})
	if !res.LayersUpdated {
		t.Fatalf("expected layer update")
	}
	if len(layers.Entries()) != 1 {
		t.Fatalf("expected 1 layer entry")
	}
}

func TestHandleSurfaceWithoutView(t *testing.T) {
	d, _, _, _ := newDispatcher()
	res := d.HandleSurface(engine.SurfaceEvent{Kind: engine.KindViewReady})
	if res.LayersUpdated || res.MarkersUpdated || res.WebmapsUpdated {
		t.Fatalf("nil view should be ignored, got %+v", res)
	}
}
