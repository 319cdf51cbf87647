package dispatcher

import (
	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/menu"
	"github.com/geoterm/mapview-control/internal/portal"
	"github.com/geoterm/mapview-control/internal/state"
)

type Result struct {
	WebmapsUpdated bool
	LayersUpdated  bool
	MarkersUpdated bool
}

type Dispatcher struct {
	webmaps state.WebmapStore
	layers  state.LayerStore
	markers state.MarkerStore
}

func New(w state.WebmapStore, l state.LayerStore, m state.MarkerStore) *Dispatcher {
	return &Dispatcher{webmaps: w, layers: l, markers: m}
}

// HandleCatalog folds a catalog watcher event into the webmap store.
func (d *Dispatcher) HandleCatalog(evt portal.Event) Result {
	var res Result
	if evt.Err != nil || evt.Catalog == nil {
		return res
	}
	d.webmaps.SetEntries(menu.WebmapEntriesFromCatalog(evt.Catalog))
	d.webmaps.SetCatalogDir(evt.Catalog.Dir)
	res.WebmapsUpdated = true
	return res
}

// HandleSurface folds a view lifecycle event into the layer and marker
// stores. View adoption itself is the coordinator's job; the dispatcher only
// mirrors state for the menus.
func (d *Dispatcher) HandleSurface(evt engine.SurfaceEvent) Result {
	var res Result
	v := evt.View
	if v == nil {
		return res
	}
	switch evt.Kind {
	case engine.KindViewReady:
		d.layers.SetEntries(menu.LayerEntriesFromView(v))
		d.markers.SetEntries(menu.MarkerEntriesFromGraphics(v.Graphics().Items()))
		if m := v.Map(); m != nil && m.Item != nil {
			d.webmaps.SetCurrent(m.Item.ID)
			res.WebmapsUpdated = true
		}
		res.LayersUpdated = true
		res.MarkersUpdated = true
	case engine.KindLayerViewCreated:
		d.layers.SetEntries(menu.LayerEntriesFromView(v))
		res.LayersUpdated = true
	}
	return res
}
