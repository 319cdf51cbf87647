package menu

import (
	"github.com/geoterm/mapview-control/internal/engine"
	"github.com/geoterm/mapview-control/internal/portal"
)

// WebmapEntriesFromCatalog converts catalog documents into menu entries.
func WebmapEntriesFromCatalog(c *portal.Catalog) []WebmapEntry {
	if c == nil || len(c.Documents) == 0 {
		return nil
	}
	entries := make([]WebmapEntry, 0, len(c.Documents))
	for _, doc := range c.Documents {
		entry := WebmapEntry{
			ID:     doc.ID(),
			Label:  doc.Title(),
			Title:  doc.Title(),
			Layers: len(doc.OperationalLayers),
		}
		if doc.Item != nil {
			entry.Owner = doc.Item.Owner
		}
		entries = append(entries, entry)
	}
	return entries
}

// LayerEntriesFromView converts the view's declared layers into menu
// entries, capturing current visibility.
func LayerEntriesFromView(v *engine.View) []LayerEntry {
	m := v.Map()
	if m == nil || len(m.Layers) == 0 {
		return nil
	}
	entries := make([]LayerEntry, 0, len(m.Layers))
	for _, layer := range m.Layers {
		entries = append(entries, LayerEntry{
			ID:      layer.ID,
			Label:   layer.Title,
			Title:   layer.Title,
			Kind:    layer.Kind,
			Visible: v.LayerVisible(layer.ID),
		})
	}
	return entries
}

// MarkerEntriesFromGraphics converts dropped graphics into menu entries.
func MarkerEntriesFromGraphics(graphics []*engine.Graphic) []MarkerEntry {
	if len(graphics) == 0 {
		return nil
	}
	entries := make([]MarkerEntry, 0, len(graphics))
	for _, g := range graphics {
		if g == nil {
			continue
		}
		title, _ := g.Attributes["title"].(string)
		entries = append(entries, MarkerEntry{
			ID:    g.ID,
			Label: title,
			Title: title,
			Lon:   g.Geometry.Lon,
			Lat:   g.Geometry.Lat,
		})
	}
	return entries
}
