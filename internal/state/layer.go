package state

import "github.com/geoterm/mapview-control/internal/menu"

type LayerStore interface {
	Entries() []menu.LayerEntry
	SetEntries([]menu.LayerEntry)
	SetVisible(id string, visible bool) bool
}

type layerStore struct {
	entries []menu.LayerEntry
}

func NewLayerStore() LayerStore {
	return &layerStore{}
}

func (s *layerStore) Entries() []menu.LayerEntry {
	return cloneLayerEntries(s.entries)
}

func (s *layerStore) SetEntries(entries []menu.LayerEntry) {
	s.entries = cloneLayerEntries(entries)
}

func (s *layerStore) SetVisible(id string, visible bool) bool {
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i].Visible = visible
			return true
		}
	}
	return false
}

func cloneLayerEntries(entries []menu.LayerEntry) []menu.LayerEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]menu.LayerEntry, len(entries))
	copy(dup, entries)
	return dup
}
