package state

import "github.com/geoterm/mapview-control/internal/menu"

type MarkerStore interface {
	Entries() []menu.MarkerEntry
	SetEntries([]menu.MarkerEntry)
	Append(menu.MarkerEntry)
	Clear()
}

type markerStore struct {
	entries []menu.MarkerEntry
}

func NewMarkerStore() MarkerStore {
	return &markerStore{}
}

func (s *markerStore) Entries() []menu.MarkerEntry {
	return cloneMarkerEntries(s.entries)
}

func (s *markerStore) SetEntries(entries []menu.MarkerEntry) {
	s.entries = cloneMarkerEntries(entries)
}

func (s *markerStore) Append(entry menu.MarkerEntry) {
	s.entries = append(s.entries, entry)
}

func (s *markerStore) Clear() {
	s.entries = nil
}

func cloneMarkerEntries(entries []menu.MarkerEntry) []menu.MarkerEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]menu.MarkerEntry, len(entries))
	copy(dup, entries)
	return dup
}
