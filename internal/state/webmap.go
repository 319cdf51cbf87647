package state

import "github.com/geoterm/mapview-control/internal/menu"

type WebmapStore interface {
	Entries() []menu.WebmapEntry
	SetEntries([]menu.WebmapEntry)
	Current() string
	SetCurrent(string)
	CatalogDir() string
	SetCatalogDir(string)
}

type webmapStore struct {
	entries    []menu.WebmapEntry
	current    string
	catalogDir string
}

func NewWebmapStore() WebmapStore {
	return &webmapStore{}
}

func (s *webmapStore) Entries() []menu.WebmapEntry {
	return cloneWebmapEntries(s.entries)
}

func (s *webmapStore) SetEntries(entries []menu.WebmapEntry) {
	s.entries = cloneWebmapEntries(entries)
}

func (s *webmapStore) Current() string {
	return s.current
}

func (s *webmapStore) SetCurrent(current string) {
	s.current = current
}

func (s *webmapStore) CatalogDir() string {
	return s.catalogDir
}

func (s *webmapStore) SetCatalogDir(dir string) {
	s.catalogDir = dir
}

func cloneWebmapEntries(entries []menu.WebmapEntry) []menu.WebmapEntry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]menu.WebmapEntry, len(entries))
	copy(dup, entries)
	return dup
}
